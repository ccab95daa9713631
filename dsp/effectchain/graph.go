package effectchain

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Reserved node ids and structural node types.
const (
	InputNodeID  = "_input"
	OutputNodeID = "_output"

	// NodeTypeSplit fans one signal out to several children.
	NodeTypeSplit = "split"
	// NodeTypeSum mixes its parents at equal weight.
	NodeTypeSum = "sum"
)

var errGraphCycle = errors.New("invalid chain graph: contains cycle")

// graphDoc is the JSON form of a chain.
type graphDoc struct {
	Nodes []struct {
		ID       string         `json:"id"`
		Type     string         `json:"type"`
		Bypassed bool           `json:"bypassed"`
		Params   map[string]any `json:"params"`
	} `json:"nodes"`
	Connections []struct {
		From string `json:"from"`
		To   string `json:"to"`
		Port int    `json:"fromPortIndex,omitempty"`
	} `json:"connections"`
}

// compiledGraph is a validated chain with adjacency lists and a processing
// order in which every node follows all of its parents.
type compiledGraph struct {
	Nodes    map[string]Params
	Incoming map[string][]compiledEdge
	Outgoing map[string][]compiledEdge
	Order    []string
}

// compiledEdge carries output channel FromPortIndex of From into To.
type compiledEdge struct {
	From          string
	To            string
	FromPortIndex int
}

// parseGraph decodes and compiles a chain. An empty document, or one that
// lacks either I/O node, compiles to an empty graph. Nodes without id or
// type and connections to unknown nodes are ignored.
func parseGraph(raw string) (*compiledGraph, error) {
	if raw == "" {
		return &compiledGraph{}, nil
	}

	var doc graphDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("invalid chain graph json: %w", err)
	}

	g := &compiledGraph{
		Nodes:    make(map[string]Params, len(doc.Nodes)),
		Incoming: make(map[string][]compiledEdge, len(doc.Nodes)),
		Outgoing: make(map[string][]compiledEdge, len(doc.Nodes)),
	}

	for _, n := range doc.Nodes {
		if n.ID == "" || n.Type == "" {
			continue
		}

		num, str := splitParams(n.Params)
		g.Nodes[n.ID] = Params{ID: n.ID, Type: normalizeType(n.Type), Bypassed: n.Bypassed, Num: num, Str: str}
	}

	if _, ok := g.Nodes[InputNodeID]; !ok {
		return &compiledGraph{}, nil
	}

	if _, ok := g.Nodes[OutputNodeID]; !ok {
		return &compiledGraph{}, nil
	}

	for _, c := range doc.Connections {
		_, fromOK := g.Nodes[c.From]
		_, toOK := g.Nodes[c.To]

		if !fromOK || !toOK || c.From == c.To {
			continue
		}

		e := compiledEdge{From: c.From, To: c.To, FromPortIndex: max(c.Port, 0)}
		g.Outgoing[c.From] = append(g.Outgoing[c.From], e)
		g.Incoming[c.To] = append(g.Incoming[c.To], e)
	}

	order, err := g.sort()
	if err != nil {
		return nil, err
	}

	g.Order = order

	return g, nil
}

// sort orders nodes topologically. Ready nodes are taken in id order so the
// result does not depend on map iteration.
func (g *compiledGraph) sort() ([]string, error) {
	pending := make(map[string]int, len(g.Nodes))

	var ready []string

	for id := range g.Nodes {
		pending[id] = len(g.Incoming[id])
		if pending[id] == 0 {
			ready = append(ready, id)
		}
	}

	order := make([]string, 0, len(g.Nodes))

	for len(ready) > 0 {
		slices.Sort(ready)
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		for _, e := range g.Outgoing[id] {
			if pending[e.To]--; pending[e.To] == 0 {
				ready = append(ready, e.To)
			}
		}
	}

	if len(order) != len(g.Nodes) {
		return nil, errGraphCycle
	}

	return order, nil
}

// splitParams separates numeric and string node parameters. Booleans read
// as 0 or 1; other JSON values are dropped.
func splitParams(raw map[string]any) (map[string]float64, map[string]string) {
	num := make(map[string]float64, len(raw))
	str := make(map[string]string)

	for k, v := range raw {
		switch t := v.(type) {
		case float64:
			num[k] = t
		case bool:
			num[k] = 0
			if t {
				num[k] = 1
			}
		case string:
			str[k] = t
		}
	}

	return num, str
}

func isStructuralNodeType(nodeType string) bool {
	return nodeType == InputNodeID || nodeType == OutputNodeID ||
		nodeType == NodeTypeSplit || nodeType == NodeTypeSum
}

// normalizeType lower-cases unit labels; reserved I/O types pass unchanged.
func normalizeType(nodeType string) string {
	if nodeType == InputNodeID || nodeType == OutputNodeID {
		return nodeType
	}

	return strings.ToLower(strings.TrimSpace(nodeType))
}
