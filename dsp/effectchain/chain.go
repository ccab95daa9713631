package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-remaincalm/dsp/core"
	"github.com/cwbudde/algo-remaincalm/dsp/unit"
	"github.com/cwbudde/algo-vecmath"
)

// Chain owns a graph of units: topology, node runtimes and processing
// buffers. Node signals are carried in float64 and converted at unit
// boundaries.
type Chain struct {
	ctx      Context
	registry *Registry

	graph *compiledGraph
	nodes map[string]*nodeRuntime

	outBuf map[string][][]float64
	mixBuf []float64
	block  []float64
}

// New creates a Chain with the given context and registry.
func New(ctx Context, registry *Registry) *Chain {
	return &Chain{
		ctx:      ctx,
		registry: registry,
		nodes:    make(map[string]*nodeRuntime),
	}
}

// Context returns the chain context.
func (c *Chain) Context() Context {
	return c.ctx
}

// HasGraph returns true if the chain has a loaded graph with valid I/O nodes.
func (c *Chain) HasGraph() bool {
	return c.graph != nil && hasRequiredIONodes(c.graph)
}

// LoadGraph parses a JSON graph string, compiles the topology and
// synchronises node units. Nodes whose id and type are unchanged keep their
// unit and are reconfigured. An empty string clears the graph.
func (c *Chain) LoadGraph(jsonGraph string) error {
	graph, err := parseGraph(jsonGraph)
	if err != nil {
		return err
	}

	err = c.syncNodes(graph)
	if err != nil {
		return err
	}

	c.graph = graph

	return nil
}

// Reset drops the graph, all node units and processing state.
func (c *Chain) Reset() {
	c.graph = nil
	c.nodes = make(map[string]*nodeRuntime)
	c.outBuf = nil
	c.mixBuf = nil
	c.block = nil
}

// Unit returns the unit hosted by node id, or nil.
func (c *Chain) Unit(id string) unit.Unit {
	rt := c.nodes[id]
	if rt == nil {
		return nil
	}

	return rt.unit
}

// syncNodes builds a unit for every new or retyped node, configures every
// unit node, and drops units whose node disappeared. The chain is left
// untouched on error.
func (c *Chain) syncNodes(graph *compiledGraph) error {
	next := make(map[string]*nodeRuntime, len(graph.Nodes))

	for _, node := range graph.Nodes {
		if isStructuralNodeType(node.Type) {
			continue
		}

		rt := c.nodes[node.ID]
		if rt == nil || rt.unitType != node.Type {
			u, err := c.registry.New(c.ctx, node.Type)
			if err != nil {
				return fmt.Errorf("effectchain: node %q: %w", node.ID, err)
			}

			rt = newNodeRuntime(node.Type, u)
		}

		err := rt.Configure(node)
		if err != nil {
			return fmt.Errorf("effectchain: configure node %q (%s): %w", node.ID, node.Type, err)
		}

		next[node.ID] = rt
	}

	c.nodes = next

	return nil
}

// Process runs the graph over block in place. It returns false, leaving
// block untouched, when no graph with I/O nodes is loaded.
func (c *Chain) Process(block []float32) bool {
	if len(block) == 0 {
		return true
	}

	g := c.graph
	if g == nil || !hasRequiredIONodes(g) {
		return false
	}

	c.prepareBuffers(len(block), g)
	core.Widen(c.block, block)
	c.outBuf[InputNodeID][0] = c.block

	for _, id := range g.Order {
		if id == InputNodeID {
			continue
		}

		c.processNode(id, g)
	}

	core.Narrow(block, c.outBuf[OutputNodeID][0])

	return true
}

func (c *Chain) prepareBuffers(n int, g *compiledGraph) {
	if c.outBuf == nil {
		c.outBuf = make(map[string][][]float64, len(g.Nodes))
	}

	for _, id := range g.Order {
		ports := 1
		if rt := c.nodes[id]; rt != nil {
			ports = rt.Ports()
		}

		bufs := c.outBuf[id]
		if len(bufs) != ports {
			bufs = make([][]float64, ports)
		}
		c.outBuf[id] = ensure(bufs, n)
	}

	c.mixBuf = core.EnsureLen(c.mixBuf, n)
	c.block = core.EnsureLen(c.block, n)
}

func (c *Chain) processNode(id string, g *compiledGraph) {
	node := g.Nodes[id]
	dst := c.outBuf[id]

	c.mixParentsInto(g.Incoming[id], dst[0])

	rt := c.nodes[id]
	if rt == nil {
		return
	}

	if node.Bypassed {
		for _, port := range dst[1:] {
			copy(port, dst[0])
		}
		return
	}

	// The unit reads the mix from mixBuf so dst can take every port.
	copy(c.mixBuf, dst[0])
	rt.Process(c.mixBuf, dst)
}

// edgeSource returns the port an edge reads, falling back to port 0.
func (c *Chain) edgeSource(edge compiledEdge) []float64 {
	ports := c.outBuf[edge.From]
	if edge.FromPortIndex < len(ports) {
		return ports[edge.FromPortIndex]
	}

	return ports[0]
}

// mixParentsInto averages the parent signals into dst.
func (c *Chain) mixParentsInto(parents []compiledEdge, dst []float64) {
	switch len(parents) {
	case 0:
		clear(dst)
		return
	case 1:
		copy(dst, c.edgeSource(parents[0]))
		return
	}

	copy(dst, c.edgeSource(parents[0]))
	for _, edge := range parents[1:] {
		vecmath.AddBlockInPlace(dst, c.edgeSource(edge))
	}

	vecmath.ScaleBlock(dst, dst, 1/float64(len(parents)))
}

func hasRequiredIONodes(g *compiledGraph) bool {
	if g == nil {
		return false
	}

	if _, ok := g.Nodes[InputNodeID]; !ok {
		return false
	}

	if _, ok := g.Nodes[OutputNodeID]; !ok {
		return false
	}

	return true
}
