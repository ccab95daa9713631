package effectchain

// Context provides environmental information that unit factories need.
type Context struct {
	SampleRate float64
}
