package orchestration

// Context carries data between orchestration nodes and tracks per-loop
// iteration counts across a single run.
type Context struct {
	data            map[string]interface{}
	loopIterations  map[string]int
}

// NewContext creates an empty orchestration context.
func NewContext() *Context {
	return &Context{data: make(map[string]interface{}), loopIterations: make(map[string]int)}
}

// NewContextWithData creates a context seeded with initial data.
func NewContextWithData(data map[string]interface{}) *Context {
	if data == nil {
		data = make(map[string]interface{})
	}
	return &Context{data: data, loopIterations: make(map[string]int)}
}

// Get returns a value from the context.
func (c *Context) Get(key string) (interface{}, bool) {
	v, ok := c.data[key]
	return v, ok
}

// Set stores a value in the context.
func (c *Context) Set(key string, value interface{}) {
	c.data[key] = value
}

// Remove deletes a value from the context.
func (c *Context) Remove(key string) {
	delete(c.data, key)
}

// Contains reports whether key has a value.
func (c *Context) Contains(key string) bool {
	_, ok := c.data[key]
	return ok
}

// Data returns the context's data, not a copy.
func (c *Context) Data() map[string]interface{} {
	return c.data
}

// LoopIteration returns the current iteration count for a loop node.
func (c *Context) LoopIteration(loopNodeID string) int {
	return c.loopIterations[loopNodeID]
}

// IncrementLoopIteration bumps and returns a loop node's iteration count.
func (c *Context) IncrementLoopIteration(loopNodeID string) int {
	c.loopIterations[loopNodeID]++
	return c.loopIterations[loopNodeID]
}

// ResetLoopIteration clears a loop node's iteration count.
func (c *Context) ResetLoopIteration(loopNodeID string) {
	delete(c.loopIterations, loopNodeID)
}
