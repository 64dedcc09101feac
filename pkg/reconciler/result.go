package reconciler

// Counts is what one sync operation found on the origin post and how much
// of it was newly applied to the target post.
type Counts struct {
	Discovered int `json:"discovered" yaml:"discovered"`
	Added      int `json:"added" yaml:"added"`
}

// Add accumulates other into c.
func (c *Counts) Add(other Counts) {
	c.Discovered += other.Discovered
	c.Added += other.Added
}
