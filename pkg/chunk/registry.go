package chunk

// Registry is the set of chunks that have already been populated. It only
// grows. A Registry is not safe for concurrent use; its owner serializes
// access.
type Registry struct {
	populated map[Chunk]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{populated: make(map[Chunk]struct{})}
}

// Contains reports whether c has been populated.
func (r *Registry) Contains(c Chunk) bool {
	_, ok := r.populated[c]
	return ok
}

// Mark records c as populated. It returns false if c was already present.
func (r *Registry) Mark(c Chunk) bool {
	if r.Contains(c) {
		return false
	}
	r.populated[c] = struct{}{}
	return true
}

// Unpopulated returns the chunks of cs that are not in the registry,
// preserving order.
func (r *Registry) Unpopulated(cs []Chunk) []Chunk {
	var out []Chunk
	for _, c := range cs {
		if !r.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of populated chunks.
func (r *Registry) Len() int {
	return len(r.populated)
}
