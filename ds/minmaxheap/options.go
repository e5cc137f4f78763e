package minmaxheap

// the default options applied to the MinMaxHeap.
var defaultOptions = []Option{
	WithCapacity(0),
}

// Options define options for a MinMaxHeap.
type Options struct {
	// The initial capacity reserved for the backing array.
	capacity int
}

// applies the given Option.
func (ho *Options) apply(opts ...Option) {
	for _, opt := range opts {
		opt(ho)
	}
}

// WithCapacity defines the initial capacity reserved for the backing array.
func WithCapacity(capacity int) Option {
	return func(opts *Options) {
		opts.capacity = capacity
	}
}

// Option is a function setting an Options option.
type Option func(opts *Options)
