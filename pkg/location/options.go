package location

// NavigateOptions configures a navigation.
type NavigateOptions struct {
	// Replace overwrites the current history entry instead of adding one.
	Replace bool

	// State is attached to the new location.
	State any
}

// NavigateOption is a functional option for Navigate.
type NavigateOption func(*NavigateOptions)

// WithReplace replaces the current history entry instead of pushing.
func WithReplace() NavigateOption {
	return func(o *NavigateOptions) {
		o.Replace = true
	}
}

// WithState attaches state to the new location.
func WithState(state any) NavigateOption {
	return func(o *NavigateOptions) {
		o.State = state
	}
}

// ApplyOptions resolves opts on top of the defaults.
func ApplyOptions(opts ...NavigateOption) NavigateOptions {
	var o NavigateOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Options turns resolved options back into functional options, for
// wrappers that forward a navigation.
func (o NavigateOptions) Options() []NavigateOption {
	var opts []NavigateOption
	if o.Replace {
		opts = append(opts, WithReplace())
	}
	if o.State != nil {
		opts = append(opts, WithState(o.State))
	}
	return opts
}
