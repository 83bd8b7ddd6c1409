package kle

// Option configures a decode.
type Option func(*options)

type options struct {
	editorCarry bool
	logger      func(msg string, args ...any)
}

func newOptions(opts []Option) options {
	o := options{logger: func(string, ...any) {}}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithEditorCarry makes the decoder reset attributes after every key the way
// the layout editor itself does: the size returns to 1×1 and the homing flag
// is cleared along with the secondary rectangle, decal and stepped flags. The
// ghost flag persists. Without this option size and homing persist until
// overridden and ghost applies to a single key.
func WithEditorCarry() Option {
	return func(o *options) { o.editorCarry = true }
}

// WithLogger receives diagnostics about input the decoder tolerates but
// ignores, such as unknown properties or a rotation origin given after the
// first key of a row. Arguments are alternating key/value pairs.
func WithLogger(fn func(msg string, args ...any)) Option {
	return func(o *options) {
		if fn != nil {
			o.logger = fn
		}
	}
}
