package textbuf

// Option configures a Buffer.
type Option func(*Buffer)

// WithTabWidth sets the display width of a tab stop.
// Values less than 1 are ignored.
func WithTabWidth(width int) Option {
	return func(b *Buffer) {
		if width >= 1 {
			b.tabWidth = width
		}
	}
}
