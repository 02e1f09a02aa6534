package fold

// Theme defines semantic color mappings using ANSI color indices
// (0-15). The user's terminal theme determines the actual RGB values,
// so the app automatically matches any color scheme.
type Theme struct {
	Wrapper int // wrapper caption
	Thought int // revealed thought text
	Tool    int // tool call fragments
	Error   int // error messages
	Success int // completion marker
	Muted   int // status bar, placeholders
	Accent  int // highlights
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Wrapper: 6,
		Thought: 8,
		Tool:    3,
		Error:   1,
		Success: 2,
		Muted:   8,
		Accent:  5,
	}
}
