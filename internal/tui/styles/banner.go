// ABOUTME: ASCII-art program banner shared by the TUI and the version command
// ABOUTME: Rendered with go-figure

package styles

import "github.com/common-nighthawk/go-figure"

// Banner returns the program name as ASCII art.
func Banner() string {
	return figure.NewFigure("petcare", "cybermedium", true).String()
}
