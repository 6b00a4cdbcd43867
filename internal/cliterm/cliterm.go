// Package cliterm probes the host terminal's capabilities for the
// reference CLI driver (cmd/purc): size, color support, and whether stdout
// is a real TTY or redirected. Grounded on the teacher's
// TerminalCapabilities/DetectSystemTerminalCapabilities pair
// (src/terminal.go), narrowed to what cmd/purc actually needs: pterm's
// renderer consults IsTerminal/SupportsColor to decide between styled and
// plain output.
package cliterm

import (
	"os"

	"golang.org/x/term"
)

// Capabilities describes what the attached stdout can do.
type Capabilities struct {
	IsTerminal   bool
	SupportsColor bool
	Width        int
	Height       int
}

// Detect inspects os.Stdout the way the teacher's
// DetectSystemTerminalCapabilities does, via golang.org/x/term.
func Detect() Capabilities {
	fd := int(os.Stdout.Fd())
	isTerm := term.IsTerminal(fd)
	c := Capabilities{IsTerminal: isTerm, SupportsColor: isTerm, Width: 80, Height: 24}
	if isTerm {
		if w, h, err := term.GetSize(fd); err == nil {
			c.Width, c.Height = w, h
		}
	}
	return c
}
