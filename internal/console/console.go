// Package console prints store report lines for the CLI.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	deniedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Sink writes report lines to an io.Writer and mirrors them to the debug log.
type Sink struct {
	w  io.Writer
	lg *zap.Logger
}

// NewSink returns a Sink writing to w. A nil logger disables mirroring.
func NewSink(w io.Writer, lg *zap.Logger) *Sink {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Sink{w: w, lg: lg}
}

// WriteLine prints line followed by a newline.
func (s *Sink) WriteLine(line string) {
	if isDenial(line) {
		line = deniedStyle.Render(line)
	}
	if _, err := fmt.Fprintln(s.w, line); err != nil {
		s.lg.Warn("Write report line", zap.Error(err))
		return
	}
	s.lg.Debug("Report", zap.String("line", line))
}

// Heading prints a styled section title.
func (s *Sink) Heading(title string) {
	s.WriteLine(Heading(title))
}

// Heading renders title as a section heading.
func Heading(title string) string {
	return headingStyle.Render(title)
}

func isDenial(line string) bool {
	return strings.HasPrefix(line, "Access denied")
}
