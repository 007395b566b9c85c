// Package console provides the logger every command writes progress to.
// Echoed shell commands and written files are printed without a level so
// they read like a transcript; diagnostics go through the usual levels.
package console

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	fileStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
)

// New returns a logger writing to w. A nil writer means stderr.
func New(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{
		Level:           log.InfoLevel,
		ReportTimestamp: false,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return New(io.Discard)
}

// SetVerbose switches the logger between info and debug level.
func SetVerbose(l *log.Logger, verbose bool) {
	if verbose {
		l.SetLevel(log.DebugLevel)
		return
	}
	l.SetLevel(log.InfoLevel)
}

// Command echoes a command line as "> line". Quiet echoes only show in
// verbose mode.
func Command(l *log.Logger, line string, quiet bool) {
	msg := promptStyle.Render(">") + " " + line
	if quiet {
		l.Debug(msg)
		return
	}
	l.Print(msg)
}

// FileWritten reports a saved file as "! path action".
func FileWritten(l *log.Logger, path, action string) {
	l.Print(fileStyle.Render("!") + " " + path + " " + action)
}
