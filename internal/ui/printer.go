package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	outputMu sync.Mutex
	stdout   io.Writer = os.Stdout
	stderr   io.Writer = os.Stderr
)

// SetOutput redirects the printer. Success, Info and Section go to out;
// Warning and Error go to errOut.
func SetOutput(out, errOut io.Writer) {
	outputMu.Lock()
	defer outputMu.Unlock()
	stdout = out
	stderr = errOut
}

func emit(toErr bool, icon, format string, a ...interface{}) {
	outputMu.Lock()
	defer outputMu.Unlock()
	w := stdout
	if toErr {
		w = stderr
	}
	fmt.Fprintf(w, "%s %s\n", icon, fmt.Sprintf(format, a...))
}

// Success prints a success message (green tick)
func Success(format string, a ...interface{}) {
	emit(false, SuccessStyle.Render("✓"), format, a...)
}

// Error prints an error message (red cross)
func Error(format string, a ...interface{}) {
	emit(true, ErrorStyle.Render("✖"), format, a...)
}

// Warning prints a warning message (yellow triangle)
func Warning(format string, a ...interface{}) {
	emit(true, WarningStyle.Render("⚠"), format, a...)
}

// Info prints an informational message (blue i)
func Info(format string, a ...interface{}) {
	emit(false, lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true).Render("ℹ"), format, a...)
}

// Section prints a section header
func Section(title string) {
	outputMu.Lock()
	defer outputMu.Unlock()
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, TitleStyle.Render(title))
}

// Item prints an indented "name  detail" line
func Item(name, detail string) {
	outputMu.Lock()
	defer outputMu.Unlock()
	if detail == "" {
		fmt.Fprintln(stdout, ItemStyle.Render(HeaderStyle.Render(name)))
		return
	}
	fmt.Fprintln(stdout, ItemStyle.Render(HeaderStyle.Render(name)+"  "+SubtleStyle.Render(detail)))
}
