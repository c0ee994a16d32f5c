//go:build !darwin && !linux && !windows
// +build !darwin,!linux,!windows

package logger

import (
	"os"

	"github.com/mattn/go-isatty"
)

const SupportsColorEscapes = false

// Platforms without a console API still get TTY detection so that callers
// can decide whether to print progress, but never color escapes.
func GetTerminalInfo(file *os.File) TerminalInfo {
	fd := file.Fd()
	return TerminalInfo{
		IsTTY: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}

func writeStringWithColor(file *os.File, text string) {
	file.WriteString(text)
}
