//go:build darwin || linux
// +build darwin linux

package logger

import (
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/sys/unix"
)

const SupportsColorEscapes = true

// The window size decides where long messages and summaries wrap. A terminal
// whose size can't be read still gets color.
func GetTerminalInfo(file *os.File) TerminalInfo {
	fd := file.Fd()
	if !isatty.IsTerminal(fd) {
		return TerminalInfo{}
	}

	info := TerminalInfo{
		IsTTY:           true,
		UseColorEscapes: !hasNoColorEnvironmentVariable(),
	}
	if size, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ); err == nil {
		info.Width = int(size.Col)
		info.Height = int(size.Row)
	}
	return info
}

func writeStringWithColor(file *os.File, text string) {
	file.WriteString(text)
}
