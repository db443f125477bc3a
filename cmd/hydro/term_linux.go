package main

import (
	"golang.org/x/sys/unix"
)

// termWidth returns the current terminal's column count, or the given
// fallback if stdout isn't a terminal or the ioctl fails.
func termWidth(fallback int) int {
	ws, err := unix.IoctlGetWinsize(unix.Stdout, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return fallback
	}
	return int(ws.Col)
}
