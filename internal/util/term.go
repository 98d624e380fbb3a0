package util

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsTerminal checks if stdout is a terminal using go-isatty
func IsTerminal() bool {
	return isTerminalFd(os.Stdout.Fd())
}

// IsInteractive reports whether both stdin and stdout are attached to a
// terminal, which the full screen viewer needs for keys and drawing
func IsInteractive() bool {
	return isTerminalFd(os.Stdin.Fd()) && isTerminalFd(os.Stdout.Fd())
}

// ShouldUseColors determines if coloured output should be used on stderr,
// where the logs and splash go
func ShouldUseColors() bool {
	return isTerminalFd(os.Stderr.Fd())
}

func isTerminalFd(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
