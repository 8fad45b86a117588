package navigate

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNoClipboard is returned when no clipboard tool is installed.
var ErrNoClipboard = errors.New("clipboard unavailable")

// Copy puts a resolved URL on the system clipboard, for terminals where
// opening a browser is not possible.
func Copy(target string) error {
	cmd, err := copyCommand(runtime.GOOS, exec.LookPath)
	if err != nil {
		return err
	}
	cmd.Stdin = strings.NewReader(target)
	return cmd.Run()
}

// copyCommand returns the clipboard writer for goos. On Linux xclip is
// preferred over xsel.
func copyCommand(goos string, lookPath func(string) (string, error)) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("pbcopy"), nil
	case "windows":
		return exec.Command("clip"), nil
	case "linux", "freebsd", "openbsd":
		if _, err := lookPath("xclip"); err == nil {
			return exec.Command("xclip", "-selection", "clipboard"), nil
		}
		if _, err := lookPath("xsel"); err == nil {
			return exec.Command("xsel", "--clipboard", "--input"), nil
		}
	}
	return nil, ErrNoClipboard
}
