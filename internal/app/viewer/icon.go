package viewer

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

const maxIconWidth = 8

// LoadIcon looks for the bundled icon next to the executable, then in the
// working directory. The icon is purely cosmetic, so any failure just means
// no icon.
func LoadIcon(name string) string {
	if name == "" {
		return ""
	}

	var dirs []string
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		dirs = append(dirs, filepath.Dir(exe))
	}
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}

	return loadIconFrom(dirs, name)
}

func loadIconFrom(dirs []string, name string) string {
	for _, dir := range dirs {
		if icon, ok := readIcon(filepath.Join(dir, name)); ok {
			return icon
		}
	}
	return ""
}

// readIcon returns the first non blank line of the file, cut to a few runes
func readIcon(path string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		runes := []rune(line)
		if len(runes) > maxIconWidth {
			runes = runes[:maxIconWidth]
		}
		return string(runes), true
	}
	return "", false
}
