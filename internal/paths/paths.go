package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

func ReplaceTilde(path string) string {
	home := os.Getenv("HOME")
	if path == "~" {
		return home
	} else if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigHome returns the directory holding the detach config file,
// following the XDG specification on Linux.
func ConfigHome() string {
	if runtime.GOOS == "linux" {
		h := os.Getenv("XDG_CONFIG_HOME")
		if h == "" {
			h = "~/.config"
		}
		return ReplaceTilde(filepath.Join(h, "detach"))
	}
	return ReplaceTilde("~/.detach")
}
