package paths

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestReplaceTilde(t *testing.T) {
	t.Setenv("HOME", "/home/joe")
	tests := []struct {
		in, want string
	}{
		{"~", "/home/joe"},
		{"~/x/y", "/home/joe/x/y"},
		{"/abs/~", "/abs/~"},
		{"~other", "~other"},
	}
	for _, tt := range tests {
		if got := ReplaceTilde(tt.in); got != tt.want {
			t.Errorf("ReplaceTilde(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConfigHomeXDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG only applies on linux")
	}
	t.Setenv("HOME", "/home/joe")
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	if got := ConfigHome(); got != filepath.Join("/cfg", "detach") {
		t.Fatalf("ConfigHome() = %q", got)
	}
	t.Setenv("XDG_CONFIG_HOME", "")
	if got := ConfigHome(); got != "/home/joe/.config/detach" {
		t.Fatalf("ConfigHome() = %q", got)
	}
}
