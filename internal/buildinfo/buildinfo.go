package buildinfo

import "os"

var (
	// Commit is the commit hash injected at build time
	Commit string
	// Version of the binary, injected at build time
	Version string
)

func init() {
	if c := os.Getenv("DETACH_COMMIT_OVERRIDE"); c != "" {
		Commit = c
	}
	if v := os.Getenv("DETACH_VERSION_OVERRIDE"); v != "" {
		Version = v
	}
}
