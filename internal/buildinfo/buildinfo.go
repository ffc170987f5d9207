// Package buildinfo exposes version metadata for the CLI. Values are set at
// build time via -ldflags, e.g.
//
//	-ldflags "-X 'github.com/flarebyte/inline-transforms/internal/buildinfo.Version=1.2.3'"
package buildinfo

import "strings"

var (
	// Version is the semantic version or custom string. Empty means "dev".
	Version = "dev"
	// Commit is the VCS commit hash (optional).
	Commit = ""
	// Date is the build time (optional).
	Date = ""
)

// Short returns Version, or "dev" when it is unset.
func Short() string {
	if Version == "" {
		return "dev"
	}
	return Version
}

// Summary returns a concise single-line version string.
func Summary() string {
	v := Short()
	parts := make([]string, 0, 2)
	if Commit != "" {
		c := Commit
		if len(c) > 7 {
			c = c[:7]
		}
		parts = append(parts, "commit="+c)
	}
	if Date != "" {
		parts = append(parts, "date="+Date)
	}
	if len(parts) > 0 {
		v += " (" + strings.Join(parts, ", ") + ")"
	}
	return v
}
