// Package version carries build identity and version comparison helpers.
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Build identity, overridden at link time:
//
//	-ldflags "-X github.com/somniflow/somniflow/internal/version.Version=v1.2.3"
//
//nolint:gochecknoglobals // Set via ldflags at build time
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// String returns the full human-readable version line.
func String() string {
	parts := []string{Version}
	if Commit != "" {
		parts = append(parts, fmt.Sprintf("commit %s", shortCommit(Commit)))
	}
	if Date != "" {
		parts = append(parts, fmt.Sprintf("built %s", Date))
	}
	parts = append(parts, fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH))
	return strings.Join(parts, ", ")
}

func shortCommit(c string) string {
	if len(c) > 12 {
		return c[:12]
	}
	return c
}

// Compare compares two version strings. It returns 1 when v1 is newer, -1
// when v2 is newer, and 0 when they are equivalent. Development builds
// ("dev", "", or a bare commit hash) compare older than any release.
func Compare(v1, v2 string) int {
	v1 = strings.TrimPrefix(strings.TrimSpace(v1), "v")
	v2 = strings.TrimPrefix(strings.TrimSpace(v2), "v")

	dev1 := isDev(v1)
	dev2 := isDev(v2)
	switch {
	case dev1 && dev2:
		return 0
	case dev1:
		return -1
	case dev2:
		return 1
	}

	p1 := parse(v1)
	p2 := parse(v2)
	for i := 0; i < 3; i++ {
		a, b := 0, 0
		if i < len(p1) {
			a = p1[i]
		}
		if i < len(p2) {
			b = p2[i]
		}
		if a != b {
			if a > b {
				return 1
			}
			return -1
		}
	}
	return 0
}

// IsNewer reports whether latest is a newer release than current.
func IsNewer(current, latest string) bool {
	return Compare(latest, current) > 0
}

// parse extracts major.minor.patch integers, ignoring any -pre or +build
// suffix.
func parse(v string) []int {
	if idx := strings.IndexAny(v, "-+"); idx != -1 {
		v = v[:idx]
	}

	parts := strings.Split(v, ".")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		var n int
		if _, err := fmt.Sscanf(p, "%d", &n); err == nil {
			nums = append(nums, n)
		}
	}
	return nums
}

func isDev(v string) bool {
	return v == "" || v == "dev" || isCommitHash(v)
}

// isCommitHash reports whether s looks like a git commit hash: 7-40 hex
// characters with at least one letter, so numeric versions are not mistaken
// for hashes.
func isCommitHash(s string) bool {
	s = strings.TrimSuffix(s, "-dirty")
	if len(s) < 7 || len(s) > 40 {
		return false
	}

	hasLetter := false
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
			hasLetter = true
		default:
			return false
		}
	}
	return hasLetter
}
