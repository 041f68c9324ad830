package middleware

import (
	"path"
	"strings"
)

// PathMatcher matches request paths against Ant-style patterns:
// "*" matches one segment, "**" any number of segments, anything else literally.
type PathMatcher struct {
	patterns [][]string
}

// NewPathMatcher compiles the patterns once; the matcher is read-only afterwards.
func NewPathMatcher(patterns []string) *PathMatcher {
	compiled := make([][]string, 0, len(patterns))
	for _, pattern := range patterns {
		if strings.TrimSpace(pattern) == "" {
			continue
		}
		compiled = append(compiled, segments(pattern))
	}

	return &PathMatcher{patterns: compiled}
}

// Match reports whether the path matches any pattern. Paths that cleaning would
// rewrite (dot segments, repeated slashes) never match: the router sees them unresolved.
func (m *PathMatcher) Match(requestPath string) bool {
	if !isClean(requestPath) {
		return false
	}

	pathSegments := segments(requestPath)
	for _, pattern := range m.patterns {
		if matchSegments(pattern, pathSegments) {
			return true
		}
	}

	return false
}

func isClean(p string) bool {
	trimmed := strings.TrimSuffix(p, "/")
	if trimmed == "" {
		return true
	}

	return path.Clean(trimmed) == trimmed
}

func segments(p string) []string {
	trimmed := strings.Trim(path.Clean("/"+p), "/")
	if trimmed == "" {
		return nil
	}

	return strings.Split(trimmed, "/")
}

func matchSegments(pattern, segs []string) bool {
	if len(pattern) == 0 {
		return len(segs) == 0
	}

	if pattern[0] == "**" {
		for i := 0; i <= len(segs); i++ {
			if matchSegments(pattern[1:], segs[i:]) {
				return true
			}
		}

		return false
	}

	if len(segs) == 0 {
		return false
	}

	if ok, err := path.Match(pattern[0], segs[0]); err != nil || !ok {
		return false
	}

	return matchSegments(pattern[1:], segs[1:])
}
