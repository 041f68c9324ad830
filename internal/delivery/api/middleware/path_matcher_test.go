package middleware

import (
	"testing"

	"taskapi/config"

	"github.com/stretchr/testify/assert"
)

func TestPathMatcher_Match(t *testing.T) {
	matcher := NewPathMatcher(append([]string{"/files/*/meta", ""}, config.DefaultPublicPaths...))

	tests := []struct {
		path string
		want bool
	}{
		{path: "/health", want: true},
		{path: "/health/", want: true},
		{path: "/healthz", want: false},
		{path: "/auth", want: true},
		{path: "/auth/login", want: true},
		{path: "/auth/register/extra", want: true},
		{path: "/docs/index.html", want: true},
		{path: "/error", want: true},
		{path: "/files/a/meta", want: true},
		{path: "/files/a/b/meta", want: false},
		{path: "/tasks", want: false},
		{path: "/tasks/1", want: false},
		{path: "/auth/../tasks", want: false},
		{path: "/tasks/../auth/login", want: false},
		{path: "/auth/./login", want: false},
		{path: "/auth/login/..", want: false},
		{path: "//auth/login", want: false},
		{path: "/auth//", want: false},
		{path: "/auth/", want: true},
		{path: "/", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, matcher.Match(tt.path))
		})
	}
}

func TestPathMatcher_Empty(t *testing.T) {
	assert.False(t, NewPathMatcher(nil).Match("/health"))
	assert.True(t, NewPathMatcher([]string{"/**"}).Match("/anything/at/all"))
}
