package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikeContains(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "sun", "%sun%"},
		{"uppercase folded", "SuN", "%sun%"},
		{"regex metacharacters stay literal", ".*", "%.*%"},
		{"percent escaped", "100%", `%100\%%`},
		{"underscore escaped", "a_b", `%a\_b%`},
		{"backslash escaped", `a\b`, `%a\\b%`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LikeContains(tt.in))
		})
	}
}
