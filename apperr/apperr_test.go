package apperr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NotFound("Post not found"), http.StatusNotFound},
		{"unauthorized", Unauthorized("Unauthorized"), http.StatusUnauthorized},
		{"invalid", Invalid("Comment text is required"), http.StatusBadRequest},
		{"internal", Internal("boom", errors.New("sql down")), http.StatusInternalServerError},
		{"plain error", errors.New("anything"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestPublicMessageHidesInternals(t *testing.T) {
	assert.Equal(t, "Post not found", PublicMessage(NotFound("Post not found")))
	assert.Equal(t, "Server error", PublicMessage(Internal("db write failed", errors.New("dsn leak"))))
	assert.Equal(t, "Server error", PublicMessage(errors.New("raw")))
}

func TestWrappedErrorsKeepTheirKind(t *testing.T) {
	err := NotFound("Post not found")
	wrapped := errors.Join(errors.New("while handling request"), err)
	assert.Equal(t, http.StatusNotFound, Status(wrapped))
	assert.True(t, IsKind(wrapped, KindNotFound))
}
