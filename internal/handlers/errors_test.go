package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/easyledger/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"app error keeps its code", apperrors.NewBadRequestError("Kunde mangler e-postadresse"), http.StatusBadRequest, "Kunde mangler e-postadresse"},
		{"wrapped app error", fmt.Errorf("outer: %w", apperrors.NewBadRequestError("bad")), http.StatusBadRequest, "bad"},
		{"validation", fmt.Errorf("%w: amount", apperrors.ErrValidation), http.StatusBadRequest, "validation error: amount"},
		{"unauthorized", apperrors.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden, "Forbidden"},
		{"not found", fmt.Errorf("%w: invoice x", apperrors.ErrNotFound), http.StatusNotFound, "resource not found: invoice x"},
		{"duplicate", apperrors.ErrDuplicate, http.StatusConflict, "resource already exists"},
		{"conflict", apperrors.ErrConflict, http.StatusConflict, "resource state conflict"},
		{"external", fmt.Errorf("%w: mail", apperrors.ErrExternalService), http.StatusBadGateway, "external service error: mail"},
		{"unknown", errors.New("pool closed"), http.StatusInternalServerError, "fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := statusForError(tt.err, "fallback")
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
