package domain_test

import (
	"errors"
	"testing"

	"github.com/SscSPs/easyledger/internal/apperrors"
	"github.com/SscSPs/easyledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyUpload(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		size        int64
		wantKind    domain.UploadKind
		wantType    string
		wantErr     string
	}{
		{name: "jpeg", contentType: "image/jpeg", size: 1024, wantKind: domain.UploadImage, wantType: "image/jpeg"},
		{name: "jpg alias", contentType: "image/jpg", size: 1024, wantKind: domain.UploadImage, wantType: "image/jpeg"},
		{name: "webp with params", contentType: "image/webp; charset=binary", size: 10, wantKind: domain.UploadImage, wantType: "image/webp"},
		{name: "pdf", contentType: "application/pdf", size: 2048, wantKind: domain.UploadPDF, wantType: "application/pdf"},
		{name: "exactly at limit", contentType: "image/png", size: domain.MaxUploadBytes, wantKind: domain.UploadImage, wantType: "image/png"},
		{name: "gif rejected", contentType: "image/gif", size: 10, wantErr: "Invalid file type. Allowed: JPEG, PNG, WebP, PDF"},
		{name: "too large", contentType: "application/pdf", size: domain.MaxUploadBytes + 1, wantErr: "File size exceeds 10MB limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ct, err := domain.ClassifyUpload(tt.contentType, tt.size, 0)
			if tt.wantErr != "" {
				require.Error(t, err)
				var appErr *apperrors.AppError
				require.True(t, errors.As(err, &appErr))
				assert.Equal(t, tt.wantErr, appErr.Message)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantType, ct)
		})
	}
}
