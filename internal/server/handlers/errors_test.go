package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/dilshanuk/salespoint/internal/domain/models"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation",
			err:        models.NewValidationError("name is required"),
			wantStatus: http.StatusBadRequest,
			wantBody:   "name is required",
		},
		{
			name:       "duplicate",
			err:        &models.DuplicateError{Message: "username already taken"},
			wantStatus: http.StatusBadRequest,
			wantBody:   "username already taken",
		},
		{
			name:       "invalid credentials",
			err:        models.ErrInvalidCredentials,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid credentials",
		},
		{
			name:       "forbidden",
			err:        models.ErrForbidden,
			wantStatus: http.StatusForbidden,
			wantBody:   "Access denied",
		},
		{
			name:       "not found",
			err:        models.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   "Resource not found",
		},
		{
			name:       "insufficient stock",
			err:        &models.InsufficientStockError{ProductName: "Widget", Available: 2},
			wantStatus: http.StatusConflict,
			wantBody:   "insufficient quantity for Widget. Available: 2",
		},
		{
			name:       "invalid transition",
			err:        &models.InvalidTransitionError{From: models.StatusPending, To: models.StatusDelivered},
			wantStatus: http.StatusConflict,
			wantBody:   "cannot transition order from Pending to Delivered",
		},
		{
			name:       "unexpected",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			respondError(c, nil, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}
