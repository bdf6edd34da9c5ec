package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dilshanuk/salespoint/internal/domain/models"
	"github.com/dilshanuk/salespoint/internal/service/auth"
)

func newProtectedRouter(tokens *auth.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/me", Auth(tokens, nil), func(c *gin.Context) {
		principal, _ := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": principal.ID, "role": principal.Role})
	})
	r.GET("/admin", Auth(tokens, nil), RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return r
}

func issueToken(t *testing.T, tokens *auth.TokenService, role models.Role) string {
	t.Helper()
	token, err := tokens.Generate(&models.User{
		ID:       primitive.NewObjectID(),
		Username: "someone",
		Role:     role,
	})
	require.NoError(t, err)
	return token
}

func TestAuthRejectsMissingToken(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	router := newProtectedRouter(tokens)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authorization token required")
}

func TestAuthRejectsBadToken(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	router := newProtectedRouter(tokens)

	tests := []struct {
		name   string
		header string
	}{
		{"garbage token", "Bearer not.a.token"},
		{"missing bearer prefix", issueToken(t, tokens, models.RoleAdmin)},
		{"wrong signing secret", "Bearer " + issueToken(t, auth.NewTokenService("other-secret", time.Hour), models.RoleAdmin)},
		{"expired", "Bearer " + issueToken(t, auth.NewTokenService("test-secret", -time.Minute), models.RoleAdmin)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("Authorization", tt.header)
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthResolvesPrincipal(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	router := newProtectedRouter(tokens)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, models.RoleRepresentative))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), string(models.RoleRepresentative))
}

func TestRequireAdmin(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	router := newProtectedRouter(tokens)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, models.RoleRepresentative))
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Admin privileges required")

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, models.RoleAdmin))
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPrincipalFromMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := PrincipalFrom(c)
	assert.False(t, ok)
}
