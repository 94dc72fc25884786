package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backend/entity"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(roles...), func(c *gin.Context) {
		userID, _ := c.Get("userId")
		role, _ := c.Get("role")
		c.JSON(http.StatusOK, gin.H{"ok": true, "userId": userID, "role": role})
	})
	return r
}

func doGet(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newProtectedRouter()

	w := doGet(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// header มีแต่ไม่ใช่ Bearer
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthInvalidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newProtectedRouter()

	w := doGet(r, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// เซ็นด้วย secret อื่น
	wrong, err := utils.GenerateToken(1, entity.RoleDonor, "other-secret", time.Hour)
	require.NoError(t, err)
	w = doGet(r, wrong)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// token หมดอายุแล้ว
	expired, err := utils.GenerateToken(1, entity.RoleDonor, "test-secret", -time.Hour)
	require.NoError(t, err)
	w = doGet(r, expired)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthSetsContext(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newProtectedRouter()

	token, err := utils.GenerateToken(42, entity.RoleCharity, "test-secret", time.Hour)
	require.NoError(t, err)

	w := doGet(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":42`)
	assert.Contains(t, w.Body.String(), `"role":"charity"`)
}

func TestAuthRoleGate(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newProtectedRouter(entity.RoleAdmin)

	donor, err := utils.GenerateToken(1, entity.RoleDonor, "test-secret", time.Hour)
	require.NoError(t, err)
	w := doGet(r, donor)
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin, err := utils.GenerateToken(2, entity.RoleAdmin, "test-secret", time.Hour)
	require.NoError(t, err)
	w = doGet(r, admin)
	assert.Equal(t, http.StatusOK, w.Code)
}
