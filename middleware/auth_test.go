package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"messmate-api/config"
	"messmate-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func newProtectedRouter(types ...models.UserType) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{AuthRequired()}
	if len(types) > 0 {
		handlers = append(handlers, RoleRequired(types...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": GetUserID(c), "userType": GetUserType(c)})
	})
	r.GET("/test", handlers...)
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired_MissingHeader(t *testing.T) {
	w := doRequest(newProtectedRouter(), "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthRequired_InvalidFormat(t *testing.T) {
	w := doRequest(newProtectedRouter(), "InvalidFormat")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	w := doRequest(newProtectedRouter(), "Bearer invalid_token_xyz")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthRequired_ExpiredToken(t *testing.T) {
	claims := Claims{
		UserID:   1,
		UserType: models.UserStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(config.JWTSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	w := doRequest(newProtectedRouter(), "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthRequired_ValidToken(t *testing.T) {
	token, err := GenerateToken(&models.User{ID: 42, Email: "test@example.com", UserType: models.UserStudent})
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}
	w := doRequest(newProtectedRouter(), "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if body := w.Body.String(); body != `{"userId":42,"userType":"STUDENT"}` {
		t.Errorf("unexpected body %s", body)
	}
}

func TestRoleRequired(t *testing.T) {
	tests := []struct {
		name     string
		userType models.UserType
		want     int
	}{
		{"student denied", models.UserStudent, http.StatusForbidden},
		{"staff allowed", models.UserStaff, http.StatusOK},
		{"admin allowed", models.UserAdmin, http.StatusOK},
	}
	r := newProtectedRouter(models.UserStaff, models.UserAdmin)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(&models.User{ID: 1, Email: "u@example.com", UserType: tt.userType})
			if err != nil {
				t.Fatalf("generate token: %v", err)
			}
			if w := doRequest(r, "Bearer "+token); w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
