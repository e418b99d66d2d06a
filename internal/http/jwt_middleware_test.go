package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"fast-zero/internal/domain"
	"fast-zero/internal/service"
)

func setupProtected(t *testing.T) (*gin.Engine, *testAPI) {
	t.Helper()
	api := setupAPI(t)
	authSvc := service.NewAuthService(zap.NewNop(), api.repo, service.NewBcryptHasher(4), api.tokens, nil)

	r := gin.New()
	r.GET("/protected", JWTAuthMiddleware(zap.NewNop(), authSvc), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, user.Public())
	})
	return r, api
}

func requestProtected(r http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func signRaw(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func TestJWTAuthMiddleware_AllowsValidAccessToken(t *testing.T) {
	r, api := setupProtected(t)
	alice := api.createUser(t, "alice", "alice@exemplo.com", "senha123")
	token := api.login(t, "alice@exemplo.com", "senha123")

	rec := requestProtected(r, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := decode[domain.UserPublic](t, rec); got != alice {
		t.Fatalf("expected %+v, got %+v", alice, got)
	}
}

func TestJWTAuthMiddleware_RejectsMissingToken(t *testing.T) {
	r, _ := setupProtected(t)

	for _, header := range []string{"", "Basic abc", "Token xyz"} {
		rec := requestProtected(r, header)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %q, got %d", header, rec.Code)
		}
		if got := decode[map[string]string](t, rec); got["detail"] != "Not authenticated" {
			t.Fatalf("unexpected detail %q", got["detail"])
		}
	}
}

func TestJWTAuthMiddleware_RejectsInvalidTokens(t *testing.T) {
	r, api := setupProtected(t)
	api.createUser(t, "alice", "alice@exemplo.com", "senha123")

	cases := map[string]string{
		"garbage":     "token-invalido",
		"expired":     signRaw(t, jwt.MapClaims{"sub": "alice@exemplo.com", "exp": time.Now().Add(-time.Minute).Unix()}),
		"no subject":  signRaw(t, jwt.MapClaims{"exp": time.Now().Add(time.Minute).Unix()}),
		"unknown sub": signRaw(t, jwt.MapClaims{"sub": "ghost@exemplo.com", "exp": time.Now().Add(time.Minute).Unix()}),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			rec := requestProtected(r, "Bearer "+token)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			if rec.Header().Get("WWW-Authenticate") != "Bearer" {
				t.Fatalf("expected WWW-Authenticate header")
			}
			if got := decode[map[string]string](t, rec); got["detail"] != "Could not validate credentials" {
				t.Fatalf("unexpected detail %q", got["detail"])
			}
		})
	}
}
