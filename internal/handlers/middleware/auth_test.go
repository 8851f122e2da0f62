package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/viniciusmp/pessoas-backend/internal/infrastructure/token"
)

func setupAuthRouter(tokens *token.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected", RequireAuth(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(UserIDContextKey)})
	})
	return router
}

func TestExtractToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("header Bearer", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.Header.Set("Authorization", "Bearer abc123")

		if got := ExtractToken(c); got != "abc123" {
			t.Errorf("esperava abc123, obteve %q", got)
		}
	})

	t.Run("query token como fallback", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/?token=xyz789", nil)

		if got := ExtractToken(c); got != "xyz789" {
			t.Errorf("esperava xyz789, obteve %q", got)
		}
	})

	t.Run("header tem prioridade sobre a query", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/?token=da-query", nil)
		c.Request.Header.Set("Authorization", "Bearer do-header")

		if got := ExtractToken(c); got != "do-header" {
			t.Errorf("esperava do-header, obteve %q", got)
		}
	})

	t.Run("sem token retorna vazio", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		if got := ExtractToken(c); got != "" {
			t.Errorf("esperava vazio, obteve %q", got)
		}
	})
}

func TestRequireAuth(t *testing.T) {
	tokens := token.NewManager("segredo-de-teste", time.Hour)
	router := setupAuthRouter(tokens)

	t.Run("token válido expõe o user_id no contexto", func(t *testing.T) {
		sessionToken, err := tokens.Sign("user-42")
		if err != nil {
			t.Fatalf("falha ao assinar token: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+sessionToken)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("esperava 200, obteve %d", recorder.Code)
		}
		if body := recorder.Body.String(); body != `{"user_id":"user-42"}` {
			t.Errorf("esperava user_id da sessão, obteve %s", body)
		}
	})

	t.Run("token via query também autentica", func(t *testing.T) {
		sessionToken, err := tokens.Sign("user-42")
		if err != nil {
			t.Fatalf("falha ao assinar token: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/protected?token="+sessionToken, nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Errorf("esperava 200, obteve %d", recorder.Code)
		}
	})

	t.Run("sem token retorna 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("esperava 401, obteve %d", recorder.Code)
		}
	})

	t.Run("token inválido retorna 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer lixo")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("esperava 401, obteve %d", recorder.Code)
		}
	})

	t.Run("token revogado retorna 401", func(t *testing.T) {
		sessionToken, err := tokens.Sign("user-42")
		if err != nil {
			t.Fatalf("falha ao assinar token: %v", err)
		}
		tokens.Revoke(sessionToken)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+sessionToken)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("esperava 401, obteve %d", recorder.Code)
		}
	})

	t.Run("assinatura de outro segredo retorna 401", func(t *testing.T) {
		otherManager := token.NewManager("outro-segredo", time.Hour)
		sessionToken, err := otherManager.Sign("user-42")
		if err != nil {
			t.Fatalf("falha ao assinar token: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+sessionToken)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("esperava 401, obteve %d", recorder.Code)
		}
	})
}
