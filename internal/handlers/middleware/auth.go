package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/viniciusmp/pessoas-backend/internal/infrastructure/i18n"
	"github.com/viniciusmp/pessoas-backend/internal/infrastructure/token"
)

const (
	// UserIDContextKey é a chave do ID do usuário autenticado no
	// contexto do Gin. O estado da sessão viaja pelo contexto da
	// requisição, nunca por estado global.
	UserIDContextKey = "user_id"
)

// ExtractToken obtém o token de sessão da requisição: header
// Authorization (Bearer) ou, em conexões websocket, query ?token=
func ExtractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}

// RequireAuth bloqueia requisições sem sessão válida antes de
// qualquer lógica de validação ou consulta rodar
func RequireAuth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := ExtractToken(c)
		if raw == "" {
			abortUnauthorized(c)
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(UserIDContextKey, claims.UserID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status":  "error",
		"message": translate(c, "error.not_authenticated"),
	})
}

// translate resolve uma mensagem i18n a partir do contexto.
// O pacote dto importa este pacote; usar dto.T aqui criaria um ciclo.
func translate(c *gin.Context, key string) string {
	service, exists := c.Get(I18nServiceContextKey)
	if !exists {
		return key
	}

	i18nService, ok := service.(*i18n.Service)
	if !ok {
		return key
	}

	lang, _ := c.Get(LanguageContextKey)
	langStr, _ := lang.(string)
	if langStr == "" {
		langStr = i18nService.GetDefaultLanguage()
	}

	return i18nService.T(langStr, key)
}
