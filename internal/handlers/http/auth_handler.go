package http

import (
	errs "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/viniciusmp/pessoas-backend/internal/domain/errors"
	"github.com/viniciusmp/pessoas-backend/internal/handlers/dto"
	"github.com/viniciusmp/pessoas-backend/internal/handlers/middleware"
	"github.com/viniciusmp/pessoas-backend/internal/services"
)

// AuthHandler lida com registro, login, logout e sessão atual
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler cria um novo AuthHandler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register cria um novo usuário
//
//	@Summary	Registra um novo usuário
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.RegisterRequest	true	"Dados do usuário"
//	@Success	201		{object}	dto.Response
//	@Failure	422		{object}	dto.Response
//	@Router		/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationResponse(c, dto.FieldErrors(c, err)))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errs.Is(err, errors.ErrEmailAlreadyExists) {
			c.JSON(http.StatusUnprocessableEntity, dto.ValidationResponse(c, map[string][]string{
				"email": {dto.T(c, "validation.email.unique")},
			}))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse(c, "error.internal"))
		return
	}

	response := dto.UserResponseEnvelope(c, "auth.registered", dto.ToUserResponse(user))
	c.JSON(http.StatusCreated, response)
}

// Login autentica e estabelece uma sessão
//
//	@Summary	Autentica um usuário
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.LoginRequest	true	"Credenciais"
//	@Success	200		{object}	dto.Response
//	@Failure	401		{object}	dto.Response
//	@Failure	422		{object}	dto.Response
//	@Router		/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationResponse(c, dto.FieldErrors(c, err)))
		return
	}

	user, sessionToken, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errs.Is(err, errors.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse(c, "error.invalid_credentials"))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse(c, "error.internal"))
		return
	}

	response := dto.UserResponseEnvelope(c, "auth.login_success", dto.ToUserResponse(user))
	response.Token = sessionToken
	c.JSON(http.StatusOK, response)
}

// Logout invalida a sessão atual. Seguro de chamar sem sessão.
//
//	@Summary	Encerra a sessão atual
//	@Tags		auth
//	@Produce	json
//	@Success	200	{object}	dto.Response
//	@Router		/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.authService.Logout(middleware.ExtractToken(c))
	c.JSON(http.StatusOK, dto.SuccessResponse(c, "auth.logout_success"))
}

// Me retorna o usuário da sessão estabelecida
//
//	@Summary	Usuário autenticado atual
//	@Tags		auth
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.Response
//	@Failure	401	{object}	dto.Response
//	@Router		/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(middleware.UserIDContextKey)

	user, err := h.authService.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errs.Is(err, errors.ErrNotAuthenticated):
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse(c, "error.not_authenticated"))
		case errs.Is(err, errors.ErrUserNotFound):
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse(c, "error.user_not_found"))
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse(c, "error.internal"))
		}
		return
	}

	c.JSON(http.StatusOK, dto.UserResponseEnvelope(c, "auth.me_success", dto.ToUserResponse(user)))
}
