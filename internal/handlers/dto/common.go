package dto

import (
	"github.com/gin-gonic/gin"
)

// Response é o envelope padrão de todas as respostas da API
type Response struct {
	Status     string              `json:"status"`
	Message    string              `json:"message"`
	Data       any                 `json:"data,omitempty"`
	User       any                 `json:"user,omitempty"`
	Token      string              `json:"token,omitempty"`
	Pagination *Pagination         `json:"pagination,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
}

// Pagination descreve a página retornada e o total de registros
// que casam com os filtros, independente do tamanho da página
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
}

// NewPagination calcula os metadados de paginação
func NewPagination(page, perPage int, total int64) *Pagination {
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	return &Pagination{
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     perPage,
		Total:       total,
	}
}

// SuccessResponse cria uma resposta de sucesso com mensagem traduzida
func SuccessResponse(c *gin.Context, messageKey string) Response {
	return Response{
		Status:  "success",
		Message: T(c, messageKey),
	}
}

// DataResponse cria uma resposta de sucesso carregando dados
func DataResponse(c *gin.Context, messageKey string, data any) Response {
	return Response{
		Status:  "success",
		Message: T(c, messageKey),
		Data:    data,
	}
}

// UserResponseEnvelope cria uma resposta de sucesso com a chave user
func UserResponseEnvelope(c *gin.Context, messageKey string, user any) Response {
	return Response{
		Status:  "success",
		Message: T(c, messageKey),
		User:    user,
	}
}

// ErrorResponse cria uma resposta de erro com mensagem traduzida
func ErrorResponse(c *gin.Context, messageKey string) Response {
	return Response{
		Status:  "error",
		Message: T(c, messageKey),
	}
}

// ValidationResponse cria uma resposta 422 com os erros por campo
func ValidationResponse(c *gin.Context, fieldErrors map[string][]string) Response {
	return Response{
		Status:  "error",
		Message: T(c, "error.validation"),
		Errors:  fieldErrors,
	}
}
