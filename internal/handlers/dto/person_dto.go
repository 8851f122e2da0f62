package dto

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/viniciusmp/pessoas-backend/internal/domain/entities"
	"github.com/viniciusmp/pessoas-backend/internal/domain/repositories"
	"github.com/viniciusmp/pessoas-backend/internal/domain/valueobjects"
)

// PersonRequest representa a requisição para criar ou atualizar uma
// pessoa. A atualização envia o conjunto completo de campos.
type PersonRequest struct {
	Name  string  `json:"name" binding:"required,notblank,max=255"`
	CPF   string  `json:"cpf" binding:"required,cpf_cnpj"`
	Type  string  `json:"type" binding:"required,oneof=individual legal_entity"`
	Phone *string `json:"phone" binding:"omitempty,max=20"`
	Email *string `json:"email" binding:"omitempty,email,max=255"`
}

// CrossFieldErrors aplica a verificação de consistência entre tipo e
// quantidade de dígitos do documento. É um erro distinto do erro de
// tamanho: só roda quando o documento tem um tamanho aceito.
func (r *PersonRequest) CrossFieldErrors(c *gin.Context) map[string][]string {
	fieldErrors := make(map[string][]string)

	normalized := valueobjects.NormalizeTaxID(r.CPF)
	validLength := len(normalized) == valueobjects.CPFLength ||
		len(normalized) == valueobjects.CNPJLength
	if !validLength {
		return fieldErrors
	}

	switch r.Type {
	case string(entities.PersonTypeIndividual):
		if len(normalized) != valueobjects.CPFLength {
			fieldErrors["cpf"] = append(fieldErrors["cpf"], T(c, "validation.cpf.individual_mismatch"))
		}
	case string(entities.PersonTypeLegalEntity):
		if len(normalized) != valueobjects.CNPJLength {
			fieldErrors["cpf"] = append(fieldErrors["cpf"], T(c, "validation.cpf.legal_entity_mismatch"))
		}
	}

	return fieldErrors
}

// ListPeopleQuery representa os parâmetros de listagem
type ListPeopleQuery struct {
	Type           string `form:"type"`
	Name           string `form:"name"`
	CPF            string `form:"cpf"`
	OrderBy        string `form:"order_by"`
	OrderDirection string `form:"order_direction"`
	PerPage        int    `form:"per_page"`
	Page           int    `form:"page"`
	Paginate       string `form:"paginate"`
}

// ToFilters converte os parâmetros da requisição nos filtros do
// repositório
func (q *ListPeopleQuery) ToFilters() repositories.PersonFilters {
	filters := repositories.PersonFilters{
		Name:           q.Name,
		CPF:            q.CPF,
		OrderBy:        q.OrderBy,
		OrderDirection: q.OrderDirection,
		Paginate:       q.Paginate == "true",
		Page:           q.Page,
		PerPage:        q.PerPage,
	}

	if q.Type != "" {
		personType := entities.PersonType(q.Type)
		filters.Type = &personType
	}

	return filters
}

// PersonResponse representa a resposta de uma pessoa
type PersonResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CPF       string    `json:"cpf"`
	Type      string    `json:"type"`
	Phone     *string   `json:"phone"`
	Email     *string   `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToPersonResponse converte uma entidade Person para PersonResponse
func ToPersonResponse(person *entities.Person) PersonResponse {
	return PersonResponse{
		ID:        person.ID,
		Name:      person.Name,
		CPF:       person.TaxID.String(),
		Type:      string(person.Type),
		Phone:     person.Phone,
		Email:     person.Email,
		CreatedAt: person.CreatedAt,
		UpdatedAt: person.UpdatedAt,
	}
}

// ToPersonResponses converte uma lista de entidades Person
func ToPersonResponses(people []*entities.Person) []PersonResponse {
	responses := make([]PersonResponse, len(people))
	for i, person := range people {
		responses[i] = ToPersonResponse(person)
	}
	return responses
}
