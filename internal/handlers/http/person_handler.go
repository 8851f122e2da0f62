package http

import (
	errs "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/viniciusmp/pessoas-backend/internal/domain/errors"
	"github.com/viniciusmp/pessoas-backend/internal/domain/ports"
	"github.com/viniciusmp/pessoas-backend/internal/handlers/dto"
	"github.com/viniciusmp/pessoas-backend/internal/services"
)

// PersonHandler lida com requisições HTTP relacionadas a pessoas
type PersonHandler struct {
	personService *services.PersonService
	events        ports.EventPublisher
}

// NewPersonHandler cria um novo PersonHandler
func NewPersonHandler(personService *services.PersonService, events ports.EventPublisher) *PersonHandler {
	return &PersonHandler{
		personService: personService,
		events:        events,
	}
}

// List lista pessoas com filtros, ordenação e paginação opcionais
//
//	@Summary	Lista pessoas
//	@Tags		people
//	@Produce	json
//	@Security	BearerAuth
//	@Param		type			query		string	false	"Filtro por tipo"	Enums(individual, legal_entity)
//	@Param		name			query		string	false	"Substring do nome, case-insensitive"
//	@Param		cpf				query		string	false	"CPF/CNPJ exato"
//	@Param		order_by		query		string	false	"Coluna de ordenação"
//	@Param		order_direction	query		string	false	"asc ou desc"
//	@Param		per_page		query		int		false	"Itens por página (max 100)"
//	@Param		page			query		int		false	"Página"
//	@Param		paginate		query		string	false	"true para paginar"
//	@Success	200				{object}	dto.Response
//	@Router		/people [get]
func (h *PersonHandler) List(c *gin.Context) {
	var query dto.ListPeopleQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationResponse(c, dto.FieldErrors(c, err)))
		return
	}

	filters := query.ToFilters().Normalize()
	people, total, err := h.personService.List(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse(c, "error.internal"))
		return
	}

	response := dto.DataResponse(c, "person.listed", dto.ToPersonResponses(people))
	if filters.Paginate {
		response.Pagination = dto.NewPagination(filters.Page, filters.PerPage, total)
	}

	c.JSON(http.StatusOK, response)
}

// Create cadastra uma nova pessoa
//
//	@Summary	Cadastra uma pessoa
//	@Tags		people
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.PersonRequest	true	"Dados da pessoa"
//	@Success	201		{object}	dto.Response
//	@Failure	422		{object}	dto.Response
//	@Router		/people [post]
func (h *PersonHandler) Create(c *gin.Context) {
	req, fieldErrors := h.bindPersonRequest(c)
	if fieldErrors != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationResponse(c, fieldErrors))
		return
	}

	person, err := h.personService.Create(c.Request.Context(), services.PersonInput{
		Name:  req.Name,
		CPF:   req.CPF,
		Type:  req.Type,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		h.handlePersonError(c, err)
		return
	}

	data := dto.ToPersonResponse(person)
	h.events.Publish("person.created", data)
	c.JSON(http.StatusCreated, dto.DataResponse(c, "person.created", data))
}

// Show busca uma pessoa por ID
//
//	@Summary	Busca uma pessoa
//	@Tags		people
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID da pessoa"
//	@Success	200	{object}	dto.Response
//	@Failure	404	{object}	dto.Response
//	@Router		/people/{id} [get]
func (h *PersonHandler) Show(c *gin.Context) {
	person, err := h.personService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handlePersonError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DataResponse(c, "person.retrieved", dto.ToPersonResponse(person)))
}

// Update substitui os dados de uma pessoa
//
//	@Summary	Atualiza uma pessoa
//	@Tags		people
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"ID da pessoa"
//	@Param		request	body		dto.PersonRequest	true	"Dados da pessoa"
//	@Success	200		{object}	dto.Response
//	@Failure	404		{object}	dto.Response
//	@Failure	422		{object}	dto.Response
//	@Router		/people/{id} [put]
func (h *PersonHandler) Update(c *gin.Context) {
	req, fieldErrors := h.bindPersonRequest(c)
	if fieldErrors != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationResponse(c, fieldErrors))
		return
	}

	person, err := h.personService.Update(c.Request.Context(), c.Param("id"), services.PersonInput{
		Name:  req.Name,
		CPF:   req.CPF,
		Type:  req.Type,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		h.handlePersonError(c, err)
		return
	}

	data := dto.ToPersonResponse(person)
	h.events.Publish("person.updated", data)
	c.JSON(http.StatusOK, dto.DataResponse(c, "person.updated", data))
}

// Delete remove uma pessoa
//
//	@Summary	Remove uma pessoa
//	@Tags		people
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID da pessoa"
//	@Success	200	{object}	dto.Response
//	@Failure	404	{object}	dto.Response
//	@Router		/people/{id} [delete]
func (h *PersonHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.personService.Delete(c.Request.Context(), id); err != nil {
		h.handlePersonError(c, err)
		return
	}

	h.events.Publish("person.deleted", gin.H{"id": id})
	c.JSON(http.StatusOK, dto.SuccessResponse(c, "person.deleted"))
}

// Search busca pessoas por nome, CPF/CNPJ ou email
//
//	@Summary	Busca textual de pessoas
//	@Tags		people
//	@Produce	json
//	@Security	BearerAuth
//	@Param		q	query		string	true	"Termo de busca"
//	@Success	200	{object}	dto.Response
//	@Failure	400	{object}	dto.Response
//	@Router		/people/search [get]
func (h *PersonHandler) Search(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse(c, "error.search_term_required"))
		return
	}

	people, err := h.personService.Search(c.Request.Context(), term)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse(c, "error.internal"))
		return
	}

	c.JSON(http.StatusOK, dto.DataResponse(c, "person.search_completed", dto.ToPersonResponses(people)))
}

// bindPersonRequest faz o bind e junta todos os erros de validação em
// um único mapa: violações de campo e a consistência entre tipo e
// documento são reportadas juntas, nunca uma de cada vez
func (h *PersonHandler) bindPersonRequest(c *gin.Context) (*dto.PersonRequest, map[string][]string) {
	var req dto.PersonRequest

	fieldErrors := make(map[string][]string)
	if err := c.ShouldBindJSON(&req); err != nil {
		fieldErrors = dto.FieldErrors(c, err)
	}

	for field, messages := range req.CrossFieldErrors(c) {
		fieldErrors[field] = append(fieldErrors[field], messages...)
	}

	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}

	return &req, nil
}

// handlePersonError mapeia erros de domínio para status HTTP
func (h *PersonHandler) handlePersonError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errors.ErrPersonNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse(c, "error.person_not_found"))
	case errs.Is(err, errors.ErrTaxIDAlreadyExists):
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationResponse(c, map[string][]string{
			"cpf": {dto.T(c, "validation.cpf.unique")},
		}))
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse(c, "error.internal"))
	}
}
