package services

import (
	"context"
	"strings"

	"github.com/viniciusmp/pessoas-backend/internal/domain"
	"github.com/viniciusmp/pessoas-backend/internal/domain/entities"
	"github.com/viniciusmp/pessoas-backend/internal/domain/errors"
	"github.com/viniciusmp/pessoas-backend/internal/domain/ports"
	"github.com/viniciusmp/pessoas-backend/internal/domain/repositories"
	"github.com/viniciusmp/pessoas-backend/internal/domain/valueobjects"
)

// PersonService contém a lógica de negócio para pessoas
type PersonService struct {
	personRepo repositories.PersonRepository
	uow        domain.UnitOfWork
	logger     ports.Logger
}

// NewPersonService cria um novo PersonService
func NewPersonService(
	personRepo repositories.PersonRepository,
	uow domain.UnitOfWork,
	logger ports.Logger,
) *PersonService {
	return &PersonService{
		personRepo: personRepo,
		uow:        uow,
		logger:     logger,
	}
}

// PersonInput representa os dados para criar ou atualizar uma pessoa.
// Atualizações substituem todos os campos mutáveis de uma vez.
type PersonInput struct {
	Name  string
	CPF   string
	Type  string
	Phone *string
	Email *string
}

// Create cadastra uma nova pessoa. A verificação de unicidade do
// CPF/CNPJ e o insert acontecem na mesma transação.
func (s *PersonService) Create(ctx context.Context, input PersonInput) (*entities.Person, error) {
	taxID, err := valueobjects.NewTaxID(input.CPF)
	if err != nil {
		return nil, err
	}

	person := &entities.Person{
		Name:  strings.TrimSpace(input.Name),
		TaxID: taxID,
		Type:  entities.PersonType(input.Type),
		Phone: input.Phone,
		Email: input.Email,
	}

	if err := person.Validate(); err != nil {
		return nil, err
	}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.personRepo.FindByTaxID(txCtx, taxID.String(), "")
		if err != nil {
			return err
		}
		if existing != nil {
			return errors.ErrTaxIDAlreadyExists
		}
		return s.personRepo.Create(txCtx, person)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("person created", "id", person.ID, "type", person.Type)
	return person, nil
}

// Get busca uma pessoa por ID
func (s *PersonService) Get(ctx context.Context, id string) (*entities.Person, error) {
	person, err := s.personRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, errors.ErrPersonNotFound
	}
	return person, nil
}

// Update substitui os campos mutáveis da pessoa. O próprio registro
// é excluído da verificação de unicidade, então reenviar o mesmo
// CPF/CNPJ é permitido.
func (s *PersonService) Update(ctx context.Context, id string, input PersonInput) (*entities.Person, error) {
	person, err := s.personRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, errors.ErrPersonNotFound
	}

	taxID, err := valueobjects.NewTaxID(input.CPF)
	if err != nil {
		return nil, err
	}

	person.Name = strings.TrimSpace(input.Name)
	person.TaxID = taxID
	person.Type = entities.PersonType(input.Type)
	person.Phone = input.Phone
	person.Email = input.Email

	if err := person.Validate(); err != nil {
		return nil, err
	}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.personRepo.FindByTaxID(txCtx, taxID.String(), person.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return errors.ErrTaxIDAlreadyExists
		}
		return s.personRepo.Update(txCtx, person)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("person updated", "id", person.ID)
	return person, nil
}

// Delete remove uma pessoa por ID
func (s *PersonService) Delete(ctx context.Context, id string) error {
	person, err := s.personRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if person == nil {
		return errors.ErrPersonNotFound
	}

	if err := s.personRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("person deleted", "id", id)
	return nil
}

// List lista pessoas com filtros, ordenação e paginação, retornando
// também o total de registros que casam com os filtros
func (s *PersonService) List(ctx context.Context, filters repositories.PersonFilters) ([]*entities.Person, int64, error) {
	return s.personRepo.List(ctx, filters)
}

// Search busca por substring em nome, CPF/CNPJ ou email, ordenado
// por nome. O termo vazio é tratado como erro na camada HTTP.
func (s *PersonService) Search(ctx context.Context, term string) ([]*entities.Person, error) {
	return s.personRepo.Search(ctx, term)
}
