package repositories

import (
	"context"

	"github.com/viniciusmp/pessoas-backend/internal/domain/entities"
)

// PersonRepository define a interface para persistência de pessoas
type PersonRepository interface {
	Create(ctx context.Context, person *entities.Person) error
	FindByID(ctx context.Context, id string) (*entities.Person, error)
	// FindByTaxID busca pelo CPF/CNPJ normalizado. Em atualizações,
	// excludeID exclui o próprio registro da verificação de unicidade.
	FindByTaxID(ctx context.Context, taxID string, excludeID string) (*entities.Person, error)
	Update(ctx context.Context, person *entities.Person) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters PersonFilters) ([]*entities.Person, int64, error)
	Search(ctx context.Context, term string) ([]*entities.Person, error)
}

const (
	DefaultPerPage = 15
	MaxPerPage     = 100
)

// PersonFilters contém filtros, ordenação e paginação para listagem.
// Os filtros são opcionais e combinados com AND.
type PersonFilters struct {
	Type *entities.PersonType // Tipo exato
	Name string               // Substring do nome, case-insensitive
	CPF  string               // CPF/CNPJ exato (normalizado antes da consulta)

	OrderBy        string // Coluna permitida: name, cpf, type, created_at, updated_at
	OrderDirection string // asc ou desc (default: desc)

	Paginate bool
	Page     int // Página (começa em 1)
	PerPage  int // Itens por página (default: 15, max: 100)
}

// Normalize aplica defaults e o teto de paginação. Implementações e
// camadas acima usam o mesmo resultado, então os metadados reportados
// sempre refletem a página realmente consultada.
func (f PersonFilters) Normalize() PersonFilters {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = DefaultPerPage
	}
	if f.PerPage > MaxPerPage {
		f.PerPage = MaxPerPage
	}
	return f
}
