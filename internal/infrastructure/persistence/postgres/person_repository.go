package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/viniciusmp/pessoas-backend/internal/domain/entities"
	domainerrors "github.com/viniciusmp/pessoas-backend/internal/domain/errors"
	"github.com/viniciusmp/pessoas-backend/internal/domain/repositories"
	"github.com/viniciusmp/pessoas-backend/internal/domain/valueobjects"
)

// Colunas permitidas para ordenação; qualquer outra é ignorada
// e o default (created_at desc) é usado no lugar
var orderableColumns = map[string]bool{
	"name":       true,
	"cpf":        true,
	"type":       true,
	"created_at": true,
	"updated_at": true,
}

// PersonRepository implementa repositories.PersonRepository
type PersonRepository struct {
	db *gorm.DB
}

// NewPersonRepository cria um novo PersonRepository
func NewPersonRepository(db *gorm.DB) repositories.PersonRepository {
	return &PersonRepository{db: db}
}

func (r *PersonRepository) Create(ctx context.Context, person *entities.Person) error {
	model := r.toModel(person)
	if model.ID == "" {
		model.ID = uuid.NewString()
	}

	db := r.getDB(ctx)
	if err := db.WithContext(ctx).Create(model).Error; err != nil {
		return translateDuplicateTaxID(err)
	}

	person.ID = model.ID
	person.CreatedAt = model.CreatedAt
	person.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *PersonRepository) FindByID(ctx context.Context, id string) (*entities.Person, error) {
	var model PersonModel

	db := r.getDB(ctx)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model)
}

func (r *PersonRepository) FindByTaxID(ctx context.Context, taxID string, excludeID string) (*entities.Person, error) {
	var model PersonModel

	db := r.getDB(ctx)
	query := db.WithContext(ctx).Where("cpf = ?", taxID)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model)
}

func (r *PersonRepository) Update(ctx context.Context, person *entities.Person) error {
	model := r.toModel(person)

	db := r.getDB(ctx)
	if err := db.WithContext(ctx).Save(model).Error; err != nil {
		return translateDuplicateTaxID(err)
	}

	person.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *PersonRepository) Delete(ctx context.Context, id string) error {
	db := r.getDB(ctx)
	return db.WithContext(ctx).Where("id = ?", id).Delete(&PersonModel{}).Error
}

func (r *PersonRepository) List(ctx context.Context, filters repositories.PersonFilters) ([]*entities.Person, int64, error) {
	filters = filters.Normalize()

	db := r.getDB(ctx)
	query := db.WithContext(ctx).Model(&PersonModel{})

	// Filtros combinados com AND
	if filters.Type != nil {
		query = query.Where("type = ?", string(*filters.Type))
	}
	if filters.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filters.Name)+"%")
	}
	if filters.CPF != "" {
		query = query.Where("cpf = ?", valueobjects.NormalizeTaxID(filters.CPF))
	}

	// Total antes de limit/offset: reflete todas as linhas filtradas
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(orderClause(filters.OrderBy, filters.OrderDirection))

	if filters.Paginate {
		query = query.Limit(filters.PerPage).Offset((filters.Page - 1) * filters.PerPage)
	}

	var models []*PersonModel
	if err := query.Find(&models).Error; err != nil {
		return nil, 0, err
	}

	people, err := r.toEntities(models)
	if err != nil {
		return nil, 0, err
	}
	return people, total, nil
}

func (r *PersonRepository) Search(ctx context.Context, term string) ([]*entities.Person, error) {
	db := r.getDB(ctx)

	pattern := "%" + strings.ToLower(term) + "%"
	var models []*PersonModel
	err := db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR cpf LIKE ? OR LOWER(email) LIKE ?", pattern, "%"+term+"%", pattern).
		Order("name asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	return r.toEntities(models)
}

// orderClause monta a cláusula de ordenação validando coluna e direção
func orderClause(orderBy, direction string) string {
	column := "created_at"
	dir := "desc"

	if orderableColumns[orderBy] {
		column = orderBy
		if strings.EqualFold(direction, "asc") {
			dir = "asc"
		}
	}

	return column + " " + dir
}

// translateDuplicateTaxID converte violações do índice único de cpf
// em erro de domínio. Fecha a janela de corrida entre a verificação
// da aplicação e o insert/update.
func translateDuplicateTaxID(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainerrors.ErrTaxIDAlreadyExists
	}
	msg := err.Error()
	if strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint") {
		return domainerrors.ErrTaxIDAlreadyExists
	}
	return err
}

// getDB extrai DB do contexto (para suportar transações)
func (r *PersonRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return r.db
}

// Conversores
func (r *PersonRepository) toModel(person *entities.Person) *PersonModel {
	return &PersonModel{
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

func (r *PersonRepository) toEntity(model *PersonModel) (*entities.Person, error) {
	taxID, err := valueobjects.NewTaxID(model.CPF)
	if err != nil {
		return nil, err
	}

	return &entities.Person{
		ID:        model.ID,
		Name:      model.Name,
		TaxID:     taxID,
		Type:      entities.PersonType(model.Type),
		Phone:     model.Phone,
		Email:     model.Email,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

func (r *PersonRepository) toEntities(models []*PersonModel) ([]*entities.Person, error) {
	people := make([]*entities.Person, 0, len(models))

	for _, model := range models {
		entity, err := r.toEntity(model)
		if err != nil {
			return nil, err
		}
		people = append(people, entity)
	}

	return people, nil
}
