package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/viniciusmp/pessoas-backend/internal/domain/entities"
	"github.com/viniciusmp/pessoas-backend/internal/domain/repositories"
	"github.com/viniciusmp/pessoas-backend/internal/domain/valueobjects"
)

// UserRepository implementa repositories.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	model := r.toModel(user)
	if model.ID == "" {
		model.ID = uuid.NewString()
	}

	db := r.getDB(ctx)
	if err := db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}

	user.ID = model.ID
	user.CreatedAt = model.CreatedAt
	user.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	var model UserModel

	db := r.getDB(ctx)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var model UserModel

	db := r.getDB(ctx)
	if err := db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model)
}

// getDB extrai DB do contexto (para suportar transações)
func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return r.db
}

// Conversores
func (r *UserRepository) toModel(user *entities.User) *UserModel {
	return &UserModel{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email.String(),
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func (r *UserRepository) toEntity(model *UserModel) (*entities.User, error) {
	email, err := valueobjects.NewEmail(model.Email)
	if err != nil {
		return nil, err
	}

	return &entities.User{
		ID:           model.ID,
		Name:         model.Name,
		Email:        email,
		PasswordHash: model.PasswordHash,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}, nil
}
