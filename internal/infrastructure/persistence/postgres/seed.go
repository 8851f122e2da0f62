package postgres

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/viniciusmp/pessoas-backend/internal/domain/ports"
)

// Seed popula dados de exemplo de forma idempotente: registros já
// existentes não são recriados. Todos os documentos seguem a regra
// canônica de 11 dígitos (CPF) ou 14 dígitos (CNPJ).
func Seed(ctx context.Context, db *gorm.DB, log ports.Logger) error {
	if err := seedUser(ctx, db, log); err != nil {
		return err
	}
	return seedPeople(ctx, db, log)
}

func seedUser(ctx context.Context, db *gorm.DB, log ports.Logger) error {
	var user UserModel
	err := db.WithContext(ctx).Where("email = ?", "admin@pessoas.com.br").First(&user).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := UserModel{
		ID:           "8b5f0a2e-8f13-4c61-9be1-1a2b3c4d5e6f",
		Name:         "Administrador",
		Email:        "admin@pessoas.com.br",
		PasswordHash: string(hash),
	}

	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return err
	}

	log.Info("seed: usuário admin criado", "email", admin.Email)
	return nil
}

func seedPeople(ctx context.Context, db *gorm.DB, log ports.Logger) error {
	people := []PersonModel{
		{
			ID:    "0f4aa9c2-6d30-4f04-b1c7-2f1df2a40111",
			Name:  "João Silva Santos",
			CPF:   "12345678901",
			Type:  "individual",
			Phone: ptr("11999999999"),
			Email: ptr("joao.silva@email.com"),
		},
		{
			ID:    "0f4aa9c2-6d30-4f04-b1c7-2f1df2a40222",
			Name:  "Maria Oliveira Costa",
			CPF:   "98765432100",
			Type:  "individual",
			Phone: ptr("11888888888"),
			Email: ptr("maria.oliveira@email.com"),
		},
		{
			ID:    "0f4aa9c2-6d30-4f04-b1c7-2f1df2a40333",
			Name:  "Empresa ABC Ltda",
			CPF:   "11222333000181",
			Type:  "legal_entity",
			Phone: ptr("1133334444"),
			Email: ptr("contato@empresaabc.com.br"),
		},
		{
			ID:    "0f4aa9c2-6d30-4f04-b1c7-2f1df2a40444",
			Name:  "Tech Solutions S.A.",
			CPF:   "55666777000199",
			Type:  "legal_entity",
			Phone: ptr("1155556666"),
			Email: ptr("info@techsolutions.com.br"),
		},
	}

	created := 0
	for _, person := range people {
		var existing PersonModel
		err := db.WithContext(ctx).Where("cpf = ?", person.CPF).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := db.WithContext(ctx).Create(&person).Error; err != nil {
			return err
		}
		created++
	}

	if created > 0 {
		log.Info("seed: pessoas de exemplo criadas", "count", created)
	}
	return nil
}

func ptr(s string) *string {
	return &s
}
