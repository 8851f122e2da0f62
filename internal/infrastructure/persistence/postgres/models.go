package postgres

import "time"

// UserModel é o model GORM para usuários
type UserModel struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

func (UserModel) TableName() string {
	return "users"
}

// PersonModel é o model GORM para pessoas.
// A unicidade do CPF/CNPJ é garantida pelo índice único no banco:
// duas escritas concorrentes com o mesmo documento não podem ambas
// ter sucesso, mesmo passando pela verificação da aplicação.
type PersonModel struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	CPF       string    `gorm:"type:varchar(14);uniqueIndex;not null"`
	Type      string    `gorm:"type:varchar(20);not null;index;check:type IN ('individual','legal_entity')"`
	Phone     *string   `gorm:"type:varchar(20)"`
	Email     *string   `gorm:"type:varchar(255)"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (PersonModel) TableName() string {
	return "people"
}
