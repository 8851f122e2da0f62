package entities

import (
	"errors"
	"strings"
	"time"

	"github.com/viniciusmp/pessoas-backend/internal/domain/valueobjects"
)

// PersonType indica se o cadastro é de pessoa física ou jurídica
type PersonType string

const (
	PersonTypeIndividual  PersonType = "individual"
	PersonTypeLegalEntity PersonType = "legal_entity"
)

var (
	ErrPersonNameRequired = errors.New("name is required")
	ErrPersonNameTooLong  = errors.New("name must have at most 255 characters")
	ErrInvalidPersonType  = errors.New("type must be individual or legal_entity")
	ErrTaxIDTypeMismatch  = errors.New("tax id length does not match person type")
	ErrPhoneTooLong       = errors.New("phone must have at most 20 characters")
)

// IsValid informa se o tipo é um dos valores aceitos
func (t PersonType) IsValid() bool {
	return t == PersonTypeIndividual || t == PersonTypeLegalEntity
}

// Person representa um contato cadastrado, identificado pelo CPF/CNPJ
type Person struct {
	ID        string
	Name      string
	TaxID     valueobjects.TaxID
	Type      PersonType
	Phone     *string
	Email     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate valida regras de negócio da entidade Person.
// A consistência entre tipo e quantidade de dígitos do documento
// é um invariante: individual exige CPF (11) e legal_entity exige CNPJ (14).
func (p *Person) Validate() error {
	// Nome somente com espaços conta como vazio
	if strings.TrimSpace(p.Name) == "" {
		return ErrPersonNameRequired
	}

	if len(p.Name) > 255 {
		return ErrPersonNameTooLong
	}

	if !p.Type.IsValid() {
		return ErrInvalidPersonType
	}

	if p.Type == PersonTypeIndividual && !p.TaxID.IsIndividual() {
		return ErrTaxIDTypeMismatch
	}

	if p.Type == PersonTypeLegalEntity && !p.TaxID.IsLegalEntity() {
		return ErrTaxIDTypeMismatch
	}

	if p.Phone != nil && len(*p.Phone) > 20 {
		return ErrPhoneTooLong
	}

	return nil
}
