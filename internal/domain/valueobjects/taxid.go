package valueobjects

import (
	"errors"
	"strings"
)

const (
	// CPFLength é a quantidade de dígitos de um CPF (pessoa física)
	CPFLength = 11
	// CNPJLength é a quantidade de dígitos de um CNPJ (pessoa jurídica)
	CNPJLength = 14
)

var (
	ErrTaxIDRequired      = errors.New("tax id is required")
	ErrInvalidTaxIDLength = errors.New("tax id must have 11 digits (CPF) or 14 digits (CNPJ)")
)

// TaxID é um value object para CPF/CNPJ. O valor armazenado é sempre
// normalizado (somente dígitos) e tem exatamente 11 ou 14 dígitos.
type TaxID struct {
	value string
}

// NormalizeTaxID remove tudo que não for dígito do valor informado
func NormalizeTaxID(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NewTaxID normaliza e valida um CPF/CNPJ
func NewTaxID(raw string) (TaxID, error) {
	normalized := NormalizeTaxID(raw)

	if normalized == "" {
		return TaxID{}, ErrTaxIDRequired
	}

	if len(normalized) != CPFLength && len(normalized) != CNPJLength {
		return TaxID{}, ErrInvalidTaxIDLength
	}

	return TaxID{value: normalized}, nil
}

// String retorna o valor normalizado
func (t TaxID) String() string {
	return t.value
}

// IsIndividual informa se o documento é um CPF (11 dígitos)
func (t TaxID) IsIndividual() bool {
	return len(t.value) == CPFLength
}

// IsLegalEntity informa se o documento é um CNPJ (14 dígitos)
func (t TaxID) IsLegalEntity() bool {
	return len(t.value) == CNPJLength
}

// Formatted retorna o CPF no formato XXX.XXX.XXX-XX; CNPJs são
// retornados sem formatação
func (t TaxID) Formatted() string {
	if !t.IsIndividual() {
		return t.value
	}
	return t.value[0:3] + "." + t.value[3:6] + "." + t.value[6:9] + "-" + t.value[9:11]
}
