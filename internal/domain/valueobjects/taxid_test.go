package valueobjects_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/viniciusmp/pessoas-backend/internal/domain/valueobjects"
)

var _ = Describe("TaxID", func() {
	Describe("NormalizeTaxID", func() {
		It("remove pontuação de CPF formatado", func() {
			Expect(valueobjects.NormalizeTaxID("123.456.789-00")).To(Equal("12345678900"))
		})

		It("remove pontuação de CNPJ formatado", func() {
			Expect(valueobjects.NormalizeTaxID("11.222.333/0001-81")).To(Equal("11222333000181"))
		})

		It("mantém apenas dígitos de entradas arbitrárias", func() {
			Expect(valueobjects.NormalizeTaxID("abc 1x2y3!")).To(Equal("123"))
		})

		It("retorna vazio quando não há dígitos", func() {
			Expect(valueobjects.NormalizeTaxID("abc-def")).To(BeEmpty())
		})
	})

	Describe("NewTaxID", func() {
		It("aceita CPF com 11 dígitos", func() {
			taxID, err := valueobjects.NewTaxID("12345678901")
			Expect(err).NotTo(HaveOccurred())
			Expect(taxID.String()).To(Equal("12345678901"))
			Expect(taxID.IsIndividual()).To(BeTrue())
			Expect(taxID.IsLegalEntity()).To(BeFalse())
		})

		It("aceita CNPJ com 14 dígitos", func() {
			taxID, err := valueobjects.NewTaxID("11222333000181")
			Expect(err).NotTo(HaveOccurred())
			Expect(taxID.IsLegalEntity()).To(BeTrue())
		})

		It("normaliza antes de validar", func() {
			taxID, err := valueobjects.NewTaxID("123.456.789-00")
			Expect(err).NotTo(HaveOccurred())
			Expect(taxID.String()).To(Equal("12345678900"))
		})

		It("rejeita 10 dígitos", func() {
			_, err := valueobjects.NewTaxID("1234567890")
			Expect(err).To(MatchError(valueobjects.ErrInvalidTaxIDLength))
		})

		It("rejeita 12 dígitos", func() {
			_, err := valueobjects.NewTaxID("123456789012")
			Expect(err).To(MatchError(valueobjects.ErrInvalidTaxIDLength))
		})

		It("rejeita 15 dígitos", func() {
			_, err := valueobjects.NewTaxID("123456789012345")
			Expect(err).To(MatchError(valueobjects.ErrInvalidTaxIDLength))
		})

		It("rejeita valor sem dígitos", func() {
			_, err := valueobjects.NewTaxID("---")
			Expect(err).To(MatchError(valueobjects.ErrTaxIDRequired))
		})

		It("rejeita valor vazio", func() {
			_, err := valueobjects.NewTaxID("")
			Expect(err).To(MatchError(valueobjects.ErrTaxIDRequired))
		})
	})

	Describe("Formatted", func() {
		It("formata CPF como XXX.XXX.XXX-XX", func() {
			taxID, err := valueobjects.NewTaxID("12345678901")
			Expect(err).NotTo(HaveOccurred())
			Expect(taxID.Formatted()).To(Equal("123.456.789-01"))
		})

		It("retorna CNPJ sem formatação", func() {
			taxID, err := valueobjects.NewTaxID("11222333000181")
			Expect(err).NotTo(HaveOccurred())
			Expect(taxID.Formatted()).To(Equal("11222333000181"))
		})
	})
})

var _ = Describe("Email", func() {
	It("aceita email válido normalizando para minúsculas", func() {
		email, err := valueobjects.NewEmail("  Ana@X.Com ")
		Expect(err).NotTo(HaveOccurred())
		Expect(email.String()).To(Equal("ana@x.com"))
	})

	It("rejeita formato inválido", func() {
		_, err := valueobjects.NewEmail("nao-e-email")
		Expect(err).To(MatchError(valueobjects.ErrInvalidEmail))
	})

	It("rejeita email vazio", func() {
		_, err := valueobjects.NewEmail("")
		Expect(err).To(MatchError(valueobjects.ErrInvalidEmail))
	})
})
