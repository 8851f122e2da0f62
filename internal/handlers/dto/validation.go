package dto

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/viniciusmp/pessoas-backend/internal/domain/valueobjects"
)

var registerOnce sync.Once

// RegisterValidators registra as regras customizadas no validator do
// Gin. Deve ser chamado uma vez no boot (e nos testes de handler).
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		// Erros de validação usam o nome do campo do JSON
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		// notblank: required aceita strings somente com espaços;
		// nomes em branco são rejeitados aqui
		_ = v.RegisterValidation("notblank", validators.NotBlank)

		// cpf_cnpj: após normalização, o documento precisa ter
		// exatamente 11 (CPF) ou 14 (CNPJ) dígitos
		_ = v.RegisterValidation("cpf_cnpj", func(fl validator.FieldLevel) bool {
			value, ok := fl.Field().Interface().(string)
			if !ok {
				return false
			}
			normalized := valueobjects.NormalizeTaxID(value)
			return len(normalized) == valueobjects.CPFLength ||
				len(normalized) == valueobjects.CNPJLength
		})
	})
}

// FieldErrors converte um erro de binding em um mapa campo -> mensagens
// traduzidas. Todas as violações são reportadas juntas, permitindo ao
// cliente exibir todos os erros de uma vez.
func FieldErrors(c *gin.Context, err error) map[string][]string {
	fieldErrors := make(map[string][]string)

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		fieldErrors["body"] = []string{T(c, "validation.malformed_body")}
		return fieldErrors
	}

	for _, fe := range validationErrs {
		field := fe.Field()
		key := "validation." + field + "." + fe.Tag()
		message := T(c, key)
		if message == key {
			message = T(c, "validation.invalid")
		}
		fieldErrors[field] = append(fieldErrors[field], message)
	}

	return fieldErrors
}
