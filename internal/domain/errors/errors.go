package errors

import "errors"

// Business errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções devem estar em internal/infrastructure/i18n/locales/*.json
var (
	ErrUserNotFound       = errors.New("error.user_not_found")
	ErrEmailAlreadyExists = errors.New("error.email_already_exists")
	ErrInvalidCredentials = errors.New("error.invalid_credentials")
	ErrNotAuthenticated   = errors.New("error.not_authenticated")

	ErrPersonNotFound     = errors.New("error.person_not_found")
	ErrTaxIDAlreadyExists = errors.New("error.tax_id_already_exists")
)
