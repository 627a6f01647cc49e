package serverutils

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation on a request DTO. The returned
// validator.ValidationErrors is mapped to a 400 by the error middleware.
func ValidateRequest(req interface{}) error {
	return validate.Struct(req)
}
