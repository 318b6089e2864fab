package serverutils

import (
	"fmt"

	"store-assistant-be/internal/constant"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks struct tags on a request DTO.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", constant.ErrValidation, err)
	}
	return nil
}
