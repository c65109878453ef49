package service

import (
	"fmt"

	"go-bizbook/pkg/validator"
)

func validateInput(in interface{}) error {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		first := errs[0]
		return fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, first.FailedField, first.Tag)
	}
	return nil
}
