package handler

import (
	validatorpkg "anoa.com/campuscircle/pkg/validator"
)

func formatValidationError(err error) string {
	return validatorpkg.FormatValidationError(err)
}
