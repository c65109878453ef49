package service

import "errors"

// Business error taxonomy. Handlers map these onto HTTP statuses:
// validation and missing-reference errors are 400, ErrNotFound is 404,
// repository.ErrVersionConflict is 409, database.ErrBusy is 503 and
// everything else is 500.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("record not found or access denied")
	ErrProductNotFound   = errors.New("product not found")
	ErrCustomerNotFound  = errors.New("customer not found or access denied")
	ErrSupplierNotFound  = errors.New("supplier not found or access denied")
	ErrEmployeeNotFound  = errors.New("employee not found or access denied")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrProductNameTaken  = errors.New("product name already exists")
	ErrNoFieldsToUpdate  = errors.New("no fields to update")
	ErrUsernameTaken     = errors.New("username already exists")
	ErrInvalidCredential = errors.New("invalid username or password")
	ErrWrongPassword     = errors.New("current password is incorrect")
)
