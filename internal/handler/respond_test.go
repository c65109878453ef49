package handler

import (
	"errors"
	"fmt"
	"testing"

	"go-bizbook/internal/repository"
	"go-bizbook/internal/service"
	"go-bizbook/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"version conflict", repository.ErrVersionConflict, 409},
		{"wrapped version conflict", fmt.Errorf("%w (stored version 3, your version 1)", repository.ErrVersionConflict), 409},
		{"busy database", database.ErrBusy, 503},
		{"not found", service.ErrNotFound, 404},
		{"gorm not found", gorm.ErrRecordNotFound, 404},
		{"bad credential", service.ErrInvalidCredential, 401},
		{"validation", fmt.Errorf("%w: field 'name'", service.ErrValidation), 400},
		{"insufficient stock", fmt.Errorf("%w: current stock 2, cannot sell 5", service.ErrInsufficientStock), 400},
		{"unknown product", service.ErrProductNotFound, 400},
		{"unknown customer", service.ErrCustomerNotFound, 400},
		{"name taken", service.ErrProductNameTaken, 400},
		{"empty update", service.ErrNoFieldsToUpdate, 400},
		{"anything else", errors.New("disk on fire"), 500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, statusForError(tc.err))
		})
	}
}
