// Package rules registers the enum validations shared by request binding and
// CSV import.
package rules

import (
	"crbklasemen/models"

	"github.com/go-playground/validator/v10"
)

// Register adds the keterangan, hadiahtype and hadiahstatus tags to v.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation("keterangan", func(fl validator.FieldLevel) bool {
		return models.Keterangan(fl.Field().String()).Valid()
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("hadiahtype", func(fl validator.FieldLevel) bool {
		return models.HadiahType(fl.Field().String()).Valid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("hadiahstatus", func(fl validator.FieldLevel) bool {
		return models.HadiahStatus(fl.Field().String()).Valid()
	})
}

// New returns a validator with the domain tags registered.
func New() *validator.Validate {
	v := validator.New()
	if err := Register(v); err != nil {
		panic(err)
	}
	return v
}
