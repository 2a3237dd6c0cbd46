package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/petdohod/workshop-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON name so the frontend can highlight them.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationError converts a validator error into the user-facing Czech
// message the frontend expects. Only the first failed field is reported.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	msg := "Vyplň prosím všechna povinná pole"
	switch fe.Tag() {
	case "email":
		msg = "Zadej platný email"
	case "gt", "gte", "numeric", "oneof", "datetime":
		msg = "Neplatná hodnota"
	}

	return &domain.ValidationError{Field: fe.Field(), Message: msg}
}
