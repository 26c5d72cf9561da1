package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New()
		// report json field names instead of Go field names
		instance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return instance
}

// Struct validates req against its `validate` tags and returns a readable
// message for the first failing field
func Struct(req interface{}) error {
	err := get().Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", fe.Field())
	case "oneof":
		return fmt.Errorf("%s must be one of: %s", fe.Field(), fe.Param())
	case "min", "gte":
		return fmt.Errorf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Errorf("%s must be at most %s", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Errorf("%s must be a date in %s format", fe.Field(), fe.Param())
	default:
		return fmt.Errorf("%s is invalid", fe.Field())
	}
}
