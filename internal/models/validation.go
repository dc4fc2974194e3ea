package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/platformbuilds/studygraph/internal/quarter"
)

var (
	ErrInvalidStudy = errors.New("invalid study")

	studyIDPattern = regexp.MustCompile(`^M-[0-9]-[0-9]{3,}$`)
	validate       = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("quarter", func(fl validator.FieldLevel) bool {
		return quarter.Valid(fl.Field().String())
	})
	_ = v.RegisterValidation("studyid", func(fl validator.FieldLevel) bool {
		return studyIDPattern.MatchString(fl.Field().String())
	})
	return v
}

// ValidStudyID reports whether id has the M-<digit>-<sequence> shape.
func ValidStudyID(id string) bool {
	return studyIDPattern.MatchString(id)
}

// Validate checks field shapes. Catalog membership is checked by the service.
func (s *Study) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidStudy, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Study.")
		msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidStudy, strings.Join(msgs, ", "))
}
