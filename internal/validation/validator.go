// Package validation validates request inputs with go-playground/validator and
// reports failures as field-level messages keyed by JSON field names.
//
// Inputs use pointer fields so that a JSON patch can be told apart from a full
// document: Struct checks every field (create), Partial only checks the fields
// that were actually sent (update).
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/dto"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Get returns the shared validator instance.
func Get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})

		// Registration only fails for empty tags or nil funcs.
		_ = validate.RegisterValidation("date", isDate)
		_ = validate.RegisterValidation("yearmax", isYearWithin)
	})

	return validate
}

// Struct validates every field of s.
func Struct(s any) []dto.FieldError {
	return translate(Get().Struct(s))
}

// Partial validates only the fields present on s (see PresentFields).
func Partial(s any) []dto.FieldError {
	fields := PresentFields(s)
	if len(fields) == 0 {
		return nil
	}
	return translate(Get().StructPartial(s, fields...))
}

// PresentFields lists the Go field paths of s that carry a value: non-nil
// pointers, slices and maps, recursing into set nested structs and slice elements.
func PresentFields(s any) []string {
	v := reflect.ValueOf(s)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	return collect(v, "")
}

var timeType = reflect.TypeOf(time.Time{})

func collect(v reflect.Value, prefix string) []string {
	var out []string
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := v.Field(i)
		path := prefix + sf.Name

		switch fv.Kind() {
		case reflect.Ptr:
			if fv.IsNil() {
				continue
			}
			out = append(out, path)
			if elem := fv.Elem(); elem.Kind() == reflect.Struct && elem.Type() != timeType {
				out = append(out, collect(elem, path+".")...)
			}
		case reflect.Slice, reflect.Map:
			if fv.IsNil() {
				continue
			}
			out = append(out, path)
			if fv.Kind() == reflect.Slice && fv.Type().Elem().Kind() == reflect.Struct {
				for j := 0; j < fv.Len(); j++ {
					out = append(out, collect(fv.Index(j), fmt.Sprintf("%s[%d].", path, j))...)
				}
			}
		case reflect.Struct:
			out = append(out, path)
			if fv.Type() != timeType {
				out = append(out, collect(fv, path+".")...)
			}
		default:
			out = append(out, path)
		}
	}
	return out
}

func translate(err error) []dto.FieldError {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []dto.FieldError{{Field: "unknown", Message: err.Error()}}
	}

	out := make([]dto.FieldError, len(validationErrs))
	for i, fe := range validationErrs {
		out[i] = dto.FieldError{
			Field:   fieldPath(fe),
			Message: translateError(fe),
		}
	}
	return out
}

// fieldPath drops the struct type name from the namespace ("ProjectInput.title" -> "title").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

var errorMessageTemplates = map[string]string{
	"required": "%s is required",
	"email":    "%s must be a valid email address",
	"url":      "%s must be a valid URL",
	"date":     "%s must be a date (YYYY-MM-DD or RFC3339)",
	"hexcolor": "%s must be a hex color",
}

var errorMessageWithParam = map[string]string{
	"oneof":   "%s must be one of: %s",
	"gte":     "%s must be greater than or equal to %s",
	"lte":     "%s must be less than or equal to %s",
	"yearmax": "%s must be at most %s years after the current year",
}

func translateError(fe validator.FieldError) string {
	field := fe.Field()
	tag := fe.Tag()
	param := fe.Param()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, field, param)
	}

	isString := fe.Kind() == reflect.String
	isList := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array

	switch tag {
	case "min":
		switch {
		case isString:
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		case isList:
			return fmt.Sprintf("%s must contain at least %s items", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		switch {
		case isString:
			return fmt.Sprintf("%s cannot exceed %s characters", field, param)
		case isList:
			return fmt.Sprintf("%s cannot contain more than %s items", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}

// ParseDate accepts calendar dates (2024-01-31) and RFC3339 timestamps.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func isDate(fl validator.FieldLevel) bool {
	_, err := ParseDate(fl.Field().String())
	return err == nil
}

// isYearWithin checks an integer year is not later than the current year plus param.
func isYearWithin(fl validator.FieldLevel) bool {
	offset, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return fl.Field().Int() <= int64(time.Now().Year()+offset)
}
