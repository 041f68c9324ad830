// Package validation builds the go-playground validator shared by the HTTP
// binding layer and the use cases, including the text rules for user and task input.
package validation

import (
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Custom tags.
const (
	TagPersonName = "personname"
	TagPhone      = "phone"
	TagTaskTitle  = "tasktitle"
	TagFreeText   = "freetext"
	TagNoHTML     = "nohtml"
)

const maxNameWords = 10

var (
	personNamePattern = regexp.MustCompile(`^[\p{L}\s'-]+$`)
	phonePattern      = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	taskTitlePattern  = regexp.MustCompile(`^[\p{L}\p{N}\p{P}\p{Z}]+$`)
	htmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
)

var (
	validate *validator.Validate
	once     sync.Once
)

// Validator returns the process-wide validator instance.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = New()
	})

	return validate
}

// New builds a validator that reports fields by their json names.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}

		return name
	})

	mustRegister(v, TagPersonName, isPersonName)
	mustRegister(v, TagPhone, isPhone)
	mustRegister(v, TagTaskTitle, isTaskTitle)
	mustRegister(v, TagFreeText, isFreeText)
	mustRegister(v, TagNoHTML, hasNoHTML)

	return v
}

func mustRegister(v *validator.Validate, tag string, fn func(string) bool) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return fn(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

// Struct validates s and converts failures into field messages.
// It returns nil when s is valid.
func Struct(s any) (map[string]string, error) {
	err := Validator().Struct(s)
	if err == nil {
		return nil, nil
	}

	fields := FieldErrors(err)
	if fields == nil {
		return nil, err
	}

	return fields, nil
}

// FieldErrors maps validator failures onto json field names. It returns nil for
// errors that do not come from field validation.
func FieldErrors(err error) map[string]string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		if _, seen := fields[e.Field()]; seen {
			continue
		}
		fields[e.Field()] = message(e)
	}

	return fields
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + e.Param() + " characters"
	case "max":
		return "must not exceed " + e.Param() + " characters"
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "oneof":
		return "must be one of: " + e.Param()
	case TagPersonName:
		return "may only contain letters, spaces, hyphens and apostrophes, in at most 10 words"
	case TagPhone:
		return "must be a valid phone number"
	case TagTaskTitle:
		return "may only contain letters, numbers, punctuation and spaces"
	case TagFreeText:
		return "contains too many special characters"
	case TagNoHTML:
		return "must not contain HTML tags"
	default:
		return "is invalid"
	}
}

func isPersonName(name string) bool {
	name = strings.TrimSpace(name)
	if !personNamePattern.MatchString(name) {
		return false
	}
	if len(strings.Fields(name)) > maxNameWords {
		return false
	}

	special := strings.Count(name, "-") + strings.Count(name, "'")

	return special <= utf8.RuneCountInString(name)/3
}

func isPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

func isTaskTitle(title string) bool {
	title = strings.TrimSpace(title)

	return taskTitlePattern.MatchString(title) && isFreeText(title)
}

// isFreeText allows at most half of the characters to be neither letters, digits nor whitespace.
func isFreeText(text string) bool {
	text = strings.TrimSpace(text)

	special := 0
	for _, r := range text {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			special++
		}
	}

	return special <= utf8.RuneCountInString(text)/2
}

func hasNoHTML(text string) bool {
	return !htmlTagPattern.MatchString(text)
}
