package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// yamlLinePattern captures the line number and message of a yaml.v3 error
// such as "yaml: line 3: mapping values are not allowed in this context".
var yamlLinePattern = regexp.MustCompile(`^yaml: line (\d+): (.*)$`)

// ValidationError is a problem in a config file, located by line for syntax
// errors or by key for invalid values.
type ValidationError struct {
	FilePath string
	Line     int
	Field    string
	Message  string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.FilePath, e.Line, e.Message)
	case e.Field != "":
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// configValidator returns the shared validator. Field errors are reported
// under their config key names and version_glob is checked with the "glob"
// tag.
func configValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			return keyOf(f)
		})
		_ = validate.RegisterValidation("glob", func(fl validator.FieldLevel) bool {
			return doublestar.ValidatePattern(fl.Field().String())
		})
	})
	return validate
}

// ValidateYAMLSyntax reports a syntax error in the YAML file at filePath.
// A missing or blank file is valid.
func ValidateYAMLSyntax(filePath string) error {
	data, err := os.ReadFile(filePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil
	case err != nil:
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	case strings.TrimSpace(string(data)) == "":
		return nil
	}

	var node yaml.Node
	err = yaml.Unmarshal(data, &node)
	if err == nil {
		return nil
	}

	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		return &ValidationError{FilePath: filePath, Message: strings.Join(typeErr.Errors, "; ")}
	}
	if m := yamlLinePattern.FindStringSubmatch(err.Error()); m != nil {
		line, _ := strconv.Atoi(m[1])
		return &ValidationError{FilePath: filePath, Line: line, Message: m[2]}
	}
	return &ValidationError{FilePath: filePath, Message: strings.TrimPrefix(err.Error(), "yaml: ")}
}

// ValidateConfigValues checks the merged configuration. Every invalid key is
// reported; the result unwraps to one *ValidationError per key.
func ValidateConfigValues(cfg *Configuration, filePath string) error {
	err := configValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, &ValidationError{
			FilePath: filePath,
			Field:    fe.Field(),
			Message:  describeFieldError(fe, cfg),
		})
	}
	return errors.Join(errs...)
}

func describeFieldError(fe validator.FieldError, cfg *Configuration) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_with":
		return fmt.Sprintf("is required when %s is set", structFieldKey(cfg, fe.Param()))
	case "glob":
		return fmt.Sprintf("invalid glob pattern %q", fe.Value())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

// structFieldKey maps a Go field name, as used in validator tag params, to
// its config key.
func structFieldKey(cfg *Configuration, name string) string {
	if f, ok := reflect.TypeOf(cfg).Elem().FieldByName(name); ok {
		return keyOf(f)
	}
	return name
}

// keyOf returns the koanf key of a struct field.
func keyOf(f reflect.StructField) string {
	key, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
	if key == "" {
		return f.Name
	}
	return key
}
