package validation

import (
	"fmt"

	errors "github.com/frahmantamala/worldsell/internal"
	"github.com/go-playground/validator/v10"
)

type ValidatorFunc func(interface{}) *errors.AppError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

type ValidationBuilder struct {
	fields []*FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]*FieldValidator, 0),
	}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := &FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return fv
}

var validate = validator.New()

// tag runs a validator/v10 tag against the field value and reports a field error on failure.
func (fv *FieldValidator) tag(tag string, code errors.ErrorCode, message string) ValidatorFunc {
	return func(value interface{}) *errors.AppError {
		if err := validate.Var(value, tag); err != nil {
			return errors.NewValidationFieldError(fv.FieldName, message, code)
		}
		return nil
	}
}

func (fv *FieldValidator) Required() *FieldValidator {
	check := fv.tag("required", errors.ErrCodeMissingParameter, fmt.Sprintf("%s is required", fv.FieldName))
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		switch v := value.(type) {
		case *string:
			if v == nil {
				return check(nil)
			}
			return check(*v)
		case []string:
			return fv.tag("min=1", errors.ErrCodeMissingParameter, fmt.Sprintf("%s is required", fv.FieldName))(v)
		}
		return check(value)
	})
	return fv
}

func (fv *FieldValidator) MinLength(min int) *FieldValidator {
	check := fv.tag(fmt.Sprintf("omitempty,min=%d", min), errors.ErrCodeValidationFailed,
		fmt.Sprintf("%s must be at least %d characters", fv.FieldName, min))
	fv.Validators = append(fv.Validators, stringsOnly(check))
	return fv
}

func (fv *FieldValidator) MaxLength(max int) *FieldValidator {
	check := fv.tag(fmt.Sprintf("max=%d", max), errors.ErrCodeValidationFailed,
		fmt.Sprintf("%s must not exceed %d characters", fv.FieldName, max))
	fv.Validators = append(fv.Validators, stringsOnly(check))
	return fv
}

// Letters rejects strings containing anything other than ASCII letters. Empty strings pass.
func (fv *FieldValidator) Letters() *FieldValidator {
	check := fv.tag("omitempty,alpha", errors.ErrCodeValidationFailed,
		fmt.Sprintf("%s must contain only letters", fv.FieldName))
	fv.Validators = append(fv.Validators, stringsOnly(check))
	return fv
}

func stringsOnly(check ValidatorFunc) ValidatorFunc {
	return func(value interface{}) *errors.AppError {
		if v, ok := value.(string); ok {
			return check(v)
		}
		return nil
	}
}

func (fv *FieldValidator) Custom(validator func(interface{}) *errors.AppError) *FieldValidator {
	fv.Validators = append(fv.Validators, validator)
	return fv
}

func (v *ValidationBuilder) Validate() *errors.AppError {
	var validationErrors []errors.ValidationError

	for _, field := range v.fields {
		for _, validator := range field.Validators {
			appErr := validator(field.Value)
			if appErr == nil {
				continue
			}
			if details, ok := appErr.Details.(errors.ValidationErrors); ok {
				validationErrors = append(validationErrors, details.Errors...)
			} else {
				validationErrors = append(validationErrors, errors.ValidationError{
					Field:   field.FieldName,
					Message: appErr.Message,
					Code:    string(appErr.Code),
				})
			}
			// first failure per field is enough
			break
		}
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
			WithDetails(errors.ValidationErrors{Errors: validationErrors})
	}

	return nil
}

// ValidateCountryCode checks the shape of an ISO-3166 alpha-2 code. Case is left alone.
func ValidateCountryCode(field, code string) *errors.AppError {
	validator := NewValidator()
	validator.Field(field, code).
		Required().
		MinLength(2).
		MaxLength(2).
		Letters()
	return validator.Validate()
}
