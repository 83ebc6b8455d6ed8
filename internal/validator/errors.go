package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "homebudget/internal/errors"
)

// Details maps a field name to its validation messages.
type Details map[string][]string

// Add appends a message for field.
func (d Details) Add(field, message string) {
	d[field] = append(d[field], message)
}

// ToAppError converts a binding failure into a VALIDATION_ERROR carrying
// per-field details. Unknown errors still produce a 400 with the error text.
func ToAppError(err error) *apperrors.AppError {
	details := Details{}

	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var numErr *strconv.NumError

	switch {
	case errors.Is(err, io.EOF):
		return apperrors.WithMessage(apperrors.ErrValidation, "Request body is required")
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			details.Add(fieldPath(fe), message(fe))
		}
	case errors.As(err, &typeErr):
		details.Add(typeErr.Field, fmt.Sprintf("must be of type %s", typeErr.Type.String()))
	case errors.As(err, &syntaxErr):
		return apperrors.WithMessage(apperrors.ErrValidation, "Malformed JSON body")
	case errors.As(err, &numErr):
		return apperrors.WithMessage(apperrors.ErrValidation, "Invalid number: "+numErr.Num)
	default:
		return apperrors.WithMessage(apperrors.ErrValidation, err.Error())
	}

	return apperrors.WithDetails(apperrors.ErrValidation, "Invalid input", details)
}

// NewError builds a VALIDATION_ERROR from details collected by hand, for
// cross-field rules the struct tags cannot express.
func NewError(details Details) *apperrors.AppError {
	return apperrors.WithDetails(apperrors.ErrValidation, "Invalid input", details)
}

// fieldPath is the wire path of a failing field, e.g. "transactions[2].amount".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "month":
		return "must be a month in YYYY-MM format"
	case "isodate":
		return "must be a valid date in YYYY-MM-DD format"
	case "mindate":
		return fmt.Sprintf("must be on or after %s", fe.Param())
	case "ai_status":
		return "must be one of success, fallback, error"
	case "tx_order":
		return "must be one of date.asc, date.desc, amount.asc, amount.desc"
	case "budget_order":
		return "must be one of month_date.asc, month_date.desc, type_id.asc, type_id.desc, created_at.asc, created_at.desc"
	case "type_order":
		return "must be one of position.asc, position.desc"
	case "tx_fields":
		return "contains a field that cannot be selected"
	case "uuid":
		return "must be a valid UUID"
	case "dive":
		return "is invalid"
	}
	return fmt.Sprintf("failed the %s rule", fe.Tag())
}
