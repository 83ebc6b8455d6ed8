// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"homebudget/internal/models"
)

var monthRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		_ = v.RegisterValidation("month", validateMonth)
		_ = v.RegisterValidation("isodate", validateISODate)
		_ = v.RegisterValidation("mindate", validateMinDate)
		_ = v.RegisterValidation("ai_status", validateAIStatus)
		_ = v.RegisterValidation("tx_order", validateTransactionOrder)
		_ = v.RegisterValidation("budget_order", validateBudgetOrder)
		_ = v.RegisterValidation("type_order", validateTypeOrder)
		_ = v.RegisterValidation("tx_fields", validateTransactionFields)
	}
}

// fieldName reports fields by their wire name so error details match the request.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// decimalValue lets numeric tags (gt, lt, gte) apply to money fields.
func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func validateMonth(fl validator.FieldLevel) bool {
	return monthRegex.MatchString(fl.Field().String())
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := models.ParseDate(fl.Field().String())
	return err == nil
}

// validateMinDate checks a YYYY-MM-DD field is on or after the tag parameter.
func validateMinDate(fl validator.FieldLevel) bool {
	value, err := time.Parse(models.DateLayout, fl.Field().String())
	if err != nil {
		return false
	}
	bound, err := time.Parse(models.DateLayout, fl.Param())
	if err != nil {
		return false
	}
	return !value.Before(bound)
}

func validateAIStatus(fl validator.FieldLevel) bool {
	switch models.AIStatus(fl.Field().String()) {
	case models.AIStatusSuccess, models.AIStatusFallback, models.AIStatusError:
		return true
	}
	return false
}

func validateTransactionOrder(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "date.asc", "date.desc", "amount.asc", "amount.desc":
		return true
	}
	return false
}

func validateBudgetOrder(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "month_date.asc", "month_date.desc", "type_id.asc", "type_id.desc", "created_at.asc", "created_at.desc":
		return true
	}
	return false
}

func validateTypeOrder(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "position.asc", "position.desc":
		return true
	}
	return false
}

func validateTransactionFields(fl validator.FieldLevel) bool {
	for _, f := range SplitFields(fl.Field().String()) {
		if !models.IsTransactionColumn(f) {
			return false
		}
	}
	return true
}

// SplitFields splits a comma separated projection list, dropping blanks.
func SplitFields(raw string) []string {
	var out []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
