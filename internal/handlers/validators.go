package handlers

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/tx_classify_app/internal/dto"
)

// maxIntegerDigits matches NUMERIC(14,2).
const maxIntegerDigits = 12

var registerOnce sync.Once

// RegisterValidators installs the custom rules on gin's validator. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			switch val := field.Interface().(type) {
			case dto.Amount:
				return val.Decimal.String()
			case dto.Date:
				return val.String()
			}
			return nil
		}, dto.Amount{}, dto.Date{})
		_ = v.RegisterValidation("money", validateMoney)
	})
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// validateMoney accepts amounts with at most maxIntegerDigits digits before the decimal point.
func validateMoney(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return true
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return false
	}
	return len(d.Abs().Truncate(0).String()) <= maxIntegerDigits
}

// fieldMessage renders one failed rule the way the browser console expects.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "gt":
		return "Ensure this value is greater than " + fe.Param() + "."
	case "uuid":
		return "Must be a valid UUID."
	case "max":
		return "Ensure this field has no more than " + fe.Param() + " characters."
	case "money":
		return "Ensure that there are no more than 12 digits before the decimal point."
	default:
		return "Invalid value."
	}
}

// fieldPath strips the request type from a validator namespace, so
// "SplitRequest.rows[0].amount" becomes "rows[0].amount".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
