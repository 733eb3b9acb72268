package helper

import (
	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance (validator.v10 caches struct
// metadata, one instance for the whole app).
var Validate = validator.New()

// ValidationErrorsToMap flattens validator.v10 errors into the field→messages
// shape JsonValidationError expects.
func ValidationErrorsToMap(err error) map[string][]string {
	out := map[string][]string{}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = []string{"invalid input"}
		return out
	}
	for _, fe := range ve {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			out[field] = append(out[field], "is required")
		case "email":
			out[field] = append(out[field], "must be a valid email")
		case "min":
			out[field] = append(out[field], "must be at least "+fe.Param()+" characters")
		case "max":
			out[field] = append(out[field], "must be at most "+fe.Param()+" characters")
		case "oneof":
			out[field] = append(out[field], "must be one of "+fe.Param())
		default:
			out[field] = append(out[field], "failed "+fe.Tag()+" validation")
		}
	}
	return out
}
