// Package validation validates configuration-driven inputs such as
// insertion rules.
//
// It supports struct tag validation through go-playground/validator and
// programmatic validation with error collection. Both report failures as an
// INVALID_INPUT *errors.AppError whose details list every failing field.
//
// # Struct Tag Validation
//
//	type Rule struct {
//	    Mode    string `mapstructure:"mode" validate:"required,oneof=every first"`
//	    Pattern string `mapstructure:"pattern" validate:"omitempty,regexp"`
//	}
//	err := validation.Validate(rule)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Custom(rule.Every > 0 || rule.Pattern != "", "rule", "needs a condition")
//	err := v.Validate()
package validation
