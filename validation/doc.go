// Package validation provides input validation for configuration and
// command-line arguments.
//
// # Struct Tag Validation
//
//	type ClientConfig struct {
//	    URL         string `mapstructure:"url" validate:"required,url"`
//	    Concurrency int    `mapstructure:"concurrency" validate:"gte=0"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("id", arg).OneOf("kind", kind, []string{"text", "number"})
//	err := v.Validate()
//
// Both forms return an *errors.AppError with code INVALID_INPUT.
package validation
