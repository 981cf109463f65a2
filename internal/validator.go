package internal

import "github.com/go-playground/validator/v10"

// Validator checks the `validate` tags of every loaded configuration struct.
var Validator = validator.New(validator.WithRequiredStructEnabled())
