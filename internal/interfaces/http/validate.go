package http

import "github.com/go-playground/validator"

// validate instancia compartida para los DTOs de entrada (tags `validate`).
var validate = validator.New()
