package analyzeopenai

import (
	"net/http"

	"github.com/wesleysanjose/ocr/pkg/errx"
)

var errorRegistry = errx.NewRegistry("OPENAI")

var (
	ErrMissingAPIKey = errorRegistry.Register(
		"MISSING_API_KEY",
		errx.TypeAuthorization,
		http.StatusUnauthorized,
		"Invalid or missing OpenAI API key",
	)

	ErrEmptyInput = errorRegistry.Register(
		"EMPTY_INPUT",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Analysis input text is empty",
	)

	ErrAPIRequest = errorRegistry.Register(
		"API_REQUEST_FAILED",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Failed to make request to OpenAI API",
	)
)
