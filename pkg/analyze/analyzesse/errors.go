package analyzesse

import "github.com/wesleysanjose/ocr/pkg/errx"

var sseErrors = errx.NewRegistry("ANALYZE_SSE")

var (
	ErrEmptyInput      = sseErrors.Register("EMPTY_INPUT", errx.TypeValidation, 400, "Analysis input text is empty")
	ErrMissingEndpoint = sseErrors.Register("MISSING_ENDPOINT", errx.TypeValidation, 400, "Analysis endpoint base URL is not configured")
	ErrRequestFailed   = sseErrors.Register("REQUEST_FAILED", errx.TypeExternal, 502, "Analysis request failed")
	ErrBadStatus       = sseErrors.Register("BAD_STATUS", errx.TypeExternal, 502, "Analysis endpoint returned a non-success status")
)
