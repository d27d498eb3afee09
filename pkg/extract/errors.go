package extract

import "github.com/wesleysanjose/ocr/pkg/errx"

var extractErrors = errx.NewRegistry("EXTRACT")

var (
	ErrEmptyFieldKey   = extractErrors.Register("EMPTY_FIELD_KEY", errx.TypeValidation, 400, "Field key must not be empty")
	ErrUnknownCategory = extractErrors.Register("UNKNOWN_CATEGORY", errx.TypeValidation, 400, "Unrecognized field category")
)
