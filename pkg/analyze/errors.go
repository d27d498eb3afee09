package analyze

import "github.com/wesleysanjose/ocr/pkg/errx"

var analyzeErrors = errx.NewRegistry("ANALYZE")

var (
	ErrStreamFailed    = analyzeErrors.Register("STREAM_FAILED", errx.TypeExternal, 502, "Analysis stream failed")
	ErrAnalysisAborted = analyzeErrors.Register("ABORTED", errx.TypeCancelled, 499, "Analysis cancelled by caller")
)
