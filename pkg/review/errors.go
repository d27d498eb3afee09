package review

import (
	"net/http"

	"github.com/wesleysanjose/ocr/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("REVIEW")

var (
	CodeSessionNotFound  = ErrRegistry.Register("SESSION_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Review session not found")
	CodePageNotLoaded    = ErrRegistry.Register("PAGE_NOT_LOADED", errx.TypeBusiness, http.StatusUnprocessableEntity, "No page is loaded in this session")
	CodeNothingSelected  = ErrRegistry.Register("NOTHING_SELECTED", errx.TypeBusiness, http.StatusUnprocessableEntity, "No lines are selected")
	CodeNoCandidate      = ErrRegistry.Register("NO_CANDIDATE", errx.TypeBusiness, http.StatusUnprocessableEntity, "No committed candidate to apply")
	CodeSnapshotNotFound = ErrRegistry.Register("SNAPSHOT_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Snapshot not found")
	CodeSaveFailed       = ErrRegistry.Register("SAVE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to save snapshot")
)

func ErrSessionNotFound() *errx.Error  { return ErrRegistry.New(CodeSessionNotFound) }
func ErrPageNotLoaded() *errx.Error    { return ErrRegistry.New(CodePageNotLoaded) }
func ErrNothingSelected() *errx.Error  { return ErrRegistry.New(CodeNothingSelected) }
func ErrNoCandidate() *errx.Error      { return ErrRegistry.New(CodeNoCandidate) }
func ErrSnapshotNotFound() *errx.Error { return ErrRegistry.New(CodeSnapshotNotFound) }
func ErrSaveFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeSaveFailed, cause)
}
