package documents

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/tlpmark/internal/classifications"
	"github.com/JaimeStill/tlpmark/pkg/tlp"
	"github.com/JaimeStill/tlpmark/pkg/workbook"
)

// Domain errors for document operations.
var (
	ErrNotFound     = errors.New("document not found")
	ErrDuplicate    = errors.New("document already exists")
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
	ErrInvalidFile  = errors.New("invalid file")
)

// MapHTTPStatus maps document domain errors to appropriate HTTP status codes.
// A save cancelled by the classification guard maps to 422.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrInvalidFile) || errors.Is(err, tlp.ErrInvalidArgument) {
		return http.StatusBadRequest
	}
	if errors.Is(err, workbook.ErrSaveCancelled) || errors.Is(err, classifications.ErrUnclassified) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
