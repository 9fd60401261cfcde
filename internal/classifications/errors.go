package classifications

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/tlpmark/pkg/tlp"
)

// Domain errors for classification operations.
var (
	ErrUnclassified        = errors.New("document is not classified")
	ErrHostOperationFailed = errors.New("host operation failed")
)

// MapHTTPStatus maps classification domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, tlp.ErrInvalidArgument) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrUnclassified) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
