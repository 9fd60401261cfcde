package workbook

import "errors"

var (
	// ErrInvalidWorkbook indicates the input could not be read as an xlsx workbook.
	ErrInvalidWorkbook = errors.New("invalid workbook")
	// ErrSaveCancelled indicates a save interceptor denied the save.
	ErrSaveCancelled = errors.New("save cancelled")
)
