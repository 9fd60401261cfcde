// Package classifications implements the classification controller for tlpmark.
// It reads the current TLP level from a document host, applies the visible
// first-row banner and metadata token, and guards saves of unclassified documents.
package classifications

import "github.com/JaimeStill/tlpmark/pkg/tlp"

// Properties is the document-scoped metadata store.
type Properties interface {
	// Property returns the named value. ok is false when the property is absent.
	Property(name string) (value string, ok bool, err error)
	// SetProperty replaces any existing value under name.
	// Hosts implement this as delete-if-present then add.
	SetProperty(name, value string) error
}

// Sheet is the first-row text and style sink of the active worksheet.
type Sheet interface {
	// InsertBlankRowAtTop shifts all existing content down by one row.
	InsertBlankRowAtTop() error
	// ClearFirstRow removes the contents and formatting of every cell in row one.
	ClearFirstRow() error
	// WriteFirstRowBanner writes text into the first cell with the given font color and size.
	WriteFirstRowBanner(text string, color tlp.Color, fontSize float64) error
}

// Editor isolates host interaction state that must be settled before
// structural edits and restored afterward.
type Editor interface {
	ExitEditModeIfNeeded() error
	RestoreSelection() error
}

// Notifier surfaces blocking errors to the user.
type Notifier interface {
	ShowBlockingError(message string)
}

// Host is a document environment the controller can drive.
type Host interface {
	Properties
	Sheet
	Editor
	Notifier

	// OnBeforeSave registers a save interceptor. A false return cancels the save.
	OnBeforeSave(handler func() bool)
}
