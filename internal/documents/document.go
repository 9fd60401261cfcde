// Package documents implements the document domain for tlpmark.
// It stores classified workbooks in blob storage and registers them in the
// database. Every write goes through the classification save guard, so only
// classified workbooks are ever persisted.
package documents

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/tlpmark/pkg/tlp"
)

// Document represents a stored workbook with its classification metadata.
// Classification holds the metadata token written into the workbook.
type Document struct {
	ID             uuid.UUID `json:"id"`
	Filename       string    `json:"filename"`
	ContentType    string    `json:"content_type"`
	SizeBytes      int64     `json:"size_bytes"`
	StorageKey     string    `json:"storage_key"`
	Classification string    `json:"classification"`
	ClassifiedBy   *string   `json:"classified_by"`
	UploadedAt     time.Time `json:"uploaded_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to upload a new workbook.
// Classification is optional: None keeps whatever the workbook already
// carries, and the save guard rejects workbooks that carry nothing.
type CreateCommand struct {
	Data           []byte
	Filename       string
	ContentType    string
	Classification tlp.Classification
	ClassifiedBy   string
}

// ClassifyCommand carries a classification change for a stored workbook.
type ClassifyCommand struct {
	Classification tlp.Classification `json:"classification"`
	ClassifiedBy   string             `json:"-"`
}
