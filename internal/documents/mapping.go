package documents

import (
	"net/url"

	"github.com/JaimeStill/tlpmark/pkg/query"
	"github.com/JaimeStill/tlpmark/pkg/repository"
	"github.com/JaimeStill/tlpmark/pkg/tlp"
)

var projection = query.
	NewProjectionMap("public", "documents", "d").
	Project("id", "ID").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("storage_key", "StorageKey").
	Project("classification", "Classification").
	Project("classified_by", "ClassifiedBy").
	Project("uploaded_at", "UploadedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "UploadedAt",
	Descending: true,
}

const returning = `RETURNING id, filename, content_type, size_bytes, storage_key,
		classification, classified_by, uploaded_at, updated_at`

// Filters contains optional filtering criteria for document queries.
// Nil fields are ignored. Classification matches the stored token exactly;
// Filename uses case-insensitive contains matching.
type Filters struct {
	Classification *string `json:"classification,omitempty"`
	Filename       *string `json:"filename,omitempty"`
	ContentType    *string `json:"content_type,omitempty"`
	ClassifiedBy   *string `json:"classified_by,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Classification", f.Classification).
		WhereContains("Filename", f.Filename).
		WhereEquals("ContentType", f.ContentType).
		WhereEquals("ClassifiedBy", f.ClassifiedBy)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// The classification parameter accepts a token or a level name;
// unrecognized values are ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("classification"); c != "" {
		if level, err := tlp.Parse(c); err == nil {
			token, _ := tlp.TokenFor(level)
			f.Classification = &token
		}
	}

	if fn := values.Get("filename"); fn != "" {
		f.Filename = &fn
	}

	if ct := values.Get("content_type"); ct != "" {
		f.ContentType = &ct
	}

	if by := values.Get("classified_by"); by != "" {
		f.ClassifiedBy = &by
	}

	return f
}

func scanDocument(s repository.Scanner) (Document, error) {
	var d Document
	err := s.Scan(
		&d.ID,
		&d.Filename,
		&d.ContentType,
		&d.SizeBytes,
		&d.StorageKey,
		&d.Classification,
		&d.ClassifiedBy,
		&d.UploadedAt,
		&d.UpdatedAt,
	)
	return d, err
}
