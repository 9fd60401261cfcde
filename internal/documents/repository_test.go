package documents

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/tlpmark/pkg/tlp"
	"github.com/JaimeStill/tlpmark/pkg/workbook"
)

func testRepo() *repo {
	return &repo{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func workbookBytes(t *testing.T, classification tlp.Classification) []byte {
	t.Helper()

	wb := workbook.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer wb.Close()
	wb.File().SetCellValue(wb.Sheet(), "A1", "Account")
	wb.File().SetCellValue(wb.Sheet(), "A2", "4417")

	if classification != tlp.None {
		token, _ := tlp.TokenFor(classification)
		if err := wb.SetProperty(tlp.PropertyName, token); err != nil {
			t.Fatalf("SetProperty: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := wb.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return buf.Bytes()
}

func TestGuardedSave(t *testing.T) {
	tests := []struct {
		name      string
		stored    tlp.Classification
		requested tlp.Classification
		wantToken string
		wantErr   error
	}{
		{"unclassified refused", tlp.None, tlp.None, "", workbook.ErrSaveCancelled},
		{"classify on upload", tlp.None, tlp.Red, "TLP:RED", nil},
		{"keep existing", tlp.Green, tlp.None, "TLP:GREEN", nil},
		{"reclassify", tlp.Amber, tlp.White, "TLP:WHITE", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, token, err := testRepo().guardedSave(bytes.NewReader(workbookBytes(t, tt.stored)), tt.requested)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err: got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("guardedSave: %v", err)
			}
			if token != tt.wantToken {
				t.Errorf("token: got %s, want %s", token, tt.wantToken)
			}

			wb, err := workbook.Open(bytes.NewReader(data), slog.New(slog.NewTextHandler(io.Discard, nil)))
			if err != nil {
				t.Fatalf("reopen: %v", err)
			}
			defer wb.Close()

			banner, err := wb.FirstRowBanner()
			if err != nil {
				t.Fatalf("FirstRowBanner: %v", err)
			}
			header, _ := tlp.HeaderFor(tlp.ClassificationForToken(tt.wantToken))
			if banner.Text != header {
				t.Errorf("banner: got %q, want %q", banner.Text, header)
			}
		})
	}
}

func TestGuardedSaveRejectsNonWorkbook(t *testing.T) {
	_, _, err := testRepo().guardedSave(strings.NewReader("plain text"), tlp.Red)
	if !errors.Is(err, ErrInvalidFile) {
		t.Errorf("err: got %v, want ErrInvalidFile", err)
	}
}

func TestStorageKey(t *testing.T) {
	id := uuid.MustParse("7b0c3a52-5c1e-4f55-9a53-0c0cf0a8b7e1")

	tests := []struct {
		filename string
		want     string
	}{
		{"q3.xlsx", "documents/7b0c3a52-5c1e-4f55-9a53-0c0cf0a8b7e1/q3.xlsx"},
		{"../../etc/passwd", "documents/7b0c3a52-5c1e-4f55-9a53-0c0cf0a8b7e1/passwd"},
		{"q3 budget.xlsx", "documents/7b0c3a52-5c1e-4f55-9a53-0c0cf0a8b7e1/q3%20budget.xlsx"},
		{"", "documents/7b0c3a52-5c1e-4f55-9a53-0c0cf0a8b7e1/workbook.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := buildStorageKey(id, sanitizeFilename(tt.filename)); got != tt.want {
				t.Errorf("key: got %s, want %s", got, tt.want)
			}
		})
	}
}
