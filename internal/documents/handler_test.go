package documents_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/tlpmark/internal/classifications"
	"github.com/JaimeStill/tlpmark/internal/documents"
	"github.com/JaimeStill/tlpmark/pkg/pagination"
	"github.com/JaimeStill/tlpmark/pkg/routes"
	"github.com/JaimeStill/tlpmark/pkg/tlp"
	"github.com/JaimeStill/tlpmark/pkg/workbook"
)

type mockSystem struct {
	listFn     func(ctx context.Context, page pagination.PageRequest, filters documents.Filters) (*pagination.PageResult[documents.Document], error)
	findFn     func(ctx context.Context, id uuid.UUID) (*documents.Document, error)
	createFn   func(ctx context.Context, cmd documents.CreateCommand) (*documents.Document, error)
	classifyFn func(ctx context.Context, id uuid.UUID, cmd documents.ClassifyCommand) (*documents.Document, error)
	downloadFn func(ctx context.Context, id uuid.UUID) (*documents.Document, io.ReadCloser, error)
	deleteFn   func(ctx context.Context, id uuid.UUID) error
}

func (m *mockSystem) Handler(maxUploadSize int64) *documents.Handler {
	return documents.NewHandler(
		m,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
		maxUploadSize,
	)
}

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters documents.Filters) (*pagination.PageResult[documents.Document], error) {
	return m.listFn(ctx, page, filters)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*documents.Document, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Create(ctx context.Context, cmd documents.CreateCommand) (*documents.Document, error) {
	return m.createFn(ctx, cmd)
}

func (m *mockSystem) Classify(ctx context.Context, id uuid.UUID, cmd documents.ClassifyCommand) (*documents.Document, error) {
	return m.classifyFn(ctx, id, cmd)
}

func (m *mockSystem) Download(ctx context.Context, id uuid.UUID) (*documents.Document, io.ReadCloser, error) {
	return m.downloadFn(ctx, id)
}

func (m *mockSystem) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func setupMux(sys *mockSystem) *http.ServeMux {
	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler(1024*1024).Routes())
	return mux
}

func uploadRequest(t *testing.T, filename, classification string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if classification != "" {
		mw.WriteField("classification", classification)
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write(data)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/documents", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUpload(t *testing.T) {
	saveDenied := fmt.Errorf("%w: %s", workbook.ErrSaveCancelled, classifications.UnclassifiedMessage)

	tests := []struct {
		name           string
		filename       string
		classification string
		createErr      error
		wantStatus     int
		wantLevel      tlp.Classification
		wantCalled     bool
	}{
		{"classified upload", "q3.xlsx", "amber", nil, http.StatusCreated, tlp.Amber, true},
		{"token classification", "q3.xlsx", "TLP:RED", nil, http.StatusCreated, tlp.Red, true},
		{"unclassified workbook refused", "q3.xlsx", "", saveDenied, http.StatusUnprocessableEntity, tlp.None, true},
		{"unknown level", "q3.xlsx", "purple", nil, http.StatusBadRequest, tlp.None, false},
		{"not a workbook", "notes.txt", "green", nil, http.StatusBadRequest, tlp.None, false},
		{"corrupt workbook", "q3.xlsx", "green", fmt.Errorf("%w: zip", documents.ErrInvalidFile), http.StatusBadRequest, tlp.Green, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			sys := &mockSystem{
				createFn: func(_ context.Context, cmd documents.CreateCommand) (*documents.Document, error) {
					called = true
					if cmd.Classification != tt.wantLevel {
						t.Errorf("classification: got %v, want %v", cmd.Classification, tt.wantLevel)
					}
					if cmd.ContentType != workbook.ContentType {
						t.Errorf("content type: got %s", cmd.ContentType)
					}
					if tt.createErr != nil {
						return nil, tt.createErr
					}
					token, _ := tlp.TokenFor(cmd.Classification)
					return &documents.Document{ID: uuid.New(), Filename: cmd.Filename, Classification: token}, nil
				},
			}

			rec := httptest.NewRecorder()
			setupMux(sys).ServeHTTP(rec, uploadRequest(t, tt.filename, tt.classification, []byte("PK")))

			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if called != tt.wantCalled {
				t.Errorf("create called: got %v, want %v", called, tt.wantCalled)
			}
		})
	}
}

func TestUploadTooLarge(t *testing.T) {
	sys := &mockSystem{}
	rec := httptest.NewRecorder()
	setupMux(sys).ServeHTTP(rec, uploadRequest(t, "big.xlsx", "red", bytes.Repeat([]byte("x"), 2*1024*1024)))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status: got %d, want 413", rec.Code)
	}
}

func TestClassify(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"by name", `{"classification":"red"}`, http.StatusOK},
		{"by token", `{"classification":"TLP:RED"}`, http.StatusOK},
		{"unknown", `{"classification":"crimson"}`, http.StatusBadRequest},
		{"malformed", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &mockSystem{
				classifyFn: func(_ context.Context, got uuid.UUID, cmd documents.ClassifyCommand) (*documents.Document, error) {
					if got != id {
						t.Errorf("id: got %s, want %s", got, id)
					}
					if cmd.Classification != tlp.Red {
						t.Errorf("classification: got %v, want red", cmd.Classification)
					}
					return &documents.Document{ID: id, Classification: "TLP:RED"}, nil
				},
			}

			req := httptest.NewRequest(http.MethodPut, "/documents/"+id.String()+"/classification", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			setupMux(sys).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestDownload(t *testing.T) {
	id := uuid.New()
	sys := &mockSystem{
		downloadFn: func(context.Context, uuid.UUID) (*documents.Document, io.ReadCloser, error) {
			doc := &documents.Document{
				ID:             id,
				Filename:       "q3 report.xlsx",
				ContentType:    workbook.ContentType,
				SizeBytes:      4,
				Classification: "TLP:GREEN",
			}
			return doc, io.NopCloser(strings.NewReader("PK\x03\x04")), nil
		},
	}

	rec := httptest.NewRecorder()
	setupMux(sys).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/documents/"+id.String()+"/download", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	headers := map[string]string{
		"Content-Type":        workbook.ContentType,
		"Content-Length":      "4",
		"Content-Disposition": `attachment; filename="q3 report.xlsx"`,
		"X-Classification":    "TLP:GREEN",
	}
	for k, want := range headers {
		if got := rec.Header().Get(k); got != want {
			t.Errorf("%s: got %q, want %q", k, got, want)
		}
	}
}

func TestFindAndDeleteErrors(t *testing.T) {
	sys := &mockSystem{
		findFn: func(context.Context, uuid.UUID) (*documents.Document, error) {
			return nil, documents.ErrNotFound
		},
		deleteFn: func(context.Context, uuid.UUID) error {
			return documents.ErrNotFound
		},
	}
	mux := setupMux(sys)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/documents/not-a-uuid", http.StatusBadRequest},
		{http.MethodGet, "/documents/" + uuid.NewString(), http.StatusNotFound},
		{http.MethodDelete, "/documents/" + uuid.NewString(), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestListPassesFilters(t *testing.T) {
	sys := &mockSystem{
		listFn: func(_ context.Context, page pagination.PageRequest, f documents.Filters) (*pagination.PageResult[documents.Document], error) {
			if page.Page != 2 || page.PageSize != 5 {
				t.Errorf("page: got %+v", page)
			}
			if f.Classification == nil || *f.Classification != "TLP:AMBER" {
				t.Errorf("classification filter: got %v", f.Classification)
			}
			r := pagination.NewPageResult[documents.Document](nil, 0, page.Page, page.PageSize)
			return &r, nil
		},
	}

	rec := httptest.NewRecorder()
	setupMux(sys).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/documents?page=2&page_size=5&classification=amber", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var result pagination.PageResult[documents.Document]
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Data == nil {
		t.Error("data should be an empty array, not null")
	}
}

func TestFiltersFromQuery(t *testing.T) {
	values := url.Values{
		"classification": {"tlp:green"},
		"filename":       {"budget"},
		"classified_by":  {"analyst"},
	}
	f := documents.FiltersFromQuery(values)

	if f.Classification == nil || *f.Classification != "TLP:GREEN" {
		t.Errorf("classification: got %v", f.Classification)
	}
	if f.Filename == nil || *f.Filename != "budget" {
		t.Errorf("filename: got %v", f.Filename)
	}
	if f.ContentType != nil {
		t.Errorf("content type: got %v, want nil", *f.ContentType)
	}

	if f := documents.FiltersFromQuery(url.Values{"classification": {"violet"}}); f.Classification != nil {
		t.Errorf("unknown classification should be ignored, got %v", *f.Classification)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", documents.ErrNotFound, http.StatusNotFound},
		{"duplicate", documents.ErrDuplicate, http.StatusConflict},
		{"too large", documents.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{"invalid file", documents.ErrInvalidFile, http.StatusBadRequest},
		{"invalid classification", tlp.ErrInvalidArgument, http.StatusBadRequest},
		{"save cancelled", fmt.Errorf("%w: denied", workbook.ErrSaveCancelled), http.StatusUnprocessableEntity},
		{"unclassified", classifications.ErrUnclassified, http.StatusUnprocessableEntity},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := documents.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
