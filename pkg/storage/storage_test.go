package storage_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/JaimeStill/tlpmark/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=tlpmarkstore;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/tlpmarkstore;"

func newSystems(t *testing.T) map[string]storage.System {
	t.Helper()

	configs := map[string]*storage.Config{
		storage.ProviderAzure: {
			Provider:         storage.ProviderAzure,
			ContainerName:    "workbooks",
			ConnectionString: azuriteConnString,
		},
		storage.ProviderMinio: {
			Provider:      storage.ProviderMinio,
			ContainerName: "workbooks",
			Endpoint:      "127.0.0.1:9000",
			AccessKey:     "minioadmin",
			SecretKey:     "minioadmin",
		},
	}

	systems := make(map[string]storage.System, len(configs))
	for name, cfg := range configs {
		sys, err := storage.New(cfg, slog.Default())
		if err != nil {
			t.Fatalf("New(%s) error = %v", name, err)
		}
		systems[name] = sys
	}
	return systems
}

func TestNewReturnsSystem(t *testing.T) {
	for name, sys := range newSystems(t) {
		if sys == nil {
			t.Errorf("New(%s) returned nil system", name)
		}
	}
}

func TestNewInvalidConnectionString(t *testing.T) {
	cfg := &storage.Config{
		Provider:         storage.ProviderAzure,
		ContainerName:    "workbooks",
		ConnectionString: "not-a-connection-string",
	}

	if _, err := storage.New(cfg, slog.Default()); err == nil {
		t.Fatal("expected error for invalid connection string, got nil")
	}
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := storage.New(&storage.Config{Provider: "s3"}, slog.Default())
	if err == nil || !strings.Contains(err.Error(), "unknown storage provider") {
		t.Fatalf("expected unknown provider error, got %v", err)
	}
}

func TestKeyValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		key  string
		want error
	}{
		{"empty", "", storage.ErrEmptyKey},
		{"traversal", "documents/../secret.xlsx", storage.ErrInvalidKey},
	}

	for provider, sys := range newSystems(t) {
		for _, tt := range tests {
			t.Run(provider+"/"+tt.name, func(t *testing.T) {
				if err := sys.Upload(ctx, tt.key, strings.NewReader("x"), "text/plain"); !errors.Is(err, tt.want) {
					t.Errorf("Upload: got %v, want %v", err, tt.want)
				}
				if _, err := sys.Download(ctx, tt.key); !errors.Is(err, tt.want) {
					t.Errorf("Download: got %v, want %v", err, tt.want)
				}
				if err := sys.Delete(ctx, tt.key); !errors.Is(err, tt.want) {
					t.Errorf("Delete: got %v, want %v", err, tt.want)
				}
				if _, err := sys.Exists(ctx, tt.key); !errors.Is(err, tt.want) {
					t.Errorf("Exists: got %v, want %v", err, tt.want)
				}
			})
		}
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", storage.ErrNotFound, http.StatusNotFound},
		{"empty key", storage.ErrEmptyKey, http.StatusBadRequest},
		{"invalid key", storage.ErrInvalidKey, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := storage.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
