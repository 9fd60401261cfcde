package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/tlpmark/pkg/formatting"
	"github.com/JaimeStill/tlpmark/pkg/pagination"
)

var paginationEnv = &pagination.Env{
	DefaultPageSize: "TLPMARK_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "TLPMARK_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing, upload, and pagination settings.
type APIConfig struct {
	BasePath      string            `toml:"base_path"`
	MaxUploadSize string            `toml:"max_upload_size"`
	Pagination    pagination.Config `toml:"pagination"`
}

// MaxUploadSizeBytes returns MaxUploadSize in bytes. Finalize guarantees it parses.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, _ := formatting.ParseBytes(c.MaxUploadSize)
	return size
}

func (c *APIConfig) Finalize() error {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "25MB"
	}
	if v := os.Getenv("TLPMARK_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("TLPMARK_API_MAX_UPLOAD_SIZE"); v != "" {
		c.MaxUploadSize = v
	}

	if size, err := formatting.ParseBytes(c.MaxUploadSize); err != nil || size <= 0 {
		return fmt.Errorf("invalid max_upload_size %q", c.MaxUploadSize)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
	c.Pagination.Merge(&overlay.Pagination)
}
