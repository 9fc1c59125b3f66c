package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"fitment-crawler/pkg/models"
)

// CatalogFile writes the catalog as an indented JSON array. It implements
// engine.Sink for ProductRecord.
type CatalogFile struct {
	Path string
}

func NewCatalogFile(path string) *CatalogFile {
	return &CatalogFile{Path: path}
}

func (c *CatalogFile) Save(_ context.Context, batch []models.ProductRecord) error {
	if dir := filepath.Dir(c.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	raw, err := EncodeCatalog(batch)
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.Path, raw, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

// Load reads a catalog previously written by Save.
func (c *CatalogFile) Load() ([]models.ProductRecord, error) {
	raw, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var records []models.ProductRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", c.Path, err)
	}
	return records, nil
}

// EncodeCatalog renders records with a two-space indent, non-ASCII and HTML
// characters written literally. Nil slices are written as [].
func EncodeCatalog(records []models.ProductRecord) ([]byte, error) {
	out := make([]models.ProductRecord, len(records))
	for i, r := range records {
		if r.Fitments == nil {
			r.Fitments = []models.FitmentEntry{}
		}
		out[i] = r
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return buf.Bytes(), nil
}
