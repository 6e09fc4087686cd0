// Package ingest loads datasets and bureau reports produced by upstream extraction.
package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wonny/creditlens/internal/contracts"
)

// Format is a supported file encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", contracts.ErrUnsupportedSource, filepath.Base(path))
	}
}

// Decode reads one document of the given format into v.
// Unknown fields are rejected in both formats.
func Decode(r io.Reader, format Format, v interface{}) error {
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		return dec.Decode(v)
	default:
		return fmt.Errorf("%w: format %q", contracts.ErrUnsupportedSource, format)
	}
}

// LoadDataset reads a statement dataset and checks its shape
func LoadDataset(path string) (contracts.Dataset, error) {
	var ds contracts.Dataset
	if err := load(path, &ds); err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	if err := ds.CheckShape(); err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", filepath.Base(path), err)
	}
	return ds, nil
}

// LoadBureau reads an AECB report
func LoadBureau(path string) (*contracts.AECBReport, error) {
	var report contracts.AECBReport
	if err := load(path, &report); err != nil {
		return nil, fmt.Errorf("load bureau report: %w", err)
	}
	return &report, nil
}

func load(path string, v interface{}) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return Decode(bytes.NewReader(data), format, v)
}
