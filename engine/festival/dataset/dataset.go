// Package dataset reads static festival datasets exported from spreadsheets.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/artofest/artofest/engine/festival"
	"github.com/artofest/artofest/pkg/logger"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrNotArray          = errors.New("dataset must be an array of records")
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads the raw records of a dataset file.
func Load(ctx context.Context, path string) ([]festival.RawRecord, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()
	records, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	logger.FromContext(ctx).Debug("Dataset loaded", "path", path, "format", format, "records", len(records))
	return records, nil
}

// LoadFestivals reads and normalizes a dataset file.
func LoadFestivals(ctx context.Context, path string) ([]festival.Festival, error) {
	raw, err := Load(ctx, path)
	if err != nil {
		return nil, err
	}
	festivals := festival.Normalize(raw)
	if dropped := len(raw) - len(festivals); dropped > 0 {
		logger.FromContext(ctx).Debug("Dropped empty dataset records", "dropped", dropped)
	}
	return festivals, nil
}

// Decode reads raw records from r. Entries that are not objects are skipped.
func Decode(r io.Reader, format Format) ([]festival.RawRecord, error) {
	var doc any
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return []festival.RawRecord{}, nil
			}
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if doc == nil {
		return []festival.RawRecord{}, nil
	}
	items, ok := doc.([]any)
	if !ok {
		return nil, ErrNotArray
	}
	records := make([]festival.RawRecord, 0, len(items))
	for _, item := range items {
		m, ok := asObject(item)
		if !ok {
			continue
		}
		records = append(records, festival.RawRecordFromMap(m))
	}
	return records, nil
}

func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			key, ok := k.(string)
			if !ok {
				continue
			}
			out[key] = val
		}
		return out, true
	default:
		return nil, false
	}
}
