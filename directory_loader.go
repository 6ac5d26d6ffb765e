package phoneinput

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

//go:embed data/dialcodes.yaml
var defaultDirectoryYAML []byte

// Directory encodings understood by DecodeDirectory and WriteDirectory.
const (
	FormatYAML    = "yaml"
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

type directoryDocument struct {
	Countries []CountryRecord `json:"countries" yaml:"countries" msgpack:"countries"`
}

var (
	defaultDirectoryOnce sync.Once
	defaultDirectory     *Directory
	defaultDirectoryErr  error
)

// DefaultDirectory returns the embedded country directory. It is decoded
// once per process and shared; the returned Directory is read-only.
func DefaultDirectory() (*Directory, error) {
	defaultDirectoryOnce.Do(func() {
		defaultDirectory, defaultDirectoryErr = NewDirectoryLoader("").Load()
	})
	return defaultDirectory, defaultDirectoryErr
}

// DirectoryLoader builds a Directory from the embedded data set, an optional
// replacement file and optional override files.
type DirectoryLoader struct {
	path      string
	overrides []string
}

// NewDirectoryLoader creates a loader. An empty path selects the embedded data set.
func NewDirectoryLoader(path string) *DirectoryLoader {
	return &DirectoryLoader{path: strings.TrimSpace(path)}
}

// AddOverride registers a file whose records replace entries with the same
// ISO code, keeping their position, or are appended when new.
func (l *DirectoryLoader) AddOverride(path string) *DirectoryLoader {
	if l == nil || strings.TrimSpace(path) == "" {
		return l
	}
	l.overrides = append(l.overrides, strings.TrimSpace(path))
	return l
}

// Load decodes the sources and validates the merged result.
func (l *DirectoryLoader) Load() (*Directory, error) {
	if l == nil {
		return nil, errors.New("phoneinput: nil directory loader")
	}

	var (
		records []CountryRecord
		err     error
	)

	if l.path == "" {
		records, err = DecodeDirectory("dialcodes.yaml", defaultDirectoryYAML)
		if err != nil {
			return nil, fmt.Errorf("phoneinput: decode embedded directory: %w", err)
		}
	} else {
		records, err = readDirectoryFile(l.path)
		if err != nil {
			return nil, err
		}
	}

	for _, path := range l.overrides {
		override, err := readDirectoryFile(path)
		if err != nil {
			return nil, err
		}
		records = mergeRecords(records, override)
	}

	return NewDirectory(records)
}

func readDirectoryFile(path string) ([]CountryRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("phoneinput: read %s: %w", path, err)
	}

	records, err := DecodeDirectory(path, data)
	if err != nil {
		return nil, fmt.Errorf("phoneinput: decode %s: %w", path, err)
	}
	return records, nil
}

func mergeRecords(base, override []CountryRecord) []CountryRecord {
	positions := make(map[string]int, len(base))
	for i, record := range base {
		positions[normalizeCountryCode(record.CountryCode)] = i
	}

	for _, record := range override {
		code := normalizeCountryCode(record.CountryCode)
		if idx, ok := positions[code]; ok && code != "" {
			base[idx] = record
			continue
		}
		positions[code] = len(base)
		base = append(base, record)
	}
	return base
}

// DecodeDirectory decodes records, choosing the encoding from the path extension.
func DecodeDirectory(path string, data []byte) ([]CountryRecord, error) {
	format, err := formatFromPath(path)
	if err != nil {
		return nil, err
	}

	var doc directoryDocument
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatMsgpack:
		err = msgpack.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%s parse error: %w", format, err)
	}

	if len(doc.Countries) == 0 {
		return nil, ErrEmptyDirectory
	}
	return doc.Countries, nil
}

// WriteDirectory encodes records in the requested format.
func WriteDirectory(w io.Writer, format string, records []CountryRecord) error {
	doc := directoryDocument{Countries: records}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatMsgpack, "mpk":
		return msgpack.NewEncoder(w).Encode(doc)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func formatFromPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".msgpack", ".mpk":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
	}
}
