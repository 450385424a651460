package dilemmafile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"godilemma/domain/dilemma"
	"godilemma/internal/errors"
)

// Format names a dilemma file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Load reads a dilemma file. The format comes from the extension; files
// without a known extension are sniffed.
func Load(path string) (*dilemma.Dilemma, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read dilemma file %s", path)
	}
	d, err := Parse(data, FormatFor(path, data))
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", filepath.Base(path))
	}
	return d, nil
}

// FormatFor picks the format of a file from its extension, falling back to
// JSON when the content starts with '{' and YAML otherwise.
func FormatFor(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return FormatJSON
	}
	return FormatYAML
}

// Parse decodes data in the given format. Parameters may be written as bare
// values or as {value, description} objects; numbers become numeric
// parameters and everything else text parameters.
func Parse(data []byte, format Format) (*dilemma.Dilemma, error) {
	switch format {
	case FormatJSON:
		return parseJSON(data)
	case FormatYAML:
		return parseYAML(data)
	default:
		return nil, errors.InvalidInput("unsupported dilemma format " + string(format))
	}
}
