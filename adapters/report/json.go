package report

import (
	"encoding/json"
	"io"

	"godilemma/domain/verdict"
)

// JSONWriter writes the result as indented JSON.
type JSONWriter struct{}

func (JSONWriter) Write(w io.Writer, result *verdict.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func (JSONWriter) ContentType() string { return "application/json" }
