package ports

import (
	"io"

	"godilemma/domain/verdict"
)

// ReportWriter renders a pipeline result for the formatting collaborator.
type ReportWriter interface {
	Write(w io.Writer, result *verdict.Result) error
	ContentType() string
}
