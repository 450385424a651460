package api

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"godilemma/adapters/dilemmafile"
	"godilemma/adapters/report"
	"godilemma/app"
	"godilemma/domain/dilemma"
	"godilemma/domain/verdict"
	"godilemma/internal/errors"
	"godilemma/internal/validation"
)

const maxBodyBytes = 1 << 20

// DilemmaHandler serves evaluation and validation requests
type DilemmaHandler struct {
	service *app.EvaluationService
	logger  *slog.Logger
}

// NewDilemmaHandler creates a new dilemma handler
func NewDilemmaHandler(service *app.EvaluationService, logger *slog.Logger) *DilemmaHandler {
	return &DilemmaHandler{service: service, logger: logger}
}

// Register mounts the handler's routes on r
func (h *DilemmaHandler) Register(r gin.IRouter) {
	r.GET("/healthz", h.Health)

	v1 := r.Group("/v1")
	v1.POST("/evaluate", h.Evaluate)
	v1.POST("/validate", h.Validate)
	v1.GET("/templates", h.ListTemplates)
	v1.GET("/templates/:name", h.GetTemplate)
}

// Health reports liveness
func (h *DilemmaHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Evaluate runs the pipeline on the posted dilemma. The ?format= query picks
// the report writer and defaults to JSON.
func (h *DilemmaHandler) Evaluate(c *gin.Context) {
	d, ok := h.readDilemma(c)
	if !ok {
		return
	}

	writer, err := report.New(c.DefaultQuery("format", report.FormatJSON))
	if err != nil {
		h.fail(c, err)
		return
	}

	result, err := h.service.Evaluate(c.Request.Context(), d)
	if err != nil {
		h.fail(c, err)
		return
	}

	var buf bytes.Buffer
	if err := writer.Write(&buf, result); err != nil {
		h.fail(c, errors.Wrap(err, "render report"))
		return
	}
	c.Data(http.StatusOK, writer.ContentType(), buf.Bytes())
}

// Validate standardizes the posted dilemma and reports its issues
func (h *DilemmaHandler) Validate(c *gin.Context) {
	d, ok := h.readDilemma(c)
	if !ok {
		return
	}

	std, issues := h.service.Validate(d)
	if issues == nil {
		issues = []verdict.ValidationIssue{}
	}
	c.JSON(http.StatusOK, gin.H{
		"valid":   !validation.HasCritical(issues),
		"issues":  issues,
		"dilemma": std,
	})
}

// ListTemplates returns the built-in template names
func (h *DilemmaHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": dilemmafile.ListTemplates()})
}

// GetTemplate returns one built-in template as a dilemma document
func (h *DilemmaHandler) GetTemplate(c *gin.Context) {
	d, err := dilemmafile.LoadTemplate(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "template not found", "code": errors.CodeInvalidInput})
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DilemmaHandler) readDilemma(c *gin.Context) (*dilemma.Dilemma, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		h.fail(c, errors.InvalidInput("request body too large or unreadable"))
		return nil, false
	}
	d, err := dilemmafile.Parse(body, dilemmafile.FormatFor("", body))
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return d, true
}

// fail answers with the status for err's code. Validation failures also
// carry their issue list.
func (h *DilemmaHandler) fail(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "path", c.FullPath(), "error", err)
	}

	body := gin.H{"error": err.Error(), "code": code}
	if errors.HasCode(err, errors.CodeValidationFailure) {
		body["issues"] = validation.IssuesOf(err)
	}
	c.AbortWithStatusJSON(status, body)
}

func statusFor(code string) int {
	switch code {
	case errors.CodeInvalidInput:
		return http.StatusBadRequest
	case errors.CodeValidationFailure, errors.CodeUnknownFramework:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
