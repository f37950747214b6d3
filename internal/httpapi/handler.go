package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/papersmith/papersmith/internal/paper"
)

// Generator produces a question paper for one request.
type Generator interface {
	Generate(ctx context.Context, req paper.Request) (*paper.QuestionPaper, error)
}

// Handler serves the generation endpoint.
type Handler struct {
	gen    Generator
	logger *zap.Logger
}

// NewHandler creates a Handler. logger may be nil.
func NewHandler(gen Generator, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{gen: gen, logger: logger}
}

// Client-facing messages per failure kind. Details stay in the server log.
var kindMessages = map[paper.Kind]string{
	paper.KindProviderUnavailable: "question generation service is unavailable, please try again later",
	paper.KindProviderTimeout:     "question generation timed out, please try again",
	paper.KindMalformedOutput:     "question generation produced an invalid paper, please try again",
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorBody(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// GenerateQuestions handles POST /generate-questions.
func (h *Handler) GenerateQuestions(c *gin.Context) {
	var req paper.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, errorBody("request body too large"))
			return
		}
		c.JSON(http.StatusBadRequest, errorBody("request body must be a JSON object with syllabusText"))
		return
	}

	qp, err := h.gen.Generate(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, qp)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	kind := paper.Classify(err)

	if kind == paper.KindInvalidInput {
		c.JSON(http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	fields := []zap.Field{
		zap.String("kind", string(kind)),
		zap.String("request_id", requestIDFrom(c)),
		zap.Error(err),
	}
	var malformed *paper.ErrMalformedOutput
	if errors.As(err, &malformed) {
		fields = append(fields, zap.String("snippet", malformed.Snippet))
	}
	h.logger.Error("question paper generation failed", fields...)

	c.JSON(http.StatusInternalServerError, errorBody(kindMessages[kind]))
}
