package analyses

import (
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/extract"
	"resume-matcher/internal/scoring"
	"resume-matcher/internal/shared/server/middleware"
	"resume-matcher/internal/shared/server/respond"
)

const defaultMaxUploadBytes = 10 << 20

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	h.RegisterAnalyzeRoute(rg)
	h.RegisterReadRoutes(rg)
}

// RegisterReadRoutes attaches the history routes only.
func (h *Handler) RegisterReadRoutes(rg *gin.RouterGroup) {
	rg.GET("/analyses", h.listAnalyses)
	rg.GET("/analyses/:id", h.getAnalysis)
}

// RegisterAnalyzeRoute attaches the upload route only.
func (h *Handler) RegisterAnalyzeRoute(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
}

func (h *Handler) analyze(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload())

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, respond.CodeTooLarge, "file exceeds upload limit", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "file is required", nil)
		return
	}

	years := 0.0
	if raw := strings.TrimSpace(c.PostForm("years")); raw != "" {
		years, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			respond.Invalid(c, "years", "invalid", "years must be a number")
			return
		}
		if years < 0 || math.IsNaN(years) || math.IsInf(years, 0) {
			respond.Invalid(c, "years", "invalid", "years must be a non-negative number")
			return
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "could not read file", nil)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "could not read file", nil)
		return
	}

	analysis, err := h.Svc.Analyze(c.Request.Context(), Upload{
		UserID:         userID,
		FileName:       fileHeader.Filename,
		MimeType:       fileHeader.Header.Get("Content-Type"),
		Data:           data,
		JobDescription: c.PostForm("jd"),
		Skills:         splitSkills(c.PostForm("skills")),
		Years:          years,
	})
	if err != nil {
		var inputErr *scoring.InputError
		var extractErr *extract.ExtractionError
		switch {
		case errors.Is(err, ErrEmptyInput):
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "file is empty", nil)
		case errors.Is(err, extract.ErrUnsupported):
			respond.Error(c, http.StatusUnsupportedMediaType, respond.CodeUnsupported, "supported formats are PDF, DOCX and plain text", nil)
		case errors.As(err, &extractErr), errors.As(err, &inputErr):
			respond.Error(c, http.StatusUnprocessableEntity, respond.CodeInput, "could not analyze this document", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to analyze document", nil)
		}
		return
	}

	c.Set("analysisId", analysis.ID)
	c.Set("matchLevel", analysis.MatchLevel)
	c.Header("X-Analysis-Id", analysis.ID)
	respond.Private(c, analysis.Result)
}

func (h *Handler) getAnalysis(c *gin.Context) {
	analysisID := c.Param("id")
	if analysisID == "" {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "analysis id is required", nil)
		return
	}

	userID := middleware.UserIDFromContext(c)
	analysis, err := h.Svc.Get(c.Request.Context(), userID, analysisID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to fetch analysis", nil)
		}
		return
	}

	respond.Private(c, gin.H{
		"analysisId": analysis.ID,
		"fileName":   analysis.FileName,
		"createdAt":  analysis.CreatedAt,
		"scoreColor": scoring.ScoreColor(analysis.OverallScore),
		"result":     analysis.Result,
	})
}

func (h *Handler) listAnalyses(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	items, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to list analyses", nil)
		return
	}
	respond.Private(c, items)
}

func (h *Handler) maxUpload() int64 {
	if h.MaxUploadBytes > 0 {
		return h.MaxUploadBytes
	}
	return defaultMaxUploadBytes
}

func splitSkills(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
