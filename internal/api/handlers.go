package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/north-cloud/company-research/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/company-research/internal/cache"
	"github.com/jonesrussell/north-cloud/company-research/internal/domain"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}

// Researcher is the service surface the handlers need.
type Researcher interface {
	CompanyInfo(ctx context.Context, req domain.ResearchRequest) (*domain.CompanyInfoResult, error)
	SalaryBenefits(ctx context.Context, req domain.ResearchRequest) (*domain.SalaryBenefitsResult, error)
	CompanyReviews(ctx context.Context, req domain.ResearchRequest) (*domain.CompanyReviewsResult, error)
	InterviewPrep(ctx context.Context, req domain.ResearchRequest) (*domain.InterviewPrepResult, error)
	ScoreLinks(ctx context.Context, req domain.ScoreLinksRequest) (*domain.ScoreLinksResult, error)
	CacheStats() (cache.Stats, error)
	ClearCache(ctx context.Context) error
	AutocompleteJobTitles(q string) []string
	AutocompleteCompanies(q string) []string
}

// Handler holds HTTP request handlers
type Handler struct {
	research Researcher
	logger   logger.Logger
}

// NewHandler creates a new handler instance
func NewHandler(research Researcher, log logger.Logger) *Handler {
	return &Handler{
		research: research,
		logger:   log,
	}
}

// CompanyInfo handles GET /api/v1/company-info
func (h *Handler) CompanyInfo(c *gin.Context) {
	req, ok := h.bindResearchQuery(c)
	if !ok {
		return
	}
	result, err := h.research.CompanyInfo(c.Request.Context(), req)
	h.respond(c, "company_info", result, err)
}

// SalaryBenefits handles GET /api/v1/salary-benefits
func (h *Handler) SalaryBenefits(c *gin.Context) {
	req, ok := h.bindResearchQuery(c)
	if !ok {
		return
	}
	result, err := h.research.SalaryBenefits(c.Request.Context(), req)
	h.respond(c, "salary_benefits", result, err)
}

// CompanyReviews handles GET /api/v1/company-reviews
func (h *Handler) CompanyReviews(c *gin.Context) {
	req, ok := h.bindResearchQuery(c)
	if !ok {
		return
	}
	result, err := h.research.CompanyReviews(c.Request.Context(), req)
	h.respond(c, "company_reviews", result, err)
}

// InterviewPrep handles GET /api/v1/interview-prep
func (h *Handler) InterviewPrep(c *gin.Context) {
	req, ok := h.bindResearchQuery(c)
	if !ok {
		return
	}
	result, err := h.research.InterviewPrep(c.Request.Context(), req)
	h.respond(c, "interview_prep", result, err)
}

// ScoreLinks handles POST /api/v1/links/score
func (h *Handler) ScoreLinks(c *gin.Context) {
	var req domain.ScoreLinksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid score request body", logger.Error(err))
		writeError(c, http.StatusBadRequest, CodeValidation, "Invalid request body: "+err.Error())
		return
	}
	result, err := h.research.ScoreLinks(c.Request.Context(), req)
	h.respond(c, "score_links", result, err)
}

// CacheStats handles GET /api/v1/cache/stats
func (h *Handler) CacheStats(c *gin.Context) {
	stats, err := h.research.CacheStats()
	h.respond(c, "cache_stats", stats, err)
}

// ClearCache handles DELETE /api/v1/cache
func (h *Handler) ClearCache(c *gin.Context) {
	if err := h.research.ClearCache(c.Request.Context()); err != nil {
		h.respond(c, "clear_cache", nil, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

// AutocompleteJobTitle handles GET /api/v1/autocomplete/job-title
func (h *Handler) AutocompleteJobTitle(c *gin.Context) {
	c.JSON(http.StatusOK, h.research.AutocompleteJobTitles(c.Query("q")))
}

// AutocompleteCompany handles GET /api/v1/autocomplete/company
func (h *Handler) AutocompleteCompany(c *gin.Context) {
	c.JSON(http.StatusOK, h.research.AutocompleteCompanies(c.Query("q")))
}

func (h *Handler) bindResearchQuery(c *gin.Context) (domain.ResearchRequest, bool) {
	var req domain.ResearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.FromContext(c.Request.Context()).Warn("Invalid query parameters", logger.Error(err))
		writeError(c, http.StatusBadRequest, CodeValidation, "Invalid query parameters: "+err.Error())
		return req, false
	}
	return req, true
}

func (h *Handler) respond(c *gin.Context, operation string, result any, err error) {
	if err == nil {
		c.JSON(http.StatusOK, result)
		return
	}

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		writeError(c, http.StatusBadRequest, CodeValidation, vErr.Error())
		return
	}

	logger.FromContext(c.Request.Context()).Error("Request failed",
		logger.String("operation", operation),
		logger.Error(err),
	)
	writeError(c, http.StatusInternalServerError, CodeInternal, err.Error())
}

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Timestamp: time.Now(),
	})
}
