package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zartof23/mytops-sub000/internal/http/response"
	"github.com/Zartof23/mytops-sub000/internal/services"
)

type EnrichHandler struct {
	enrichService    services.EnrichService
	rateLimitService services.RateLimitService
}

func NewEnrichHandler(enrichService services.EnrichService, rateLimitService services.RateLimitService) *EnrichHandler {
	return &EnrichHandler{enrichService: enrichService, rateLimitService: rateLimitService}
}

// POST /enrich
// body: { "topic_slug": "movies", "query": "dune part two" }
func (eh *EnrichHandler) Search(c *gin.Context) {
	var req struct {
		TopicSlug string `json:"topic_slug"`
		Query     string `json:"query"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := eh.enrichService.Search(c.Request.Context(), req.TopicSlug, req.Query)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}

	// Quota status rides along so clients can show the remaining budget
	// without a second round trip. Best effort.
	status, _ := eh.rateLimitService.Status(c.Request.Context())
	response.RespondOK(c, gin.H{"result": result, "rate_limit": status})
}

// GET /enrich/limit
func (eh *EnrichHandler) Limit(c *gin.Context) {
	status, err := eh.rateLimitService.Status(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, status)
}
