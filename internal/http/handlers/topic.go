package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zartof23/mytops-sub000/internal/http/response"
	pkgerrors "github.com/Zartof23/mytops-sub000/internal/pkg/errors"
	"github.com/Zartof23/mytops-sub000/internal/services"
)

type TopicHandler struct {
	topicService   services.TopicService
	catalogService services.CatalogService
	statsService   services.StatsService
}

func NewTopicHandler(topicService services.TopicService, catalogService services.CatalogService, statsService services.StatsService) *TopicHandler {
	return &TopicHandler{topicService: topicService, catalogService: catalogService, statsService: statsService}
}

// GET /topics
func (th *TopicHandler) ListTopics(c *gin.Context) {
	topics, err := th.topicService.ListTopics(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"topics": topics})
}

// GET /topics/:slug
func (th *TopicHandler) GetTopic(c *gin.Context) {
	topic, err := th.topicService.GetTopicBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"topic": topic})
}

// GET /topics/:slug/items?search=&min_rating=&released_after=&page=&page_size=
func (th *TopicHandler) BrowseItems(c *gin.Context) {
	q := services.BrowseQuery{
		TopicSlug: c.Param("slug"),
		Search:    strings.TrimSpace(c.Query("search")),
	}

	if raw := strings.TrimSpace(c.Query("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_page", err)
			return
		}
		q.Page = page
	}
	if raw := strings.TrimSpace(c.Query("page_size")); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_page_size", err)
			return
		}
		q.PageSize = size
	}
	if raw := strings.TrimSpace(c.Query("min_rating")); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_min_rating", err)
			return
		}
		q.MinRating = &min
	}
	if raw := strings.TrimSpace(c.Query("released_after")); raw != "" {
		released, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_released_after", err)
			return
		}
		q.ReleasedAfter = &released
	}

	page, err := th.catalogService.BrowseItems(c.Request.Context(), q)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, page)
}

// GET /items/:itemID
// Detail view: the item plus its aggregate rating, computed from raw rows.
func (th *TopicHandler) GetItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemID"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_item_id", err)
		return
	}

	items, err := th.catalogService.GetItemsByIDs(c.Request.Context(), []uuid.UUID{itemID})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if len(items) == 0 {
		response.RespondError(c, http.StatusNotFound, "item_not_found", pkgerrors.ErrNotFound)
		return
	}

	stats, err := th.statsService.StatsForItems(c.Request.Context(), []uuid.UUID{itemID})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"item": items[0], "stats": stats[itemID]})
}
