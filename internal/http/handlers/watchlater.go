package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zartof23/mytops-sub000/internal/http/response"
	"github.com/Zartof23/mytops-sub000/internal/services"
)

type WatchLaterHandler struct {
	watchLaterService services.WatchLaterService
}

func NewWatchLaterHandler(watchLaterService services.WatchLaterService) *WatchLaterHandler {
	return &WatchLaterHandler{watchLaterService: watchLaterService}
}

// POST /watch-later
// body: { "item_id": "..." }
func (wh *WatchLaterHandler) Add(c *gin.Context) {
	var req struct {
		ItemID string `json:"item_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_item_id", err)
		return
	}
	entry, err := wh.watchLaterService.Add(c.Request.Context(), itemID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"entry": entry})
}

// DELETE /watch-later/:itemID
func (wh *WatchLaterHandler) Remove(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemID"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_item_id", err)
		return
	}
	if err := wh.watchLaterService.Remove(c.Request.Context(), itemID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// POST /watch-later/status
// body: { "item_ids": [...] } -> { "on_list": ["id", ...] }
func (wh *WatchLaterHandler) Status(c *gin.Context) {
	var req struct {
		ItemIDs []string `json:"item_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	itemIDs, err := parseUUIDs(req.ItemIDs)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_item_id", err)
		return
	}
	status, err := wh.watchLaterService.StatusForItems(c.Request.Context(), itemIDs)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	onList := make([]string, 0, len(status))
	for id := range status {
		onList = append(onList, id.String())
	}
	response.RespondOK(c, gin.H{"on_list": onList})
}

// GET /topics/:slug/watch-later
func (wh *WatchLaterHandler) ListByTopic(c *gin.Context) {
	items, err := wh.watchLaterService.ListByTopic(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"items": items})
}
