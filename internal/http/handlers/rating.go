package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zartof23/mytops-sub000/internal/http/response"
	"github.com/Zartof23/mytops-sub000/internal/services"
)

type RatingHandler struct {
	ratingService services.RatingService
}

func NewRatingHandler(ratingService services.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// POST /ratings
// body: { "item_id": "...", "rating": 4, "note": "" }
func (rh *RatingHandler) Rate(c *gin.Context) {
	var req struct {
		ItemID string `json:"item_id"`
		Rating int    `json:"rating"`
		Note   string `json:"note"`
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
	rating, err := rh.ratingService.RateItem(c.Request.Context(), itemID, req.Rating, req.Note)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"rating": rating})
}

// DELETE /ratings/:itemID
func (rh *RatingHandler) Remove(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemID"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_item_id", err)
		return
	}
	if err := rh.ratingService.RemoveRating(c.Request.Context(), itemID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// POST /ratings/batch
// body: { "item_ids": ["...", "..."] }
// Unrated items are absent from the response map.
func (rh *RatingHandler) Batch(c *gin.Context) {
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
	ratings, err := rh.ratingService.RatingsForItems(c.Request.Context(), itemIDs)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ratings": ratings})
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
