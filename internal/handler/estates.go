package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listEstates(c *gin.Context) {
	estates, err := h.db.GetAllEstates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list estates"})
		return
	}

	count, err := h.db.CountEstates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count estates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"estates": estates, "count": count})
}

func (h *Handler) getEstate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	estate, err := h.db.GetEstateByID(c.Request.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "estate not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load estate"})
		return
	}

	c.JSON(http.StatusOK, estate)
}

// getEstateFull is the dashboard view of a listing. Same record today;
// kept as a separate route so the public shape can shrink without
// touching the dashboard.
func (h *Handler) getEstateFull(c *gin.Context) {
	h.getEstate(c)
}

// Price and space carry no "required" tag: zero is a legitimate value
// for both, and required-on-int rejects it.
type createEstateRequest struct {
	Name          string `json:"name" binding:"required"`
	Address       string `json:"address" binding:"required"`
	ImageURL      string `json:"image_url"`
	Description   string `json:"description"`
	PriceInCents  int64  `json:"price_in_cents"`
	SpaceInMeters int32  `json:"space_in_meters"`
}

func (h *Handler) createEstate(c *gin.Context) {
	var req createEstateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.PriceInCents < 0 || req.SpaceInMeters < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price and space must not be negative"})
		return
	}

	estate, err := h.db.CreateEstate(
		c.Request.Context(),
		req.Name,
		req.Address,
		req.ImageURL,
		req.Description,
		req.PriceInCents,
		req.SpaceInMeters,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create estate"})
		return
	}

	c.JSON(http.StatusCreated, estate)
}

type updateEstateRequest struct {
	Name          *string `json:"name"`
	Address       *string `json:"address"`
	ImageURL      *string `json:"image_url"`
	Description   *string `json:"description"`
	PriceInCents  *int64  `json:"price_in_cents"`
	SpaceInMeters *int32  `json:"space_in_meters"`
}

// updateEstate applies any subset of the listing's fields, one column
// update per provided field.
func (h *Handler) updateEstate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateEstateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ctx := c.Request.Context()

	fail := func(err error) bool {
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update estate"})
			return true
		}
		return false
	}

	if req.Name != nil && fail(h.db.UpdateEstateName(ctx, id, *req.Name)) {
		return
	}
	if req.Address != nil && fail(h.db.UpdateEstateAddress(ctx, id, *req.Address)) {
		return
	}
	if req.ImageURL != nil && fail(h.db.UpdateEstateImageURL(ctx, id, *req.ImageURL)) {
		return
	}
	if req.Description != nil && fail(h.db.UpdateEstateDescription(ctx, id, *req.Description)) {
		return
	}
	if req.PriceInCents != nil && fail(h.db.UpdateEstatePrice(ctx, id, *req.PriceInCents)) {
		return
	}
	if req.SpaceInMeters != nil && fail(h.db.UpdateEstateSpace(ctx, id, *req.SpaceInMeters)) {
		return
	}

	estate, err := h.db.GetEstateByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "estate not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load estate"})
		return
	}

	c.JSON(http.StatusOK, estate)
}

func (h *Handler) deleteEstate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.db.DeleteEstate(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete estate"})
		return
	}

	c.Status(http.StatusNoContent)
}
