package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sword9322/bezer-sub000/internal/dto"
	"github.com/sword9322/bezer-sub000/internal/middleware"
	"github.com/sword9322/bezer-sub000/internal/service"
)

type CampaignsHandler struct{ svc service.CampaignService }

func NewCampaignsHandler(svc service.CampaignService) *CampaignsHandler {
	return &CampaignsHandler{svc: svc}
}

// Create POST /v1/campaigns
func (h *CampaignsHandler) Create(c *gin.Context) {
	var req dto.CreateCampaignRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List GET /v1/campaigns
func (h *CampaignsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// Get GET /v1/campaigns/:id
func (h *CampaignsHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update PATCH /v1/campaigns/:id
func (h *CampaignsHandler) Update(c *gin.Context) {
	var req dto.UpdateCampaignRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), middleware.Actor(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete DELETE /v1/campaigns/:id
func (h *CampaignsHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
