package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sword9322/bezer-sub000/internal/apierror"
	"github.com/sword9322/bezer-sub000/internal/dto"
	"github.com/sword9322/bezer-sub000/internal/middleware"
	"github.com/sword9322/bezer-sub000/internal/service"
)

type ReferencesHandler struct{ svc service.ReferenceService }

func NewReferencesHandler(svc service.ReferenceService) *ReferencesHandler {
	return &ReferencesHandler{svc: svc}
}

// ── Brands ────────────────────────────────────────────────────────────────────

func (h *ReferencesHandler) ListBrands(c *gin.Context) {
	names, err := h.svc.ListBrands(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": names})
}

func (h *ReferencesHandler) AddBrand(c *gin.Context) {
	var req dto.AddNameRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.AddBrand(c.Request.Context(), middleware.Actor(c), req.Name); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *ReferencesHandler) RemoveBrand(c *gin.Context) {
	if err := h.svc.RemoveBrand(c.Request.Context(), middleware.Actor(c), c.Param("name")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Typologies ────────────────────────────────────────────────────────────────

func (h *ReferencesHandler) ListTypologies(c *gin.Context) {
	names, err := h.svc.ListTypologies(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": names})
}

func (h *ReferencesHandler) AddTypology(c *gin.Context) {
	var req dto.AddNameRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.AddTypology(c.Request.Context(), middleware.Actor(c), req.Name); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *ReferencesHandler) RemoveTypology(c *gin.Context) {
	if err := h.svc.RemoveTypology(c.Request.Context(), middleware.Actor(c), c.Param("name")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Racks ─────────────────────────────────────────────────────────────────────

func (h *ReferencesHandler) ListRacks(c *gin.Context) {
	racks, err := h.svc.ListRacks(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": racks})
}

func (h *ReferencesHandler) AddRack(c *gin.Context) {
	var req dto.AddRackRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.AddRack(c.Request.Context(), middleware.Actor(c), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// RemoveRack DELETE /v1/racks/:id?warehouse=1 — rack ids are scoped per
// warehouse, so the warehouse tag is required to address one entry.
func (h *ReferencesHandler) RemoveRack(c *gin.Context) {
	warehouse := c.Query("warehouse")
	if warehouse != "1" && warehouse != "2" {
		c.JSON(http.StatusBadRequest, apierror.New("warehouse query param must be 1 or 2"))
		return
	}
	if err := h.svc.RemoveRack(c.Request.Context(), middleware.Actor(c), c.Param("id"), warehouse); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
