package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sword9322/bezer-sub000/internal/dto"
	"github.com/sword9322/bezer-sub000/internal/middleware"
	"github.com/sword9322/bezer-sub000/internal/service"
)

type ProductsHandler struct{ svc service.ProductService }

func NewProductsHandler(svc service.ProductService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

// Create POST /v1/products
func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
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

// List GET /v1/products
func (h *ProductsHandler) List(c *gin.Context) {
	var filter dto.ProductFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListTrash GET /v1/products/trash
func (h *ProductsHandler) ListTrash(c *gin.Context) {
	var filter dto.ProductFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.ListTrash(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get GET /v1/products/:ref
func (h *ProductsHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update PATCH /v1/products/:ref
func (h *ProductsHandler) Update(c *gin.Context) {
	var req dto.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), middleware.Actor(c), c.Param("ref"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SoftDelete DELETE /v1/products/:ref
func (h *ProductsHandler) SoftDelete(c *gin.Context) {
	if err := h.svc.SoftDelete(c.Request.Context(), middleware.Actor(c), c.Param("ref")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Restore POST /v1/products/:ref/restore
func (h *ProductsHandler) Restore(c *gin.Context) {
	if err := h.svc.Restore(c.Request.Context(), middleware.Actor(c), c.Param("ref")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Purge DELETE /v1/products/:ref/purge
func (h *ProductsHandler) Purge(c *gin.Context) {
	if err := h.svc.Purge(c.Request.Context(), middleware.Actor(c), c.Param("ref")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
