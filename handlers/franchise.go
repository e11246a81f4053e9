package handlers

import (
	"net/http"

	"franchises-backend/models"
	"franchises-backend/repositories"
	"franchises-backend/utils"

	"github.com/gin-gonic/gin"
)

type FranchiseHandler struct {
	Franchises *repositories.FranchiseRepository
}

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *FranchiseHandler) CreateFranchise(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	franchise := models.Franchise{Name: req.Name}
	if err := h.Franchises.Create(ctx, &franchise); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, franchise)
}

func (h *FranchiseHandler) GetFranchise(c *gin.Context) {
	id, ok := pathUUID(c, "fid")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	franchise, err := h.Franchises.GetByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, franchise)
}

func (h *FranchiseHandler) ListFranchises(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	page, err := h.Franchises.List(ctx, queryLimit(c), c.Query("cursor"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *FranchiseHandler) RenameFranchise(c *gin.Context) {
	id, ok := pathUUID(c, "fid")
	if !ok {
		return
	}

	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	franchise, err := h.Franchises.Rename(ctx, id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, franchise)
}

func (h *FranchiseHandler) DeleteFranchise(c *gin.Context) {
	id, ok := pathUUID(c, "fid")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Franchises.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
