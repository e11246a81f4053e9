package handlers

import (
	"net/http"

	"franchises-backend/models"
	"franchises-backend/repositories"
	"franchises-backend/utils"

	"github.com/gin-gonic/gin"
)

type BranchHandler struct {
	Franchises *repositories.FranchiseRepository
	Branches   *repositories.BranchRepository
}

func (h *BranchHandler) CreateBranch(c *gin.Context) {
	fid, ok := pathUUID(c, "fid")
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

	if _, err := h.Franchises.GetByID(ctx, fid); err != nil {
		respondError(c, err)
		return
	}

	branch := models.Branch{FranchiseID: fid, Name: req.Name}
	if err := h.Branches.Create(ctx, &branch); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, branch)
}

func (h *BranchHandler) GetBranch(c *gin.Context) {
	bid, ok := pathUUID(c, "bid")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	branch, err := h.Branches.GetByID(ctx, bid)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, branch)
}

func (h *BranchHandler) ListBranches(c *gin.Context) {
	fid, ok := pathUUID(c, "fid")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	page, err := h.Branches.ListByFranchise(ctx, fid, queryLimit(c), c.Query("cursor"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *BranchHandler) RenameBranch(c *gin.Context) {
	fid, ok := pathUUID(c, "fid")
	if !ok {
		return
	}
	bid, ok := pathUUID(c, "bid")
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

	if _, err := h.Branches.GetByIDAndFranchise(ctx, bid, fid); err != nil {
		respondError(c, err)
		return
	}

	branch, err := h.Branches.Rename(ctx, bid, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, branch)
}

func (h *BranchHandler) DeleteBranch(c *gin.Context) {
	fid, ok := pathUUID(c, "fid")
	if !ok {
		return
	}
	bid, ok := pathUUID(c, "bid")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if _, err := h.Branches.GetByIDAndFranchise(ctx, bid, fid); err != nil {
		respondError(c, err)
		return
	}

	if err := h.Branches.Delete(ctx, bid); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
