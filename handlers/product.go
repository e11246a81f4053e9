package handlers

import (
	"errors"
	"net/http"

	"franchises-backend/models"
	"franchises-backend/repositories"
	"franchises-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductHandler struct {
	Franchises *repositories.FranchiseRepository
	Branches   *repositories.BranchRepository
	Products   *repositories.ProductRepository
}

type createProductRequest struct {
	Name  string `json:"name" binding:"required"`
	Stock *int   `json:"stock" binding:"required,gte=0"`
}

type changeStockRequest struct {
	Delta *int `json:"delta" binding:"required"`
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	fid, ok := pathUUID(c, "fid")
	if !ok {
		return
	}
	bid, ok := pathUUID(c, "bid")
	if !ok {
		return
	}

	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}
	if repositories.NormalizeName(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product name is required"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	branch, err := h.Branches.GetByIDAndFranchise(ctx, bid, fid)
	if err != nil {
		respondError(c, err)
		return
	}

	product := models.Product{
		FranchiseID: branch.FranchiseID,
		BranchID:    branch.ID,
		Name:        req.Name,
		Stock:       *req.Stock,
	}
	if err := h.Products.Create(ctx, &product); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	bid, ok := pathUUID(c, "bid")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	page, err := h.Products.ListByBranch(ctx, bid, queryLimit(c), c.Query("cursor"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// ListFranchiseProducts pages through every product under a franchise,
// across all of its branches.
func (h *ProductHandler) ListFranchiseProducts(c *gin.Context) {
	fid, ok := pathUUID(c, "fid")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if _, err := h.Franchises.GetByID(ctx, fid); err != nil {
		respondError(c, err)
		return
	}

	page, err := h.Products.ListByFranchise(ctx, fid, queryLimit(c), c.Query("cursor"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *ProductHandler) SearchProducts(c *gin.Context) {
	bid, ok := pathUUID(c, "bid")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	page, err := h.Products.SearchByName(ctx, bid, c.Query("q"), queryLimit(c), c.Query("cursor"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *ProductHandler) RenameProduct(c *gin.Context) {
	bid, ok := pathUUID(c, "bid")
	if !ok {
		return
	}
	pid, ok := pathUUID(c, "pid")
	if !ok {
		return
	}

	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}
	if repositories.NormalizeName(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product name is required"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if _, err := h.Products.GetByIDAndBranch(ctx, pid, bid); err != nil {
		respondError(c, err)
		return
	}

	product, err := h.Products.Rename(ctx, pid, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) ChangeStock(c *gin.Context) {
	bid, ok := pathUUID(c, "bid")
	if !ok {
		return
	}
	pid, ok := pathUUID(c, "pid")
	if !ok {
		return
	}

	var req changeStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	token := c.GetHeader("Idempotency-Key")
	if *req.Delta != 0 && token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Idempotency-Key header is required"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if _, err := h.Products.GetByIDAndBranch(ctx, pid, bid); err != nil {
		respondError(c, err)
		return
	}

	product, err := h.Products.ApplyStockDelta(ctx, pid, *req.Delta, token)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	bid, ok := pathUUID(c, "bid")
	if !ok {
		return
	}
	pid, ok := pathUUID(c, "pid")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Products.DeleteByBranch(ctx, bid, pid); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type topProductItem struct {
	BranchID   uuid.UUID      `json:"branch_id"`
	BranchName string         `json:"branch_name"`
	Product    models.Product `json:"product"`
}

// TopProducts returns, for every branch of the franchise, the product with
// the highest stock. Branches without products are skipped. Each lookup is a
// single first-row read of the branch's rank index.
func (h *ProductHandler) TopProducts(c *gin.Context) {
	fid, ok := pathUUID(c, "fid")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if _, err := h.Franchises.GetByID(ctx, fid); err != nil {
		respondError(c, err)
		return
	}

	items := []topProductItem{}
	for branch, err := range h.Branches.StreamByFranchise(ctx, fid) {
		if err != nil {
			respondError(c, err)
			return
		}
		top, err := h.Products.TopByStock(ctx, branch.ID)
		if errors.Is(err, repositories.ErrNoProductsInBranch) {
			continue
		}
		if err != nil {
			respondError(c, err)
			return
		}
		items = append(items, topProductItem{
			BranchID:   branch.ID,
			BranchName: branch.Name,
			Product:    top,
		})
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
