package routes

import (
	"franchises-backend/handlers"
	"franchises-backend/middleware"
	"franchises-backend/repositories"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, limits repositories.PageLimits) {
	franchiseRepo := repositories.NewFranchiseRepository(db, limits)
	branchRepo := repositories.NewBranchRepository(db, limits)
	productRepo := repositories.NewProductRepository(db, limits)

	authHandler := &handlers.AuthHandler{DB: db}
	franchiseHandler := &handlers.FranchiseHandler{Franchises: franchiseRepo}
	branchHandler := &handlers.BranchHandler{Franchises: franchiseRepo, Branches: branchRepo}
	productHandler := &handlers.ProductHandler{
		Franchises: franchiseRepo,
		Branches:   branchRepo,
		Products:   productRepo,
	}

	v1 := r.Group("/v1")

	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)

	// Public reads
	v1.GET("/franchises", franchiseHandler.ListFranchises)
	v1.GET("/franchises/:fid", franchiseHandler.GetFranchise)
	v1.GET("/franchises/:fid/branches", branchHandler.ListBranches)
	v1.GET("/branches/:bid", branchHandler.GetBranch)
	v1.GET("/franchises/:fid/branches/top-products", productHandler.TopProducts)
	v1.GET("/franchises/:fid/products", productHandler.ListFranchiseProducts)
	v1.GET("/franchises/:fid/branches/:bid/products", productHandler.ListProducts)
	v1.GET("/franchises/:fid/branches/:bid/products/search", productHandler.SearchProducts)

	// Mutations require an authenticated admin
	admin := v1.Group("")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	admin.POST("/franchises", franchiseHandler.CreateFranchise)
	admin.PATCH("/franchises/:fid/name", franchiseHandler.RenameFranchise)
	admin.DELETE("/franchises/:fid", franchiseHandler.DeleteFranchise)

	admin.POST("/franchises/:fid/branches", branchHandler.CreateBranch)
	admin.PATCH("/franchises/:fid/branches/:bid/name", branchHandler.RenameBranch)
	admin.DELETE("/franchises/:fid/branches/:bid", branchHandler.DeleteBranch)

	admin.POST("/franchises/:fid/branches/:bid/products", productHandler.CreateProduct)
	admin.PATCH("/franchises/:fid/branches/:bid/products/:pid/name", productHandler.RenameProduct)
	admin.PATCH("/franchises/:fid/branches/:bid/products/:pid/stock", productHandler.ChangeStock)
	admin.DELETE("/franchises/:fid/branches/:bid/products/:pid", productHandler.DeleteProduct)
}
