package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cs4218/cs4218-2510-ecom-project-team018-sub000/checkout"
)

// SetupRoutes is the single entry-point that wires up all route groups under
// /api/v1.
func SetupRoutes(r *gin.Engine, db *gorm.DB, svc *checkout.Service, gateway checkout.Gateway) {
	api := r.Group("/api/v1")

	// Catalog browsing + checkout
	SetupProductRoutes(api, db, svc, gateway)

	// Category browsing + admin CRUD
	SetupCategoryRoutes(api, db)

	// Order ledger consumers
	SetupOrderRoutes(api, db)

	// User profile
	SetupUserRoutes(api, db)
}
