// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"oilbook/internal/infrastructure/http/v1/middleware"
)

// CatalogRouteHandler defines the interface for catalog handlers.
// All catalog handlers must implement these methods.
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	SetActive(c *gin.Context)
}

// RegisterCatalogRoutes registers standard CRUD routes for a catalog.
// Reads need readCap, writes need writeCap. Catalogs never expose a
// DELETE: rows are deactivated, history keeps referencing them.
//
// Usage:
//
//	handler := handlers.NewSupplierHandler(baseHandler, service)
//	RegisterCatalogRoutes(catalogs.Group("/suppliers"), handler, auth.CapReportsView, auth.CapMasterData)
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler, readCap, writeCap string) {
	group.GET("", middleware.RequireCapability(readCap), handler.List)
	group.POST("", middleware.RequireCapability(writeCap), handler.Create)
	group.GET("/:id", middleware.RequireCapability(readCap), handler.Get)
	group.PUT("/:id", middleware.RequireCapability(writeCap), handler.Update)
	group.POST("/:id/active", middleware.RequireCapability(writeCap), handler.SetActive)
}
