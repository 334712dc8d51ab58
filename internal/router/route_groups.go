package router

import (
	"streetbite_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupPublicRoutes sets up the storefront routes. None of them require a session.
func SetupPublicRoutes(group *gin.RouterGroup, publicHandler *handlers.PublicHandler) {
	group.GET("/", publicHandler.Landing)
	group.GET("/menu", publicHandler.Menu)
	group.GET("/order-choice", publicHandler.OrderChoice)
	group.POST("/create-order", publicHandler.CreateOrder)
	group.GET("/order-success/:id", publicHandler.OrderSuccess)
}

// SetupAuthRoutes sets up login/logout and the gated profile route.
func SetupAuthRoutes(authRoutes *gin.RouterGroup, authHandler *handlers.AuthHandler, requireAdmin gin.HandlerFunc) {
	authRoutes.POST("/login", authHandler.LoginUser)
	authRoutes.POST("/logout", authHandler.LogoutUser)

	authRequiredRoutes := authRoutes.Group("")
	authRequiredRoutes.Use(requireAdmin)
	{
		authRequiredRoutes.GET("/me", authHandler.GetCurrentUser)
	}
}

// SetupCategoryRoutes sets up the category routes.
func SetupCategoryRoutes(adminGroup *gin.RouterGroup, catalogHandler *handlers.CatalogHandler) {
	categoryRoutes := adminGroup.Group("/categories")
	{
		categoryRoutes.GET("", catalogHandler.GetCategories)
		categoryRoutes.POST("", catalogHandler.CreateCategory)
		categoryRoutes.PUT("/:id", catalogHandler.UpdateCategory)
		categoryRoutes.DELETE("/:id", catalogHandler.DeleteCategory)
	}
}

// SetupItemRoutes sets up the menu item routes.
func SetupItemRoutes(adminGroup *gin.RouterGroup, catalogHandler *handlers.CatalogHandler) {
	itemRoutes := adminGroup.Group("/items")
	{
		itemRoutes.GET("", catalogHandler.GetItems)
		itemRoutes.POST("", catalogHandler.CreateItem)
		itemRoutes.GET("/:id", catalogHandler.GetItemByID)
		itemRoutes.PUT("/:id", catalogHandler.UpdateItem)
		itemRoutes.DELETE("/:id", catalogHandler.DeleteItem)
	}
}

// SetupSettingsRoutes sets up the settings routes.
func SetupSettingsRoutes(adminGroup *gin.RouterGroup, settingHandler *handlers.SettingHandler) {
	settingsRoutes := adminGroup.Group("/settings")
	{
		settingsRoutes.GET("", settingHandler.GetSettings)
		settingsRoutes.PUT("", settingHandler.UpdateSettings)
		settingsRoutes.PUT("/shop-status", settingHandler.SetShopStatus)
	}
}

// SetupOrderRoutes sets up the order routes.
func SetupOrderRoutes(adminGroup *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orderRoutes := adminGroup.Group("/orders")
	{
		orderRoutes.GET("", orderHandler.GetOrders)
		orderRoutes.GET("/:id", orderHandler.GetOrderByID)
		orderRoutes.PATCH("/:id/status", orderHandler.UpdateOrderStatus)
		orderRoutes.DELETE("/:id", orderHandler.DeleteOrder)
	}
}
