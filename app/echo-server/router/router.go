package router

import (
	"solestride/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)
	users.POST("/forgot-password", handler.ForgotPassword)
	users.POST("/reset-password", handler.ResetPassword)

	users.POST("/logout", handler.Logout, authRequired)
	users.GET("/profile", handler.GetProfile, authRequired)
	users.PUT("/profile", handler.UpdateProfile, authRequired)
	users.GET("/cart", handler.GetCart, authRequired)
	users.PUT("/cart", handler.UpdateCart, authRequired)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, adminAuth echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/:id", handler.GetProductByID)

	products.POST("", handler.CreateProduct, adminAuth, adminOnly)
	products.PUT("/:id", handler.UpdateProduct, adminAuth, adminOnly)
	products.DELETE("/:id", handler.DeleteProduct, adminAuth, adminOnly)
}

func SetupOrdersRoutes(api *echo.Group, handler *rest.OrdersHandler, authRequired echo.MiddlewareFunc, adminAuth echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	orders := api.Group("/orders", authRequired)
	orders.POST("", handler.PlaceOrder)
	orders.GET("", handler.GetMyOrders)
	orders.GET("/:id", handler.GetOrderByID)
	orders.PUT("/:id/details", handler.UpdateDetails)
	orders.POST("/:id/received", handler.ConfirmReceived)
	orders.POST("/:id/cancel", handler.CancelOrder)

	adminOrders := api.Group("/admin/orders", adminAuth, adminOnly)
	adminOrders.GET("", handler.GetAllOrders)
	adminOrders.GET("/:id", handler.GetOrderByID)
	adminOrders.PUT("/:id/status", handler.UpdateStatus)
}

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, optionalAuth echo.MiddlewareFunc) {
	reco := api.Group("/products/recommendations", optionalAuth)
	reco.GET("", handler.Recommend)
}

func SetupAdminRoutes(api *echo.Group, handler *rest.AdminHandler, adminAuth echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc, ownerOnly echo.MiddlewareFunc) {
	admins := api.Group("/admins")

	admins.POST("/login", handler.Login)

	admins.POST("", handler.CreateAdmin, adminAuth, ownerOnly)
	admins.GET("", handler.GetAllAdmins, adminAuth, adminOnly)
	admins.GET("/:id", handler.GetAdmin, adminAuth, adminOnly)
	admins.PUT("/:id", handler.UpdateAdmin, adminAuth, adminOnly)
	admins.DELETE("/:id", handler.DeleteAdmin, adminAuth, ownerOnly)
}

func SetupDashboardRoutes(api *echo.Group, handler *rest.DashboardHandler, adminAuth echo.MiddlewareFunc, ownerOnly echo.MiddlewareFunc) {
	dashboard := api.Group("/dashboard", adminAuth, ownerOnly)

	dashboard.GET("/today", handler.TodaySummary)
	dashboard.GET("/sales", handler.SalesPerformance)
	dashboard.GET("/orders", handler.OrderPerformance)
	dashboard.GET("/top-brands", handler.TopSellingBrands)
	dashboard.GET("/status-distribution", handler.StatusDistribution)
	dashboard.GET("/payment-methods", handler.PaymentMethods)
}
