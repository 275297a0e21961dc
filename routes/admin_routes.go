package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thepalace/palace_backend/controllers"
	"github.com/thepalace/palace_backend/middleware"
	"github.com/thepalace/palace_backend/models"
	"github.com/thepalace/palace_backend/services"
)

// RegisterAdminRoutes sets up all back-office routes
func RegisterAdminRoutes(e *echo.Echo, db *mongo.Client, gateway *services.IdentityGateway) {
	adminController := controllers.NewAdminController(db, gateway)
	roleController := controllers.NewRoleController(db)
	productController := controllers.NewProductController(db)
	ticketController := controllers.NewTicketController(db)

	// Protected routes (require an admin session)
	admin := e.Group("/api/admin")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.RequireRole(models.RoleAdmin))

	admin.GET("/dashboard", adminController.GetDashboard)

	// User management
	admin.GET("/users", adminController.GetUsers)
	admin.POST("/users", adminController.CreateUser)
	admin.DELETE("/users/:id", adminController.DeleteUser)

	// Commission tiers
	admin.GET("/roles", roleController.GetRoles)
	admin.POST("/roles", roleController.CreateRole)
	admin.DELETE("/roles/:id", roleController.DeleteRole)

	// Catalog
	admin.GET("/products", productController.GetProducts)
	admin.POST("/products", productController.CreateProduct)
	admin.DELETE("/products/:id", productController.DeleteProduct)

	// Ticket ledger
	admin.GET("/tickets", ticketController.GetAllTickets)
	admin.DELETE("/tickets/:id", ticketController.DeleteTicket)
	admin.GET("/tickets/:id/qrcode", ticketController.GetTicketQRCode)
	admin.GET("/tickets/:id/qrcode/base64", ticketController.GetTicketQRCodeBase64)
}
