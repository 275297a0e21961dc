package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thepalace/palace_backend/controllers"
	"github.com/thepalace/palace_backend/middleware"
	"github.com/thepalace/palace_backend/repositories"
	"github.com/thepalace/palace_backend/services"
)

// RegisterEmployeeRoutes sets up the point-of-sale routes. Any authenticated
// role may use them; the sales screen is not admin-only.
func RegisterEmployeeRoutes(e *echo.Echo, db *mongo.Client, carts *services.CartService) {
	userRepo := repositories.NewUserRepository(db)
	posController := controllers.NewPOSController(db, carts, userRepo)
	ticketController := controllers.NewTicketController(db)

	employee := e.Group("/api/employee")
	employee.Use(middleware.JWTMiddleware())

	employee.GET("/overview", posController.GetOverview)

	// Cart
	employee.GET("/cart", posController.GetCart)
	employee.POST("/cart/items", posController.AddToCart)
	employee.PUT("/cart/items/:productId", posController.UpdateCartItem)
	employee.DELETE("/cart/items/:productId", posController.RemoveCartItem)

	// Ticket validation and history
	employee.POST("/tickets", posController.ValidateTicket)
	employee.GET("/tickets", ticketController.GetMyTickets)
	employee.DELETE("/tickets/:id", ticketController.DeleteMyTicket)
	employee.GET("/tickets/:id/qrcode", ticketController.GetMyTicketQRCode)
	employee.GET("/tickets/:id/qrcode/base64", ticketController.GetMyTicketQRCodeBase64)
}
