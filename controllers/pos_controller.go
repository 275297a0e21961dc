// controllers/pos_controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thepalace/palace_backend/config"
	"github.com/thepalace/palace_backend/middleware"
	"github.com/thepalace/palace_backend/models"
	"github.com/thepalace/palace_backend/repositories"
	"github.com/thepalace/palace_backend/services"
)

type POSController struct {
	DB    *mongo.Client
	Carts *services.CartService
	Users *repositories.UserRepository
}

func NewPOSController(db *mongo.Client, carts *services.CartService, users *repositories.UserRepository) *POSController {
	return &POSController{DB: db, Carts: carts, Users: users}
}

// cartSummary is the cart plus its running totals, recomputed on every
// change from the employee's commission snapshot.
type cartSummary struct {
	Items      []models.TicketItem `json:"items"`
	Total      float64             `json:"total"`
	Commission float64             `json:"commission"`
}

// GetOverview returns everything the sales screen renders: the catalog, the
// employee's profile and their ticket history with the commission earned.
func (pc *POSController) GetOverview(c echo.Context) error {
	claims := middleware.GetUserFromToken(c)
	ctx := c.Request().Context()

	products, err := fetchProducts(ctx, pc.DB)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch products: " + err.Error(),
		})
	}

	user, err := pc.Users.FindByUID(ctx, claims.UID)
	if err != nil && err != mongo.ErrNoDocuments {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch profile: " + err.Error(),
		})
	}

	tickets, err := fetchTickets(ctx, pc.DB, bson.M{"userId": claims.UID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch tickets: " + err.Error(),
		})
	}

	var totalCommission float64
	for _, t := range tickets {
		totalCommission += t.Commission
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Overview loaded successfully",
		Data: map[string]interface{}{
			"products":        products,
			"profile":         user,
			"tickets":         tickets,
			"totalCommission": totalCommission,
		},
	})
}

// GetCart returns the in-memory cart with its totals.
func (pc *POSController) GetCart(c echo.Context) error {
	claims := middleware.GetUserFromToken(c)
	items := pc.Carts.Get(claims.UID)
	return pc.cartResponse(c, items)
}

// AddToCart puts one unit of a product in the cart; adding an existing
// product increments its quantity.
func (pc *POSController) AddToCart(c echo.Context) error {
	claims := middleware.GetUserFromToken(c)

	var req struct {
		ProductID string `json:"productId"`
	}
	if err := c.Bind(&req); err != nil || req.ProductID == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Product ID is required",
		})
	}

	objID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid product ID format",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	err = config.GetCollection(pc.DB, "products").FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Product not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch product: " + err.Error(),
		})
	}

	items := pc.Carts.Add(claims.UID, product)
	return pc.cartResponse(c, items)
}

// UpdateCartItem sets a line's quantity; zero or less removes the line.
func (pc *POSController) UpdateCartItem(c echo.Context) error {
	claims := middleware.GetUserFromToken(c)
	productID := c.Param("productId")

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	items := pc.Carts.SetQuantity(claims.UID, productID, req.Quantity)
	return pc.cartResponse(c, items)
}

// RemoveCartItem deletes a line from the cart.
func (pc *POSController) RemoveCartItem(c echo.Context) error {
	claims := middleware.GetUserFromToken(c)
	items := pc.Carts.Remove(claims.UID, c.Param("productId"))
	return pc.cartResponse(c, items)
}

// ValidateTicket persists the cart as one immutable ticket and clears it.
// An empty cart is rejected with nothing persisted. The items, total and
// commission rate are all snapshots of sale time.
func (pc *POSController) ValidateTicket(c echo.Context) error {
	claims := middleware.GetUserFromToken(c)

	items := pc.Carts.Get(claims.UID)
	if len(items) == 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Cart is empty",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	userName := "Unknown"
	userEmail := claims.Email
	var rate float64
	user, err := pc.Users.FindByUID(ctx, claims.UID)
	if err == nil && user != nil {
		userName = user.Name
		userEmail = user.Email
		rate = user.Commission
	}

	total := services.CartTotal(items)
	commission := services.CommissionFor(total, rate)

	ticket := models.Ticket{
		Reference:      uuid.NewString(),
		UserID:         claims.UID,
		UserName:       userName,
		UserEmail:      userEmail,
		Items:          items,
		Total:          total,
		Commission:     commission,
		CommissionRate: rate,
		CreatedAt:      time.Now(),
	}

	result, err := config.GetCollection(pc.DB, "tickets").InsertOne(ctx, ticket)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create ticket: " + err.Error(),
		})
	}

	ticket.ID = result.InsertedID.(primitive.ObjectID)
	pc.Carts.Clear(claims.UID)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Ticket created successfully",
		Data:    ticket,
	})
}

func (pc *POSController) cartResponse(c echo.Context, items []models.TicketItem) error {
	claims := middleware.GetUserFromToken(c)

	var rate float64
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()
	if user, err := pc.Users.FindByUID(ctx, claims.UID); err == nil && user != nil {
		rate = user.Commission
	}

	total := services.CartTotal(items)
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Cart state",
		Data: cartSummary{
			Items:      items,
			Total:      total,
			Commission: services.CommissionFor(total, rate),
		},
	})
}
