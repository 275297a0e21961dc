// controllers/product_controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thepalace/palace_backend/config"
	"github.com/thepalace/palace_backend/models"
)

type ProductController struct {
	DB *mongo.Client
}

func NewProductController(db *mongo.Client) *ProductController {
	return &ProductController{DB: db}
}

// GetProducts returns the whole catalog, unpaginated.
func (pc *ProductController) GetProducts(c echo.Context) error {
	products, err := fetchProducts(c.Request().Context(), pc.DB)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch products: " + err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Products retrieved successfully",
		Data:    products,
	})
}

// CreateProduct inserts a catalog entry.
func (pc *ProductController) CreateProduct(c echo.Context) error {
	var req models.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Missing required fields: " + err.Error(),
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	product := models.Product{
		Name:      req.Name,
		Price:     req.Price,
		CreatedAt: time.Now(),
	}

	result, err := config.GetCollection(pc.DB, "products").InsertOne(ctx, product)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create product: " + err.Error(),
		})
	}

	product.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Product created successfully",
		Data:    product,
	})
}

// DeleteProduct removes a catalog entry. Tickets keep their item snapshots.
func (pc *ProductController) DeleteProduct(c echo.Context) error {
	return deleteByID(c, config.GetCollection(pc.DB, "products"), "Product")
}
