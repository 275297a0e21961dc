// controllers/role_controller.go
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

type RoleController struct {
	DB *mongo.Client
}

func NewRoleController(db *mongo.Client) *RoleController {
	return &RoleController{DB: db}
}

// GetRoles returns every commission tier, unpaginated.
func (rc *RoleController) GetRoles(c echo.Context) error {
	roles, err := fetchRoles(c.Request().Context(), rc.DB)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch roles: " + err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Roles retrieved successfully",
		Data:    roles,
	})
}

// CreateRole inserts a new commission tier. Commission defaults to zero.
func (rc *RoleController) CreateRole(c echo.Context) error {
	var req models.CreateRoleRequest
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

	role := models.Role{
		Name:       req.Name,
		Commission: req.Commission,
		CreatedAt:  time.Now(),
	}

	result, err := config.GetCollection(rc.DB, "roles").InsertOne(ctx, role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create role: " + err.Error(),
		})
	}

	role.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Role created successfully",
		Data:    role,
	})
}

// DeleteRole removes a tier. No cascade: users keep their copied role name
// and commission, tickets keep their commission rate snapshots.
func (rc *RoleController) DeleteRole(c echo.Context) error {
	return deleteByID(c, config.GetCollection(rc.DB, "roles"), "Role")
}
