// controllers/admin_controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/thepalace/palace_backend/config"
	"github.com/thepalace/palace_backend/models"
	"github.com/thepalace/palace_backend/services"
	"github.com/thepalace/palace_backend/utils"
)

type AdminController struct {
	DB      *mongo.Client
	Gateway *services.IdentityGateway
}

func NewAdminController(db *mongo.Client, gateway *services.IdentityGateway) *AdminController {
	return &AdminController{DB: db, Gateway: gateway}
}

// GetDashboard loads the four collections in parallel and computes the
// aggregates over the full ticket set. The join is all-or-nothing: one
// failed fetch fails the whole load, nothing partial is returned.
func (ac *AdminController) GetDashboard(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	var data models.DashboardData

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		users, err := ac.fetchUsers(gctx)
		data.Users = users
		return err
	})
	g.Go(func() error {
		roles, err := fetchRoles(gctx, ac.DB)
		data.Roles = roles
		return err
	})
	g.Go(func() error {
		products, err := fetchProducts(gctx, ac.DB)
		data.Products = products
		return err
	})
	g.Go(func() error {
		tickets, err := fetchTickets(gctx, ac.DB, bson.M{})
		data.Tickets = tickets
		return err
	})

	if err := g.Wait(); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load dashboard: " + err.Error(),
		})
	}

	for _, t := range data.Tickets {
		data.Stats.TotalSales += t.Total
		data.Stats.TotalCommissions += t.Commission
	}
	data.Stats.TicketCount = len(data.Tickets)
	for _, u := range data.Users {
		if !models.ParseRole(u.Role).IsAdmin() {
			data.Stats.EmployeeCount++
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Dashboard loaded successfully",
		Data:    data,
	})
}

// GetUsers returns every profile document, unpaginated.
func (ac *AdminController) GetUsers(c echo.Context) error {
	users, err := ac.fetchUsers(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch users: " + err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Users retrieved successfully",
		Data:    users,
	})
}

// CreateUser provisions an identity with the auth provider, then writes the
// profile document with the role name and commission copied from the chosen
// role. If the profile write fails the identity is rolled back best-effort.
func (ac *AdminController) CreateUser(c echo.Context) error {
	var req models.CreateUserRequest
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

	req.Name = utils.SanitizeInput(req.Name)
	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid email format",
		})
	}
	req.Email = email

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	// Commission and role name are snapshots: a later role change or delete
	// leaves this user untouched
	roleName := "employee"
	var commission float64
	if roleID, err := primitive.ObjectIDFromHex(req.RoleID); err == nil {
		var role models.Role
		err := config.GetCollection(ac.DB, "roles").FindOne(ctx, bson.M{"_id": roleID}).Decode(&role)
		if err == nil {
			roleName = role.Name
			commission = role.Commission
		}
	}

	uid, err := ac.Gateway.CreateIdentity(ctx, req.Email, req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create identity: " + err.Error(),
		})
	}

	user := models.User{
		UID:        uid,
		Name:       req.Name,
		Email:      req.Email,
		Role:       roleName,
		RoleID:     req.RoleID,
		Commission: commission,
		CreatedAt:  time.Now(),
	}

	result, err := config.GetCollection(ac.DB, "users").InsertOne(ctx, user)
	if err != nil {
		// Without this the identity would be orphaned with no profile
		if delErr := ac.Gateway.DeleteIdentity(ctx, uid); delErr != nil {
			c.Logger().Errorf("Identity rollback failed for %s: %v", uid, delErr)
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create user: " + err.Error(),
		})
	}

	user.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "User created successfully",
		Data:    user,
	})
}

// DeleteUser removes a profile document by ID. The backing identity is left
// in place; deleting an already-deleted profile succeeds.
func (ac *AdminController) DeleteUser(c echo.Context) error {
	return deleteByID(c, config.GetCollection(ac.DB, "users"), "User")
}

func (ac *AdminController) fetchUsers(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := config.GetCollection(ac.DB, "users").Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func fetchRoles(ctx context.Context, db *mongo.Client) ([]models.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := config.GetCollection(db, "roles").Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	roles := []models.Role{}
	if err := cursor.All(ctx, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

func fetchProducts(ctx context.Context, db *mongo.Client) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := config.GetCollection(db, "products").Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// fetchTickets returns tickets matching the filter, newest first.
func fetchTickets(ctx context.Context, db *mongo.Client, filter bson.M) ([]models.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := config.GetCollection(db, "tickets").Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tickets := []models.Ticket{}
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// deleteByID removes one document by hex ID. Zero-row deletes are tolerated
// so a repeated delete cannot break the client's reload.
func deleteByID(c echo.Context, collection *mongo.Collection, label string) error {
	id := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid ID format",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	result, err := collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete " + label + ": " + err.Error(),
		})
	}

	if result.DeletedCount == 0 {
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: label + " already removed",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: label + " deleted successfully",
	})
}
