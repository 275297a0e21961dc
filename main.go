package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/thepalace/palace_backend/config"
	"github.com/thepalace/palace_backend/controllers"
	"github.com/thepalace/palace_backend/middleware"
	"github.com/thepalace/palace_backend/repositories"
	"github.com/thepalace/palace_backend/routes"
	"github.com/thepalace/palace_backend/services"
	"github.com/thepalace/palace_backend/websocket"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	// Initialize Firebase
	config.InitFirebase()

	// Connect to Redis (used for revoked session tokens)
	redisClient := config.ConnectRedis()
	middleware.SetBlacklistStore(redisClient)
	go middleware.CleanupBlacklist()

	// Connect to database
	client := config.ConnectDB()

	// Identity gateway, role resolver and the process-wide session
	gateway, err := services.NewIdentityGateway(config.FirebaseApp, config.GetFirebaseWebAPIKey())
	if err != nil {
		log.Fatalf("error initializing identity gateway: %v", err)
	}

	userRepo := repositories.NewUserRepository(client)
	resolver := services.NewRoleResolver(userRepo)
	session := services.NewSessionContext(gateway, resolver, middleware.GenerateJWT)

	// Session event feed
	wsHub := websocket.NewHub()
	go wsHub.Run()

	gateway.OnSessionChange(func(identity *services.Identity) {
		if identity == nil {
			wsHub.Broadcast(websocket.SessionEvent{
				Type:    websocket.EventTypeSignedOut,
				Message: "Session ended",
			})
			return
		}
		wsHub.Broadcast(websocket.SessionEvent{
			Type:    websocket.EventTypeSignedIn,
			Message: "Session started",
			UID:     identity.UID,
			Email:   identity.Email,
		})
	})

	session.Init()
	defer session.Teardown()

	// Create a new Echo instance
	e := echo.New()

	// Initialize custom validator
	customValidator := &CustomValidator{validator: validator.New()}
	e.Validator = customValidator

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.GlobalCORS())
	e.Use(echoMiddleware.Secure())
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.SecurityHeadersWithConfig(middleware.SecurityConfig{
		AllowedDomains: []string{"https://identitytoolkit.googleapis.com"},
		AllowInlineJS:  false,
	}))

	e.Match([]string{"GET", "HEAD"}, "/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	})

	// Initialize controllers
	authController := controllers.NewAuthController(session)

	// Register routes
	routes.RegisterAuthRoutes(e, authController)
	routes.RegisterScreenRoutes(e, wsHub)
	routes.RegisterEmployeeRoutes(e, client, services.NewCartService())
	routes.RegisterAdminRoutes(e, client, gateway)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}
