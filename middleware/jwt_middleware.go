// middleware/jwt_middleware.go
package middleware

import (
	"context"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// JwtCustomClaims for the session token
type JwtCustomClaims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.StandardClaims
}

// Valid implements the Claims interface for Echo's JWT middleware
func (c JwtCustomClaims) Valid() error {
	if c.ExpiresAt > 0 && time.Now().Unix() > c.ExpiresAt {
		return errors.New("token is expired")
	}
	if c.NotBefore > 0 && time.Now().Unix() < c.NotBefore {
		return errors.New("token used before valid")
	}
	return nil
}

const blacklistKeyPrefix = "palace:revoked:"

// Sign-out must always succeed locally, so revocation is written to Redis
// when available and kept in process memory otherwise.
var (
	blacklistRedis *redis.Client
	blacklistMu    sync.RWMutex
	blacklistMem   = make(map[string]time.Time)
)

// SetBlacklistStore wires the Redis client used for revoked tokens. A nil
// client keeps the in-memory fallback.
func SetBlacklistStore(client *redis.Client) {
	blacklistRedis = client
}

// BlacklistToken marks a session token as revoked until expiry
func BlacklistToken(token string, expiry time.Time) {
	ttl := time.Until(expiry)
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	if blacklistRedis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := blacklistRedis.Set(ctx, blacklistKeyPrefix+token, "1", ttl).Err(); err == nil {
			return
		}
		log.Printf("Warning: failed to store revoked token in Redis, using memory")
	}

	blacklistMu.Lock()
	blacklistMem[token] = time.Now().Add(ttl)
	blacklistMu.Unlock()
}

// IsTokenBlacklisted checks if a token has been revoked
func IsTokenBlacklisted(token string) bool {
	if blacklistRedis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		n, err := blacklistRedis.Exists(ctx, blacklistKeyPrefix+token).Result()
		if err == nil && n > 0 {
			return true
		}
	}

	blacklistMu.RLock()
	expiry, exists := blacklistMem[token]
	blacklistMu.RUnlock()
	return exists && time.Now().Before(expiry)
}

// CleanupBlacklist periodically removes expired tokens from the in-memory
// fallback map. Redis entries expire on their own.
func CleanupBlacklist() {
	for {
		time.Sleep(1 * time.Hour)
		now := time.Now()
		blacklistMu.Lock()
		for token, expiry := range blacklistMem {
			if now.After(expiry) {
				delete(blacklistMem, token)
			}
		}
		blacklistMu.Unlock()
	}
}

// GetJWTSecret returns the JWT secret from environment variables
func GetJWTSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		panic("JWT_SECRET environment variable is required")
	}
	return secret
}

// JWTMiddleware returns a configured JWT middleware
func JWTMiddleware() echo.MiddlewareFunc {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Printf("Warning: JWT_SECRET environment variable is not set")
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				return echo.NewHTTPError(echo.ErrUnauthorized.Code, "JWT configuration error")
			}
		}
	}

	return middleware.JWTWithConfig(middleware.JWTConfig{
		// Parsing and the revocation check both happen here so a rejected
		// token short-circuits the chain before the handler runs
		ParseTokenFunc: func(auth string, c echo.Context) (interface{}, error) {
			if IsTokenBlacklisted(auth) {
				return nil, errors.New("token has been invalidated")
			}

			claims := &JwtCustomClaims{}
			token, err := jwt.ParseWithClaims(auth, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(secret), nil
			})
			if err != nil {
				return nil, err
			}
			if !token.Valid {
				return nil, errors.New("invalid token")
			}
			return token, nil
		},
		SuccessHandler: func(c echo.Context) {
			user := c.Get("user").(*jwt.Token)
			claims := user.Claims.(*JwtCustomClaims)

			c.Set("uid", claims.UID)
			c.Set("email", claims.Email)
			c.Set("role", claims.Role)
		},
		ErrorHandler: func(err error) error {
			log.Printf("JWT middleware error: %v", err)
			return echo.NewHTTPError(echo.ErrUnauthorized.Code, "Invalid or expired token")
		},
	})
}

// GenerateJWT generates a session token for an authenticated identity
func GenerateJWT(uid, email, role string) (string, error) {
	claims := &JwtCustomClaims{
		UID:   uid,
		Email: email,
		Role:  role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET environment variable is required")
	}

	return token.SignedString([]byte(secret))
}

// GetUserFromToken extracts session claims from the request context
func GetUserFromToken(c echo.Context) *JwtCustomClaims {
	user := c.Get("user")
	if user == nil {
		return nil
	}

	token, ok := user.(*jwt.Token)
	if !ok {
		return nil
	}

	claims, ok := token.Claims.(*JwtCustomClaims)
	if !ok {
		return nil
	}

	return claims
}
