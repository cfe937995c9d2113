package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gkharab/projecthub-api/internal/models"
	"github.com/gkharab/projecthub-api/internal/repository"
	"github.com/gkharab/projecthub-api/internal/utils"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const contextKeyActor ContextKey = "actor"

// AuthMiddleware handles JWT authentication and stashes the acting user in
// the request context
type AuthMiddleware struct {
	jwtSecret []byte
	users     repository.UserRepository
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(secret []byte, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{jwtSecret: secret, users: users}
}

// JWTAuth verifies the bearer token, loads the acting user and enforces the
// route's required permission. An empty requiredPermission means the route
// only needs authentication; fine-grained per-resource checks happen in the
// services with the actor passed explicitly.
func (m *AuthMiddleware) JWTAuth(next http.HandlerFunc, requiredPermission string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Missing authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims")
			return
		}

		userIDHex, ok := claims["user_id"].(string)
		if !ok {
			utils.RespondWithError(w, http.StatusUnauthorized, "User ID claim missing or invalid")
			return
		}
		userID, err := primitive.ObjectIDFromHex(userIDHex)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid user ID format in token")
			return
		}

		// The role is re-read from storage on every request so revoked or
		// reassigned roles take effect immediately, not at token expiry.
		actor, err := m.users.FindByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				utils.RespondWithError(w, http.StatusUnauthorized, "Account no longer exists")
				return
			}
			utils.RespondWithError(w, http.StatusInternalServerError, "An unexpected error occurred")
			return
		}

		if requiredPermission != "" && !actor.Role.HasAuthority(requiredPermission) {
			utils.RespondWithError(w, http.StatusForbidden, "You do not have sufficient permissions to access this resource")
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyActor, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// GetActor retrieves the authenticated user from the request's context
func GetActor(r *http.Request) (*models.User, error) {
	actor, ok := r.Context().Value(contextKeyActor).(*models.User)
	if !ok || actor == nil {
		return nil, fmt.Errorf("authentication context not found in request")
	}
	return actor, nil
}
