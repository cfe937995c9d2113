package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/gkharab/projecthub-api/internal/apperrors"
	"github.com/gkharab/projecthub-api/internal/models"
)

// HashPassword hashes a plain-text password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a plain-text password with a hashed password
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateToken generates a new JWT token for the user
func GenerateToken(userID primitive.ObjectID, email string, role models.Role, secretKey []byte) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.Hex(),
		"email":   email,
		"role":    string(role),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
		"iss":     "projecthub-api",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// NewValidator builds the request validator with the custom due-date rule.
// "todayorfuture" accepts a time.Time that is today or later in local time.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("todayorfuture", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return !t.Before(today)
	})
	return v
}

// ValidationMessages flattens a validator error into per-field messages
func ValidationMessages(err error) []string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	messages := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		messages = append(messages, fieldError.Field()+": failed on '"+fieldError.Tag()+"' validation")
	}
	return messages
}

// RespondWithError sends a JSON error response
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, map[string]interface{}{"error": true, "message": message})
}

// RespondWithValidationError sends a 400 with per-field messages
func RespondWithValidationError(w http.ResponseWriter, err error) {
	RespondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":   true,
		"message": "Validation error",
		"errors":  ValidationMessages(err),
	})
}

// RespondWithAppError maps a service-layer error kind to its transport
// status. Unknown errors are logged with full detail and surfaced as a
// generic 500.
func RespondWithAppError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.IsNotFound(err):
		RespondWithError(w, http.StatusNotFound, err.Error())
	case apperrors.IsAccessDenied(err):
		RespondWithError(w, http.StatusForbidden, err.Error())
	case apperrors.IsConflict(err):
		RespondWithError(w, http.StatusConflict, err.Error())
	case apperrors.IsUnauthenticated(err):
		RespondWithError(w, http.StatusUnauthorized, err.Error())
	case apperrors.IsValidation(err):
		var validationErr *apperrors.ValidationError
		if errors.As(err, &validationErr) {
			RespondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":   true,
				"message": "Validation error",
				"errors":  validationErr.Errors,
			})
			return
		}
		RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		logrus.WithError(err).Error("Unhandled error")
		RespondWithError(w, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// RespondWithJSON sends a JSON response
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Error marshalling JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
