package services

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gkharab/projecthub-api/internal/apperrors"
)

// parseID converts a hex path parameter into an ObjectID. An id that cannot
// be parsed cannot exist, so it resolves to NotFound for the resource.
func parseID(resource, hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, apperrors.NotFound(resource, "id", hex)
	}
	return id, nil
}
