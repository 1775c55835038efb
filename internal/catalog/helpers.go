package catalog

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseID converts a hex string into an ObjectID.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errors.New("invalid id")
	}
	return oid, nil
}
