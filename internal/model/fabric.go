package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Fabric represents a real patchwork fabric sold by a company.
type Fabric struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Company     string             `bson:"company" json:"company" validate:"required"`
	Image       string             `bson:"image" json:"image" validate:"required"`
	Description string             `bson:"description" json:"description" validate:"required"`
	Colors      []string           `bson:"colors,omitempty" json:"colors,omitempty"`
}

// DocName returns the unique-by-convention name key.
func (f Fabric) DocName() string { return f.Name }
