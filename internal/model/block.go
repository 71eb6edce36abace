package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Block represents a reusable patchwork block design.
type Block struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string                 `bson:"name" json:"name" validate:"required"`
	Svg         map[string]interface{} `bson:"svg" json:"svg" validate:"required"`
	Image       string                 `bson:"image" json:"image" validate:"required"`
	Description string                 `bson:"description" json:"description" validate:"required"`
	BlockStyle  string                 `bson:"blockStyle" json:"blockStyle" validate:"required"`
}

// DocName returns the unique-by-convention name key.
func (b Block) DocName() string { return b.Name }
