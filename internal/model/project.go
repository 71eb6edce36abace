package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Project represents a patchwork design. It lives in the projects
// collection or embedded inside a user's projects list, in which case
// SessionID identifies the editing session it belongs to.
type Project struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string                 `bson:"name" json:"name" validate:"required"`
	Author      string                 `bson:"author" json:"author" validate:"required"`
	Layout      string                 `bson:"layout" json:"layout" validate:"required"`
	Svg         map[string]interface{} `bson:"svg" json:"svg" validate:"required"`
	Image       string                 `bson:"image" json:"image" validate:"required"`
	Description string                 `bson:"description" json:"description" validate:"required"`
	Width       int                    `bson:"width,omitempty" json:"width,omitempty"`
	Height      int                    `bson:"height,omitempty" json:"height,omitempty"`
	SessionID   string                 `bson:"sessionId,omitempty" json:"sessionId,omitempty"`
}

// DocName returns the unique-by-convention name key.
func (p Project) DocName() string { return p.Name }
