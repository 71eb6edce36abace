package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// User represents a registered user with an optional list of embedded
// patchwork projects, one per editing session.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Email       string             `bson:"email" json:"email" validate:"required,email"`
	Password    string             `bson:"password,omitempty" json:"-"` // Never expose in JSON
	Admin       bool               `bson:"admin" json:"admin"`
	LastSession string             `bson:"lastSession,omitempty" json:"lastSession,omitempty"`
	Projects    []Project          `bson:"projects,omitempty" json:"projects,omitempty"`
}
