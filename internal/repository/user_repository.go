package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"patchwork/internal/model"
)

const usersCollection = "users"

// UserRepository defines persistence operations on users and on the
// projects embedded in them. Embedded projects are addressed by owner
// email plus session id and updated by targeted set operations, never by
// full-document replace.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Insert(ctx context.Context, user *model.User) (*model.User, error)
	DeleteByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateLastSession(ctx context.Context, email, lastSession string) error
	AppendProject(ctx context.Context, email string, project model.Project) error
	FindProjectBySession(ctx context.Context, email, sessionID string) (*model.Project, error)
	UpdateProjectSvg(ctx context.Context, email, sessionID string, svg map[string]interface{}) error
	DeleteProjectBySession(ctx context.Context, email, sessionID string) (*model.Project, error)
}

type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository builds a Mongo-backed user repository.
func NewUserRepository(coll *mongo.Collection) UserRepository {
	return &userRepository{coll: coll}
}

func (r *userRepository) guard() error {
	if r.coll.Name() != usersCollection {
		return fmt.Errorf("%w: trying to access %q, want %q", ErrWrongCollection, r.coll.Name(), usersCollection)
	}
	return nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	var user model.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("internal mongodb error: %w", err)
	}
	return &user, nil
}

// Insert stores a new user after probing for the email. Check-then-act;
// the unique index on email closes the race.
func (r *userRepository) Insert(ctx context.Context, user *model.User) (*model.User, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	_, err := r.FindByEmail(ctx, user.Email)
	if err == nil {
		return nil, ErrAlreadyExists
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return nil, fmt.Errorf("internal mongodb error: %w", err)
	}
	return user, nil
}

func (r *userRepository) DeleteByEmail(ctx context.Context, email string) (*model.User, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	var user model.User
	err := r.coll.FindOneAndDelete(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("internal mongodb error: %w", err)
	}
	return &user, nil
}

func (r *userRepository) UpdateLastSession(ctx context.Context, email, lastSession string) error {
	if err := r.guard(); err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"email": email},
		bson.M{"$set": bson.M{"lastSession": lastSession}})
	if err != nil {
		return fmt.Errorf("internal mongodb error: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) AppendProject(ctx context.Context, email string, project model.Project) error {
	if err := r.guard(); err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"email": email},
		bson.M{"$push": bson.M{"projects": project}})
	if err != nil {
		return fmt.Errorf("internal mongodb error: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) FindProjectBySession(ctx context.Context, email, sessionID string) (*model.Project, error) {
	user, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	for i := range user.Projects {
		if user.Projects[i].SessionID == sessionID {
			return &user.Projects[i], nil
		}
	}
	return nil, ErrNotFound
}

// UpdateProjectSvg replaces the svg of the one embedded project matching
// the session id, using the positional operator.
func (r *userRepository) UpdateProjectSvg(ctx context.Context, email, sessionID string, svg map[string]interface{}) error {
	if err := r.guard(); err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"email": email, "projects.sessionId": sessionID},
		bson.M{"$set": bson.M{"projects.$.svg": svg}})
	if err != nil {
		return fmt.Errorf("internal mongodb error: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProjectBySession removes the embedded project matching the session
// id and returns it.
func (r *userRepository) DeleteProjectBySession(ctx context.Context, email, sessionID string) (*model.Project, error) {
	project, err := r.FindProjectBySession(ctx, email, sessionID)
	if err != nil {
		return nil, err
	}
	_, err = r.coll.UpdateOne(ctx, bson.M{"email": email},
		bson.M{"$pull": bson.M{"projects": bson.M{"sessionId": sessionID}}})
	if err != nil {
		return nil, fmt.Errorf("internal mongodb error: %w", err)
	}
	return project, nil
}
