package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CatalogDoc is a document keyed by a unique-by-convention name.
type CatalogDoc interface {
	DocName() string
}

// CatalogRepository defines the persistence operations shared by the
// catalog resources (projects, fabrics, blocks). One instantiation per
// resource type replaces the per-resource adapter files.
type CatalogRepository[T CatalogDoc] interface {
	List(ctx context.Context) ([]T, error)
	FindByName(ctx context.Context, name string) (T, error)
	FindByID(ctx context.Context, id string) (T, error)
	Insert(ctx context.Context, doc T) (T, error)
	Replace(ctx context.Context, doc T) (T, error)
	DeleteByID(ctx context.Context, id string) (T, error)
}

type catalogRepository[T CatalogDoc] struct {
	coll *mongo.Collection
	name string // expected collection name
}

// NewCatalogRepository builds a Mongo-backed repository bound to the named
// collection.
func NewCatalogRepository[T CatalogDoc](coll *mongo.Collection, name string) CatalogRepository[T] {
	return &catalogRepository[T]{coll: coll, name: name}
}

// guard rejects handles bound to the wrong logical collection before any
// store call is made.
func (r *catalogRepository[T]) guard() error {
	if r.coll.Name() != r.name {
		return fmt.Errorf("%w: trying to access %q, want %q", ErrWrongCollection, r.coll.Name(), r.name)
	}
	return nil
}

func (r *catalogRepository[T]) List(ctx context.Context) ([]T, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("internal mongodb error: %w", err)
	}
	var docs []T
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("internal mongodb error: %w", err)
	}
	return docs, nil
}

func (r *catalogRepository[T]) FindByName(ctx context.Context, name string) (T, error) {
	var doc T
	if err := r.guard(); err != nil {
		return doc, err
	}
	err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, ErrNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("internal mongodb error: %w", err)
	}
	return doc, nil
}

func (r *catalogRepository[T]) FindByID(ctx context.Context, id string) (T, error) {
	var doc T
	if err := r.guard(); err != nil {
		return doc, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return doc, ErrInvalidID
	}
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, ErrNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("internal mongodb error: %w", err)
	}
	return doc, nil
}

// Insert stores a new document after probing for a same-named one. The
// probe and the insert are not atomic; the collection's unique index on
// name is the guard-rail against concurrent duplicates.
func (r *catalogRepository[T]) Insert(ctx context.Context, doc T) (T, error) {
	var zero T
	if err := r.guard(); err != nil {
		return zero, err
	}
	_, err := r.FindByName(ctx, doc.DocName())
	if err == nil {
		return zero, ErrAlreadyExists
	}
	if !errors.Is(err, ErrNotFound) {
		return zero, err
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return zero, fmt.Errorf("internal mongodb error: %w", err)
	}
	return doc, nil
}

// Replace swaps the stored document with the same name for doc. Matching
// zero documents is a hard failure: the target no longer exists.
func (r *catalogRepository[T]) Replace(ctx context.Context, doc T) (T, error) {
	var zero T
	if err := r.guard(); err != nil {
		return zero, err
	}
	res, err := r.coll.ReplaceOne(ctx, bson.M{"name": doc.DocName()}, doc)
	if err != nil {
		return zero, fmt.Errorf("internal mongodb error: %w", err)
	}
	if res.MatchedCount == 0 {
		return zero, ErrNotFound
	}
	if res.ModifiedCount == 0 {
		return zero, ErrNotModified
	}
	return doc, nil
}

// DeleteByID removes the document in a single find-and-delete and returns
// the deleted document.
func (r *catalogRepository[T]) DeleteByID(ctx context.Context, id string) (T, error) {
	var doc T
	if err := r.guard(); err != nil {
		return doc, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return doc, ErrInvalidID
	}
	err = r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, ErrNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("internal mongodb error: %w", err)
	}
	return doc, nil
}
