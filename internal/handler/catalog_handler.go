package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apierrors "patchwork/internal/errors"
	"patchwork/internal/repository"
)

// CatalogHandler serves the CRUD routes of one catalog resource type.
// One instantiation per resource replaces the pile of near-identical
// per-route files: the route table in the router is the only thing that
// differs between projects, fabrics and blocks.
type CatalogHandler[T repository.CatalogDoc] struct {
	label string // "project", "fabric", "block"
	title string // capitalized label for reply messages
	repo  repository.CatalogRepository[T]
	log   *zap.Logger
}

// NewCatalogHandler creates a handler for the labeled resource type.
func NewCatalogHandler[T repository.CatalogDoc](label string, repo repository.CatalogRepository[T], log *zap.Logger) *CatalogHandler[T] {
	return &CatalogHandler[T]{
		label: label,
		title: strings.ToUpper(label[:1]) + label[1:],
		repo:  repo,
		log:   log,
	}
}

// List replies with every stored document.
func (h *CatalogHandler[T]) List(c echo.Context) error {
	logEntry(h.log, c)

	docs, err := h.repo.List(c.Request().Context())
	if err != nil {
		return internalError(h.log, c, err)
	}
	if docs == nil {
		docs = []T{}
	}

	logOK(h.log, c)
	return c.JSON(http.StatusOK, docs)
}

// Get replies with the document addressed by the id path parameter.
func (h *CatalogHandler[T]) Get(c echo.Context) error {
	logEntry(h.log, c)

	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	doc, err := h.repo.FindByID(c.Request().Context(), id)
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		return replyError(h.log, c, http.StatusBadRequest,
			fmt.Sprintf("Invalid ID: %s", id), apierrors.CodeInvalidID)
	case errors.Is(err, repository.ErrNotFound):
		return replyError(h.log, c, http.StatusBadRequest,
			fmt.Sprintf("%s with id %s not found", h.title, id), apierrors.CodeNotFound)
	case err != nil:
		return internalError(h.log, c, err)
	}

	logOK(h.log, c)
	return c.JSON(http.StatusOK, doc)
}

// Save validates the payload against the resource schema and inserts it.
// A same-named document makes the insert fail.
func (h *CatalogHandler[T]) Save(c echo.Context) error {
	logEntry(h.log, c)

	doc := new(T)
	if err := c.Bind(doc); err != nil {
		return badRequestBody(h.log, c)
	}
	if err := c.Validate(doc); err != nil {
		return validationError(h.log, c, err)
	}

	saved, err := h.repo.Insert(c.Request().Context(), *doc)
	switch {
	case errors.Is(err, repository.ErrAlreadyExists):
		return replyError(h.log, c, http.StatusBadRequest,
			h.title+" already exists", apierrors.CodeAlreadyExists)
	case err != nil:
		return internalError(h.log, c, err)
	}

	logOK(h.log, c)
	return c.JSON(http.StatusOK, saved)
}

// Update validates the payload and replaces the same-named stored
// document with it. A miss is a hard failure, not an upsert.
func (h *CatalogHandler[T]) Update(c echo.Context) error {
	logEntry(h.log, c)

	doc := new(T)
	if err := c.Bind(doc); err != nil {
		return badRequestBody(h.log, c)
	}
	if err := c.Validate(doc); err != nil {
		return validationError(h.log, c, err)
	}

	updated, err := h.repo.Replace(c.Request().Context(), *doc)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return replyError(h.log, c, http.StatusBadRequest,
			h.title+" doesn't exist", apierrors.CodeNotFound)
	case errors.Is(err, repository.ErrNotModified):
		return replyError(h.log, c, http.StatusInternalServerError,
			fmt.Sprintf("None %s were replaced", h.label), apierrors.CodeInternal)
	case err != nil:
		return internalError(h.log, c, err)
	}

	logOK(h.log, c)
	return c.JSON(http.StatusOK, updated)
}

// Delete removes the document addressed by the id path parameter and
// echoes the deleted document back.
func (h *CatalogHandler[T]) Delete(c echo.Context) error {
	logEntry(h.log, c)

	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	deleted, err := h.repo.DeleteByID(c.Request().Context(), id)
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		return replyError(h.log, c, http.StatusBadRequest,
			fmt.Sprintf("Invalid ID: %s", id), apierrors.CodeInvalidID)
	case errors.Is(err, repository.ErrNotFound):
		return replyError(h.log, c, http.StatusBadRequest,
			fmt.Sprintf("None %s with id %s found", h.label, id), apierrors.CodeNotFound)
	case err != nil:
		return internalError(h.log, c, err)
	}

	logOK(h.log, c)
	return c.JSON(http.StatusOK, deleted)
}
