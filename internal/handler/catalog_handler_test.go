package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"patchwork/internal/model"
	"patchwork/internal/repository"
)

type testValidator struct {
	v *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.v.Struct(i)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{v: validator.New()}
	return e
}

// serve runs a handler func through echo's error handling so the recorder
// sees the same status and body a client would.
func serve(e *echo.Echo, c echo.Context, h echo.HandlerFunc) {
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
}

// MockFabricRepository is a mock implementation of CatalogRepository[model.Fabric].
type MockFabricRepository struct {
	mock.Mock
}

func (m *MockFabricRepository) List(ctx context.Context) ([]model.Fabric, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Fabric), args.Error(1)
}

func (m *MockFabricRepository) FindByName(ctx context.Context, name string) (model.Fabric, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(model.Fabric), args.Error(1)
}

func (m *MockFabricRepository) FindByID(ctx context.Context, id string) (model.Fabric, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Fabric), args.Error(1)
}

func (m *MockFabricRepository) Insert(ctx context.Context, doc model.Fabric) (model.Fabric, error) {
	args := m.Called(ctx, doc)
	return args.Get(0).(model.Fabric), args.Error(1)
}

func (m *MockFabricRepository) Replace(ctx context.Context, doc model.Fabric) (model.Fabric, error) {
	args := m.Called(ctx, doc)
	return args.Get(0).(model.Fabric), args.Error(1)
}

func (m *MockFabricRepository) DeleteByID(ctx context.Context, id string) (model.Fabric, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Fabric), args.Error(1)
}

func fabricPayload() string {
	return `{"name":"Flower Dots","company":"Moda","image":"dots.png","description":"White dots on blue","colors":["blue","white"]}`
}

func TestCatalogHandler_List(t *testing.T) {
	repo := new(MockFabricRepository)
	repo.On("List", mock.Anything).Return([]model.Fabric{
		{Name: "Flower Dots", Company: "Moda"},
		{Name: "Solid Red", Company: "Kona"},
	}, nil)

	h := NewCatalogHandler[model.Fabric]("fabric", repo, zap.NewNop())
	e := newEcho()

	req := httptest.NewRequest(http.MethodGet, "/fabrics", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	serve(e, c, h.List)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Flower Dots")
	assert.Contains(t, rec.Body.String(), "Solid Red")
	repo.AssertExpectations(t)
}

func TestCatalogHandler_Get(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		repoErr    error
		wantStatus int
		wantBody   string
	}{
		{name: "invalid id", id: "123", repoErr: repository.ErrInvalidID, wantStatus: http.StatusBadRequest, wantBody: "Invalid ID: 123"},
		{name: "not found", id: "ffffffffffffffffffffffff", repoErr: repository.ErrNotFound, wantStatus: http.StatusBadRequest, wantBody: "Fabric with id ffffffffffffffffffffffff not found"},
		{name: "found", id: "ffffffffffffffffffffffff", wantStatus: http.StatusOK, wantBody: "Flower Dots"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockFabricRepository)
			repo.On("FindByID", mock.Anything, tt.id).Return(model.Fabric{Name: "Flower Dots"}, tt.repoErr)

			h := NewCatalogHandler[model.Fabric]("fabric", repo, zap.NewNop())
			e := newEcho()

			req := httptest.NewRequest(http.MethodGet, "/fabrics/"+tt.id, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues(tt.id)
			serve(e, c, h.Get)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestCatalogHandler_Save(t *testing.T) {
	t.Run("inserts a valid fabric", func(t *testing.T) {
		repo := new(MockFabricRepository)
		repo.On("Insert", mock.Anything, mock.Anything).Return(model.Fabric{Name: "Flower Dots"}, nil)

		h := NewCatalogHandler[model.Fabric]("fabric", repo, zap.NewNop())
		e := newEcho()

		req := httptest.NewRequest(http.MethodPost, "/fabric/save", strings.NewReader(fabricPayload()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		serve(e, c, h.Save)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Flower Dots")
		repo.AssertExpectations(t)
	})

	t.Run("rejects a duplicate name", func(t *testing.T) {
		repo := new(MockFabricRepository)
		repo.On("Insert", mock.Anything, mock.Anything).Return(model.Fabric{}, repository.ErrAlreadyExists)

		h := NewCatalogHandler[model.Fabric]("fabric", repo, zap.NewNop())
		e := newEcho()

		req := httptest.NewRequest(http.MethodPost, "/fabric/save", strings.NewReader(fabricPayload()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		serve(e, c, h.Save)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Fabric already exists")
	})

	t.Run("rejects a payload missing required fields", func(t *testing.T) {
		repo := new(MockFabricRepository)

		h := NewCatalogHandler[model.Fabric]("fabric", repo, zap.NewNop())
		e := newEcho()

		req := httptest.NewRequest(http.MethodPost, "/fabric/save", strings.NewReader(`{"name":"Flower Dots"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		serve(e, c, h.Save)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Schema Validation Error")
		repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})
}

func TestCatalogHandler_Update(t *testing.T) {
	t.Run("replace miss is a hard failure", func(t *testing.T) {
		repo := new(MockFabricRepository)
		repo.On("Replace", mock.Anything, mock.Anything).Return(model.Fabric{}, repository.ErrNotFound)

		h := NewCatalogHandler[model.Fabric]("fabric", repo, zap.NewNop())
		e := newEcho()

		req := httptest.NewRequest(http.MethodPut, "/fabric/update", strings.NewReader(fabricPayload()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		serve(e, c, h.Update)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Fabric doesn't exist")
	})

	t.Run("matched but unmodified write is a store-side failure", func(t *testing.T) {
		repo := new(MockFabricRepository)
		repo.On("Replace", mock.Anything, mock.Anything).Return(model.Fabric{}, repository.ErrNotModified)

		h := NewCatalogHandler[model.Fabric]("fabric", repo, zap.NewNop())
		e := newEcho()

		req := httptest.NewRequest(http.MethodPut, "/fabric/update", strings.NewReader(fabricPayload()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		serve(e, c, h.Update)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "None fabric were replaced")
	})

	t.Run("replaces an existing fabric", func(t *testing.T) {
		repo := new(MockFabricRepository)
		repo.On("Replace", mock.Anything, mock.Anything).Return(model.Fabric{Name: "Flower Dots"}, nil)

		h := NewCatalogHandler[model.Fabric]("fabric", repo, zap.NewNop())
		e := newEcho()

		req := httptest.NewRequest(http.MethodPut, "/fabric/update", strings.NewReader(fabricPayload()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		serve(e, c, h.Update)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Flower Dots")
	})
}

func TestCatalogHandler_Delete(t *testing.T) {
	t.Run("well-formed but unknown id", func(t *testing.T) {
		repo := new(MockFabricRepository)
		repo.On("DeleteByID", mock.Anything, "ffffffffffffffffffffffff").Return(model.Fabric{}, repository.ErrNotFound)

		h := NewCatalogHandler[model.Fabric]("fabric", repo, zap.NewNop())
		e := newEcho()

		req := httptest.NewRequest(http.MethodDelete, "/fabric/ffffffffffffffffffffffff", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("ffffffffffffffffffffffff")
		serve(e, c, h.Delete)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "None fabric with id ffffffffffffffffffffffff found")
	})

	t.Run("echoes the deleted document", func(t *testing.T) {
		repo := new(MockFabricRepository)
		repo.On("DeleteByID", mock.Anything, "ffffffffffffffffffffffff").Return(model.Fabric{Name: "Flower Dots", Company: "Moda"}, nil)

		h := NewCatalogHandler[model.Fabric]("fabric", repo, zap.NewNop())
		e := newEcho()

		req := httptest.NewRequest(http.MethodDelete, "/fabric/ffffffffffffffffffffffff", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("ffffffffffffffffffffffff")
		serve(e, c, h.Delete)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Flower Dots")
	})
}
