package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/prodmanage/catalog-api/internal/core/domain"
	"github.com/prodmanage/catalog-api/internal/core/ports"
)

type stubProductService struct {
	listFn   func(ctx context.Context, ownerID string) ([]domain.Product, error)
	createFn func(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error)
	getFn    func(ctx context.Context, ownerID, productID string) (*domain.Product, error)
	editFn   func(ctx context.Context, input ports.EditProductInput) (*domain.Product, error)
	deleteFn func(ctx context.Context, ownerID, productID string) (*domain.Product, error)
}

func (s *stubProductService) List(ctx context.Context, ownerID string) ([]domain.Product, error) {
	return s.listFn(ctx, ownerID)
}

func (s *stubProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	return s.createFn(ctx, input)
}

func (s *stubProductService) Get(ctx context.Context, ownerID, productID string) (*domain.Product, error) {
	return s.getFn(ctx, ownerID, productID)
}

func (s *stubProductService) Edit(ctx context.Context, input ports.EditProductInput) (*domain.Product, error) {
	return s.editFn(ctx, input)
}

func (s *stubProductService) Delete(ctx context.Context, ownerID, productID string) (*domain.Product, error) {
	return s.deleteFn(ctx, ownerID, productID)
}

func newProductContext(t *testing.T, method, target, body, userID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set("user_id", userID)
	}
	return c, rec
}

func TestProductHandler_Create_Success(t *testing.T) {
	stub := &stubProductService{
		createFn: func(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
			if input.OwnerID != "user_1" || input.Name != "Widget" || input.Price != 0 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Product{
				ID:          "prod_1",
				Name:        input.Name,
				Description: input.Description,
				Price:       input.Price,
				OwnerID:     input.OwnerID,
				CreatedAt:   time.Now().UTC(),
			}, nil
		},
	}
	handler := NewProductHandler(stub)

	// Price 0 and an empty description are both valid values.
	c, rec := newProductContext(t, http.MethodPost, "/addproduct",
		`{"name":"Widget","description":"","price":0}`, "user_1")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "prod_1" || resp["owner_id"] != "user_1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if _, present := resp["updated_at"]; present {
		t.Fatalf("updated_at must be absent before the first edit")
	}
}

func TestProductHandler_Create_MissingFields(t *testing.T) {
	stub := &stubProductService{
		createFn: func(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewProductHandler(stub)

	for _, body := range []string{
		`{"description":"d","price":1}`,
		`{"name":"Widget","price":1}`,
		`{"name":"Widget","description":"d"}`,
	} {
		c, rec := newProductContext(t, http.MethodPost, "/addproduct", body, "user_1")
		_ = handler.Create(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestProductHandler_Create_NegativePrice(t *testing.T) {
	stub := &stubProductService{
		createFn: func(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
			return nil, domain.Validation("price must not be negative")
		},
	}
	handler := NewProductHandler(stub)

	c, rec := newProductContext(t, http.MethodPost, "/addproduct",
		`{"name":"Widget","description":"d","price":-1}`, "user_1")
	_ = handler.Create(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["error"] != "price must not be negative" {
		t.Fatalf("unexpected error body: %+v", resp)
	}
}

func TestProductHandler_Create_MissingIdentity(t *testing.T) {
	handler := NewProductHandler(&stubProductService{})

	c, _ := newProductContext(t, http.MethodPost, "/addproduct",
		`{"name":"Widget","description":"d","price":1}`, "")

	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestProductHandler_List_Success(t *testing.T) {
	stub := &stubProductService{
		listFn: func(ctx context.Context, ownerID string) ([]domain.Product, error) {
			if ownerID != "user_1" {
				t.Fatalf("unexpected owner: %s", ownerID)
			}
			return []domain.Product{
				{ID: "prod_1", Name: "Widget", OwnerID: "user_1", CreatedAt: time.Now().UTC()},
				{ID: "prod_2", Name: "Gadget", OwnerID: "user_1", CreatedAt: time.Now().UTC()},
			}, nil
		},
	}
	handler := NewProductHandler(stub)

	c, rec := newProductContext(t, http.MethodGet, "/listproducts", "", "user_1")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 products, got %d", len(resp))
	}
}

func TestProductHandler_List_Empty(t *testing.T) {
	stub := &stubProductService{
		listFn: func(ctx context.Context, ownerID string) ([]domain.Product, error) {
			return nil, nil
		},
	}
	handler := NewProductHandler(stub)

	c, rec := newProductContext(t, http.MethodGet, "/listproducts", "", "user_1")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("expected empty array, got %s", body)
	}
}

func TestProductHandler_Get_NotFound(t *testing.T) {
	stub := &stubProductService{
		getFn: func(ctx context.Context, ownerID, productID string) (*domain.Product, error) {
			return nil, domain.ErrProductNotFound
		},
	}
	handler := NewProductHandler(stub)

	c, rec := newProductContext(t, http.MethodGet, "/getproduct/unknown", "", "user_1")
	c.SetParamNames("id")
	c.SetParamValues("unknown")

	_ = handler.Get(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["error"] != "product not found" {
		t.Fatalf("unexpected error body: %+v", resp)
	}
}

func TestProductHandler_Edit_Success(t *testing.T) {
	stub := &stubProductService{
		editFn: func(ctx context.Context, input ports.EditProductInput) (*domain.Product, error) {
			if input.ProductID != "prod_1" || input.Name != "Widget v2" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Product{
				ID:          "prod_1",
				Name:        input.Name,
				Description: input.Description,
				Price:       input.Price,
				OwnerID:     input.OwnerID,
				CreatedAt:   time.Now().Add(-time.Hour).UTC(),
				UpdatedAt:   time.Now().UTC(),
			}, nil
		},
	}
	handler := NewProductHandler(stub)

	c, rec := newProductContext(t, http.MethodPut, "/editproduct/prod_1",
		`{"name":"Widget v2","description":"updated","price":19.99}`, "user_1")
	c.SetParamNames("id")
	c.SetParamValues("prod_1")

	if err := handler.Edit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, present := resp["updated_at"]; !present {
		t.Fatalf("expected updated_at after an edit")
	}
}

func TestProductHandler_Delete_ReturnsLastState(t *testing.T) {
	stub := &stubProductService{
		deleteFn: func(ctx context.Context, ownerID, productID string) (*domain.Product, error) {
			return &domain.Product{
				ID:        productID,
				Name:      "Widget",
				Price:     9.99,
				OwnerID:   ownerID,
				CreatedAt: time.Now().UTC(),
			}, nil
		},
	}
	handler := NewProductHandler(stub)

	c, rec := newProductContext(t, http.MethodDelete, "/deleteproduct/prod_1", "", "user_1")
	c.SetParamNames("id")
	c.SetParamValues("prod_1")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "prod_1" || resp["name"] != "Widget" {
		t.Fatalf("expected the deleted record's last state, got %+v", resp)
	}
}

func TestProductHandler_ServiceFailure_Surfaces500(t *testing.T) {
	stub := &stubProductService{
		listFn: func(ctx context.Context, ownerID string) ([]domain.Product, error) {
			return nil, errors.New("connection reset")
		},
	}
	handler := NewProductHandler(stub)

	c, rec := newProductContext(t, http.MethodGet, "/listproducts", "", "user_1")

	_ = handler.List(c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["error"] != "connection reset" {
		t.Fatalf("expected underlying error surfaced, got %+v", resp)
	}
}
