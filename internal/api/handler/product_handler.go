package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prodmanage/catalog-api/internal/api/metrics"
	"github.com/prodmanage/catalog-api/internal/core/domain"
	"github.com/prodmanage/catalog-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for owner-scoped product operations.
// The owning identity always comes from the auth middleware context, never
// from the request body or path.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /listproducts.
//
// @Summary      List the caller's products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   productResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /listproducts [get]
func (h *ProductHandler) List(c echo.Context) error {
	ownerID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	products, err := h.service.List(c.Request().Context(), ownerID)
	if err != nil {
		metrics.ProductOpsTotal.WithLabelValues("list", "error").Inc()
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}

	metrics.ProductOpsTotal.WithLabelValues("list", "success").Inc()
	return c.JSON(http.StatusOK, toProductListResponse(products))
}

// Create handles POST /addproduct.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product fields"
// @Success      201   {object}  productResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /addproduct [post]
func (h *ProductHandler) Create(c echo.Context) error {
	ownerID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.ProductOpsTotal.WithLabelValues("create", "rejected").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	if req.missingFields() {
		metrics.ProductOpsTotal.WithLabelValues("create", "rejected").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "name, description and price are required"})
	}

	product, err := h.service.Create(c.Request().Context(), ports.CreateProductInput{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: *req.Description,
		Price:       *req.Price,
	})
	if err != nil {
		return h.mapError(c, "create", err)
	}

	metrics.ProductOpsTotal.WithLabelValues("create", "success").Inc()
	return c.JSON(http.StatusCreated, toProductResponse(product))
}

// Get handles GET /getproduct/:id.
//
// @Summary      Get one of the caller's products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /getproduct/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	ownerID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	product, err := h.service.Get(c.Request().Context(), ownerID, c.Param("id"))
	if err != nil {
		return h.mapError(c, "get", err)
	}

	metrics.ProductOpsTotal.WithLabelValues("get", "success").Inc()
	return c.JSON(http.StatusOK, toProductResponse(product))
}

// Edit handles PUT /editproduct/:id. Input is validated before the ownership
// lookup, so a malformed body on someone else's id still yields 400.
//
// @Summary      Replace a product's mutable fields
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Product id"
// @Param        body  body      productRequest  true  "Replacement fields"
// @Success      200   {object}  productResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /editproduct/{id} [put]
func (h *ProductHandler) Edit(c echo.Context) error {
	ownerID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.ProductOpsTotal.WithLabelValues("edit", "rejected").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	if req.missingFields() {
		metrics.ProductOpsTotal.WithLabelValues("edit", "rejected").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "name, description and price are required"})
	}

	product, err := h.service.Edit(c.Request().Context(), ports.EditProductInput{
		OwnerID:     ownerID,
		ProductID:   c.Param("id"),
		Name:        req.Name,
		Description: *req.Description,
		Price:       *req.Price,
	})
	if err != nil {
		return h.mapError(c, "edit", err)
	}

	metrics.ProductOpsTotal.WithLabelValues("edit", "success").Inc()
	return c.JSON(http.StatusOK, toProductResponse(product))
}

// Delete handles DELETE /deleteproduct/:id and returns the deleted record's
// last state.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /deleteproduct/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	ownerID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	product, err := h.service.Delete(c.Request().Context(), ownerID, c.Param("id"))
	if err != nil {
		return h.mapError(c, "delete", err)
	}

	metrics.ProductOpsTotal.WithLabelValues("delete", "success").Inc()
	return c.JSON(http.StatusOK, toProductResponse(product))
}

// mapError renders service failures. Not-found deliberately covers both
// missing ids and other users' products.
func (h *ProductHandler) mapError(c echo.Context, op string, err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		metrics.ProductOpsTotal.WithLabelValues(op, "not_found").Inc()
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.As(err, &ve):
		metrics.ProductOpsTotal.WithLabelValues(op, "rejected").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: ve.Reason})
	default:
		metrics.ProductOpsTotal.WithLabelValues(op, "error").Inc()
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}
