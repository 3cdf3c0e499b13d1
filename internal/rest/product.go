package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"solestride/domain"
	"solestride/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ProductService interface {
	GetAllProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	GetProductByID(ctx context.Context, productID string) (domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

type ProductHandler struct {
	productService ProductService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Quantity    int      `json:"quantity" validate:"gte=0"`
	Sizes       []int    `json:"sizes" validate:"required,min=1"`
	Brand       string   `json:"brand" validate:"required"`
	ShoeType    string   `json:"shoe_type" validate:"required"`
	Gender      string   `json:"gender" validate:"required"`
}

type UpdateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Quantity    int      `json:"quantity" validate:"gte=0"`
	Sizes       []int    `json:"sizes" validate:"required,min=1"`
	Brand       string   `json:"brand" validate:"required"`
	ShoeType    string   `json:"shoe_type" validate:"required"`
	Gender      string   `json:"gender" validate:"required"`
}

func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	filter := domain.ProductFilter{
		Gender:   c.QueryParam("gender"),
		Brand:    c.QueryParam("brand"),
		ShoeType: c.QueryParam("shoe_type"),
	}
	if v := c.QueryParam("min_price"); v != "" {
		minPrice, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid min_price"})
		}
		filter.MinPrice = minPrice
	}
	if v := c.QueryParam("max_price"); v != "" {
		maxPrice, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid max_price"})
		}
		filter.MaxPrice = maxPrice
	}

	products, err := h.productService.GetAllProducts(ctx, filter)
	if err != nil {
		logger.Error("Failed to find all products", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}

func (h *ProductHandler) GetProductByID(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, err := h.productService.GetProductByID(ctx, c.Param("id"))
	if err != nil {
		logger.Error("Failed to find product by id", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(product))
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req CreateProductRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate product request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product := &domain.Product{
		Name:          req.Name,
		Description:   req.Description,
		Images:        req.Images,
		Price:         req.Price,
		Quantity:      req.Quantity,
		Sizes:         req.Sizes,
		Brand:         req.Brand,
		ShoeType:      req.ShoeType,
		Gender:        req.Gender,
		AddedBy:       actorID(c),
		AddedByRole:   actorRole(c),
		UpdatedBy:     actorID(c),
		UpdatedByRole: actorRole(c),
	}

	newProduct, err := h.productService.CreateProduct(ctx, product)
	if err != nil {
		logger.Error("Failed to create product", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(newProduct))
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	var req UpdateProductRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate product request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product := &domain.Product{
		ProductID:     c.Param("id"),
		Name:          req.Name,
		Description:   req.Description,
		Images:        req.Images,
		Price:         req.Price,
		Quantity:      req.Quantity,
		Sizes:         req.Sizes,
		Brand:         req.Brand,
		ShoeType:      req.ShoeType,
		Gender:        req.Gender,
		UpdatedBy:     actorID(c),
		UpdatedByRole: actorRole(c),
	}

	updated, err := h.productService.UpdateProduct(ctx, product)
	if err != nil {
		logger.Error("Failed to update product", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.productService.DeleteProduct(ctx, c.Param("id")); err != nil {
		logger.Error("Failed to delete product", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Product deleted successfully"))
}

func actorID(c echo.Context) string {
	id, _ := c.Get("user_id").(string)
	return id
}

func actorRole(c echo.Context) string {
	role, _ := c.Get("role").(string)
	return role
}
