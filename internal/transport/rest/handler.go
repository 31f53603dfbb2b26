// Package rest provides HTTP handlers for catalog operations.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	catalogerrors "github.com/techshop/catalog_service/internal/errors"
	"github.com/techshop/catalog_service/internal/service"
	"github.com/techshop/catalog_service/pkg/web"
)

type Handler struct {
	service  service.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new instance of the catalog HTTP API with the provided service.
func NewHandler(service service.ProductService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "rest"),
	}
}

// productListResponse is the JSON shape of every list endpoint.
type productListResponse struct {
	Products []service.ProductDto `json:"products"`
	Category string               `json:"category,omitempty"`
	Total    int                  `json:"total"`
}

// RegisterRoutes registers the HTTP routes for the catalog service.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/category/{category}", h.FindByCategory)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Patch("/stock", h.UpdateStock)
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// List returns active products, optionally narrowed by the `search` or
// `category` query parameter. When both are present, search wins.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	search := r.URL.Query().Get("search")
	category := r.URL.Query().Get("category")

	var (
		products []service.ProductDto
		err      error
	)
	switch {
	case search != "":
		mLogger.DebugContext(r.Context(), "Received request to search products", "query", search)
		products, err = h.service.SearchProducts(r.Context(), search)
	case category != "":
		mLogger.DebugContext(r.Context(), "Received request to list products by category", "category", category)
		products, err = h.service.GetProductsByCategory(r.Context(), category)
	default:
		mLogger.DebugContext(r.Context(), "Received request to list all products")
		products, err = h.service.GetAllProducts(r.Context())
	}
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	mLogger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(products))
	web.RespondJSON(w, mLogger, http.StatusOK, productListResponse{
		Products: products,
		Total:    len(products),
	})
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.service.GetProductByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %d not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve product with ID %d", id))
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product", "ID", found.ID, "Name", found.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// FindByCategory returns active products in the given category.
func (h *Handler) FindByCategory(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	category := r.PathValue("category")

	mLogger.DebugContext(r.Context(), "Received request to find products by category", "category", category)
	products, err := h.service.GetProductsByCategory(r.Context(), category)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving products by category", "category", category, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	mLogger.DebugContext(r.Context(), "Successfully retrieved category products", "category", category, "count", len(products))
	web.RespondJSON(w, mLogger, http.StatusOK, productListResponse{
		Products: products,
		Category: category,
		Total:    len(products),
	})
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var productCreateDto service.ProductCreateDto
	if err := json.NewDecoder(r.Body).Decode(&productCreateDto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to create product", "product", productCreateDto)
	if !h.validateStruct(w, r, mLogger, productCreateDto) {
		return
	}

	newProduct, err := h.service.CreateProduct(r.Context(), productCreateDto)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error creating product", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product created successfully", "ID", newProduct.ID, "Name", newProduct.Name)
	web.RespondJSON(w, mLogger, http.StatusCreated, newProduct)
}

// UpdateStock applies a signed stock delta to a product.
func (h *Handler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to update stock for product", "ID", id)
	var stockAdjustDto service.StockAdjustDto
	if err := json.NewDecoder(r.Body).Decode(&stockAdjustDto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !h.validateStruct(w, r, mLogger, stockAdjustDto) {
		return
	}

	updated, err := h.service.UpdateStock(r.Context(), id, stockAdjustDto.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, catalogerrors.ErrProductNotFound):
			mLogger.WarnContext(r.Context(), "Product not found for stock update", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %d not found", id))
		case errors.Is(err, catalogerrors.ErrInsufficientStock):
			mLogger.WarnContext(r.Context(), "Insufficient stock for adjustment", "ID", id, "quantity", stockAdjustDto.Quantity)
			web.RespondError(w, mLogger, http.StatusBadRequest, "Insufficient stock")
		default:
			mLogger.ErrorContext(r.Context(), "Error updating stock for product", "ID", id, "error", err)
			web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to update stock for product with ID %d", id))
		}
		return
	}
	mLogger.InfoContext(r.Context(), "Stock updated successfully for product", "ID", updated.ID, "NewStock", updated.Stock)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// validateStruct validates the given DTO and writes a 400 response listing
// the violated constraints on failure. Returns whether validation passed.
func (h *Handler) validateStruct(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, dto any) bool {
	if err := h.validate.Struct(dto); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			// If the error is a validation error, we can extract field-specific errors.
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				// fieldErr.Tag() returns "required", "max", etc.
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, mLogger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return false
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		// If it's not a validation error, we can return a generic error.
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
