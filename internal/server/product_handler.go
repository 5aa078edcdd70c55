package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/happyshop/storefront/internal/domain"
)

// ProductRepository is what the handlers need from storage.
type ProductRepository interface {
	GetProducts(ctx context.Context, category string) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
}

type ProductHandler struct {
	repo ProductRepository
	log  zerolog.Logger
}

func NewProductHandler(repo ProductRepository, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{repo: repo, log: log}
}

// List handles GET /api/products[?category=C].
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	products, err := h.repo.GetProducts(r.Context(), category)
	if err != nil {
		h.log.Error().Err(err).Msg("list products failed")
		respondError(w, http.StatusInternalServerError, "failed to load products")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}

	respondJSON(w, http.StatusOK, envelope{Message: "success", Data: products})
}

// Get handles GET /api/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "id must be a positive integer")
		return
	}

	product, err := h.repo.GetProduct(r.Context(), id)
	if errors.Is(err, domain.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("get product failed")
		respondError(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	respondJSON(w, http.StatusOK, envelope{Message: "success", Data: product})
}
