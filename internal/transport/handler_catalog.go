package transport

import (
	"net/http"

	"sushi-be/internal/category"
	"sushi-be/internal/product"
	"sushi-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type catalogHandler struct {
	categories category.Service
	products   product.Service
}

func pathID(r *http.Request) (uint, bool) {
	id, err := utils.ToUint(chi.URLParam(r, "id"))
	return id, err == nil && id > 0
}

// ----------------- Public reads -----------------

// Menu serves categories with their products nested, the main storefront
// screen on every client.
func (h *catalogHandler) Menu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.categories.Menu(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, menu)
}

func (h *catalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	p, err := h.products.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *catalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if products == nil {
		products = []*product.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *catalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if categories == nil {
		categories = []*category.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

// ----------------- Admin product mutations -----------------

func productInput(req productRequest) product.UpsertInput {
	ingredientsRu := req.IngredientsRu
	if ingredientsRu == nil && req.Description != nil {
		// Older admin clients send a bare "description" field.
		ingredientsRu = req.Description
	}

	var price float64
	if req.Price != nil {
		price = *req.Price
	}

	return product.UpsertInput{
		CategoryID:    req.CategoryID,
		NameRu:        req.NameRu,
		NameEn:        req.NameEn,
		NameUk:        req.NameUk,
		NameNl:        req.NameNl,
		IngredientsRu: ingredientsRu,
		IngredientsEn: req.IngredientsEn,
		IngredientsUk: req.IngredientsUk,
		IngredientsNl: req.IngredientsNl,
		Price:         price,
		ImageURL:      req.ImageURL,
		IsPopular:     req.IsPopular,
		IsRecommended: req.IsRecommended,
	}
}

func (h *catalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.products.Create(r.Context(), productInput(req))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *catalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	var req productRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.products.Update(r.Context(), id, productInput(req))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *catalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

// ----------------- Admin category mutations -----------------

func categoryInput(req categoryRequest) category.UpsertInput {
	return category.UpsertInput{
		NameRu: req.NameRu,
		NameEn: req.NameEn,
		NameUk: req.NameUk,
		NameNl: req.NameNl,
		Slug:   req.Slug,
	}
}

func (h *catalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.categories.Create(r.Context(), categoryInput(req))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *catalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, "invalid category id", http.StatusBadRequest)
		return
	}

	var req categoryRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.categories.Update(r.Context(), id, categoryInput(req))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *catalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, "invalid category id", http.StatusBadRequest)
		return
	}

	if err := h.categories.Delete(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}
