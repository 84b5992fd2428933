package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"beautyStore/entities"
	"beautyStore/models"
	"beautyStore/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	store *services.Store
	log   *zap.Logger
}

func NewHandler(store *services.Store, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		store: store,
		log:   log.Named("http"),
	}
}

// products

func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.store.Products())
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	prod, found := h.store.Product(id)
	if !found {
		WriteErrorResponse(w, models.ErrNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, prod)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var p entities.Product
	if !h.decode(w, r, &p) {
		return
	}
	created, err := h.store.AddProduct(r.Context(), p)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var patch entities.ProductPatch
	if !h.decode(w, r, &patch) {
		return
	}
	if err := h.store.UpdateProduct(r.Context(), id, patch); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	prod, _ := h.store.Product(id)
	h.writeJSON(w, http.StatusOK, prod)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteProduct(r.Context(), id); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// categories

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.store.Categories())
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var c entities.Category
	if !h.decode(w, r, &c) {
		return
	}
	created, err := h.store.AddCategory(r.Context(), c)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var patch entities.CategoryPatch
	if !h.decode(w, r, &patch) {
		return
	}
	if err := h.store.UpdateCategory(r.Context(), id, patch); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteCategory(r.Context(), id); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// brands

func (h *Handler) GetBrands(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.store.Brands())
}

func (h *Handler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var b entities.Brand
	if !h.decode(w, r, &b) {
		return
	}
	created, err := h.store.AddBrand(r.Context(), b)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var patch entities.BrandPatch
	if !h.decode(w, r, &patch) {
		return
	}
	if err := h.store.UpdateBrand(r.Context(), id, patch); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteBrand(r.Context(), id); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// catalog

func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.writeJSON(w, http.StatusOK, h.store.Catalog(entities.CatalogQuery{
		Category: q.Get("category"),
		Brand:    q.Get("brand"),
		Search:   q.Get("search"),
		Sort:     entities.SortOption(q.Get("sort")),
	}))
}

func (h *Handler) GetFeatured(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			WriteErrorResponse(w, models.ErrBadRequest)
			return
		}
		limit = n
	}
	h.writeJSON(w, http.StatusOK, h.store.Featured(limit))
}

func (h *Handler) GetCounts(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]map[string]int{
		"categories": h.store.CategoryCounts(),
		"brands":     h.store.BrandCounts(),
	})
}

// cart

type cartResponse struct {
	Items []entities.CartItem `json:"items"`
	Total string              `json:"total"`
	Count int                 `json:"count"`
}

type cartRequest struct {
	ProductId int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.writeCart(w)
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if !h.decode(w, r, &req) {
		return
	}
	prod, found := h.store.Product(req.ProductId)
	if !found {
		WriteErrorResponse(w, models.ErrNotFound)
		return
	}
	h.store.AddToCart(prod, req.Quantity)
	h.writeCart(w)
}

func (h *Handler) UpdateCartQuantity(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.store.UpdateQuantity(req.ProductId, req.Quantity)
	h.writeCart(w)
}

// DeleteFromCart removes ?productId=, or empties the cart without it.
func (h *Handler) DeleteFromCart(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query().Get("productId")
	if v == "" {
		h.store.ClearCart()
		h.writeCart(w)
		return
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		WriteErrorResponse(w, models.ErrBadRequest)
		return
	}
	h.store.RemoveFromCart(id)
	h.writeCart(w)
}

// GetCartWhatsApp returns the wa.me link for the current cart.
func (h *Handler) GetCartWhatsApp(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"url": h.store.WhatsAppLink()})
}

func (h *Handler) writeCart(w http.ResponseWriter) {
	h.writeJSON(w, http.StatusOK, cartResponse{
		Items: h.store.Cart(),
		Total: h.store.CartTotal().String(),
		Count: h.store.CartCount(),
	})
}

// favorites

func (h *Handler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.store.FavoriteProducts())
}

func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	h.store.ToggleFavorite(id)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"favorite": h.store.IsFavorite(id),
		"count":    h.store.FavoritesCount(),
	})
}

// orders

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var form entities.OrderFormData
	if !h.decode(w, r, &form) {
		return
	}
	order, err := h.store.AddOrder(r.Context(), form)
	if order == nil {
		if err == nil {
			err = models.ErrServerError
		}
		WriteErrorResponse(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.store.Orders())
}

func (h *Handler) SetOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status entities.OrderStatus `json:"status"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.store.UpdateOrderStatus(r.Context(), mux.Vars(r)["id"], req.Status); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// saved orders

func (h *Handler) GetSavedOrders(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"orders":   h.store.SavedOrders(),
		"customer": h.store.SavedCustomer(),
	})
}

func (h *Handler) RestoreSavedOrder(w http.ResponseWriter, r *http.Request) {
	if !h.store.RestoreCartFromSavedOrder(mux.Vars(r)["id"]) {
		WriteErrorResponse(w, models.ErrNotFound)
		return
	}
	h.writeCart(w)
}

func (h *Handler) DeleteSavedOrder(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteSavedOrder(r.Context(), mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

// admin

func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	if !h.store.AdminLogin(req.Password) {
		WriteErrorResponse(w, models.ErrUnauthorized)
		return
	}
	h.store.FetchOrders(r.Context())
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	h.store.AdminLogout()
	w.WriteHeader(http.StatusOK)
}

// ui toggles

func (h *Handler) SetCartOpen(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Open bool `json:"open"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	h.store.SetCartOpen(req.Open)
	h.writeUIState(w)
}

func (h *Handler) SetOrderFormOpen(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Open bool `json:"open"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	h.store.SetOrderFormOpen(req.Open)
	h.writeUIState(w)
}

func (h *Handler) writeUIState(w http.ResponseWriter) {
	h.writeJSON(w, http.StatusOK, map[string]bool{
		"isCartOpen":           h.store.IsCartOpen(),
		"isOrderFormOpen":      h.store.IsOrderFormOpen(),
		"isAdminAuthenticated": h.store.IsAdminAuthenticated(),
	})
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.log.Debug("bad id", zap.String("id", mux.Vars(r)["id"]), zap.Error(err))
		http.Error(w, "bad request", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.log.Debug("Unmarshal", zap.Error(err))
		http.Error(w, "bad request", http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		h.log.Error("Marshal", zap.Error(err))
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(jsonData)
}

func WriteErrorResponse(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrProductInUse):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, models.ErrBadRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrRemoteRead), errors.Is(err, models.ErrRemoteWrite):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}
