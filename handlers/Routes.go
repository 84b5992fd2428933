package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires every route. Admin routes sit on a subrouter guarded by
// AdminMiddleware.
func NewRouter(ha *Handler) *mux.Router {
	router := mux.NewRouter()
	router.Use(ha.RequestIDMiddleware)
	router.Use(ha.ErrorHandleMiddleware)
	subAdmin := router.NewRoute().Subrouter()
	subAdmin.Use(ha.AdminMiddleware)

	router.HandleFunc("/products", ha.GetProducts).Methods(http.MethodGet)
	router.HandleFunc("/products/{id:[0-9]+}", ha.GetProduct).Methods(http.MethodGet)
	subAdmin.HandleFunc("/products", ha.CreateProduct).Methods(http.MethodPost)
	subAdmin.HandleFunc("/products/{id:[0-9]+}/update", ha.UpdateProduct).Methods(http.MethodPost)
	subAdmin.HandleFunc("/products/{id:[0-9]+}", ha.DeleteProduct).Methods(http.MethodDelete)

	router.HandleFunc("/categories", ha.GetCategories).Methods(http.MethodGet)
	subAdmin.HandleFunc("/categories", ha.CreateCategory).Methods(http.MethodPost)
	subAdmin.HandleFunc("/categories/{id:[0-9]+}/update", ha.UpdateCategory).Methods(http.MethodPost)
	subAdmin.HandleFunc("/categories/{id:[0-9]+}", ha.DeleteCategory).Methods(http.MethodDelete)

	router.HandleFunc("/brands", ha.GetBrands).Methods(http.MethodGet)
	subAdmin.HandleFunc("/brands", ha.CreateBrand).Methods(http.MethodPost)
	subAdmin.HandleFunc("/brands/{id:[0-9]+}/update", ha.UpdateBrand).Methods(http.MethodPost)
	subAdmin.HandleFunc("/brands/{id:[0-9]+}", ha.DeleteBrand).Methods(http.MethodDelete)

	router.HandleFunc("/catalog", ha.GetCatalog).Methods(http.MethodGet)
	router.HandleFunc("/catalog/counts", ha.GetCounts).Methods(http.MethodGet)
	router.HandleFunc("/featured", ha.GetFeatured).Methods(http.MethodGet)

	router.HandleFunc("/cart", ha.GetCart).Methods(http.MethodGet)
	router.HandleFunc("/cart", ha.AddToCart).Methods(http.MethodPost)
	router.HandleFunc("/cart", ha.DeleteFromCart).Methods(http.MethodDelete)
	router.HandleFunc("/cart/quantity", ha.UpdateCartQuantity).Methods(http.MethodPost)
	router.HandleFunc("/cart/whatsapp", ha.GetCartWhatsApp).Methods(http.MethodGet)

	router.HandleFunc("/favorites", ha.GetFavorites).Methods(http.MethodGet)
	router.HandleFunc("/favorites/{id:[0-9]+}/toggle", ha.ToggleFavorite).Methods(http.MethodPost)

	router.HandleFunc("/orders", ha.CreateOrder).Methods(http.MethodPost)
	subAdmin.HandleFunc("/orders", ha.GetOrders).Methods(http.MethodGet)
	subAdmin.HandleFunc("/orders/{id}/status", ha.SetOrderStatus).Methods(http.MethodPost)

	router.HandleFunc("/saved-orders", ha.GetSavedOrders).Methods(http.MethodGet)
	router.HandleFunc("/saved-orders/{id}/restore", ha.RestoreSavedOrder).Methods(http.MethodPost)
	router.HandleFunc("/saved-orders/{id}", ha.DeleteSavedOrder).Methods(http.MethodDelete)

	router.HandleFunc("/admin/login", ha.AdminLogin).Methods(http.MethodPost)
	router.HandleFunc("/admin/logout", ha.AdminLogout).Methods(http.MethodPost)

	router.HandleFunc("/ui/cart", ha.SetCartOpen).Methods(http.MethodPost)
	router.HandleFunc("/ui/order-form", ha.SetOrderFormOpen).Methods(http.MethodPost)

	return router
}
