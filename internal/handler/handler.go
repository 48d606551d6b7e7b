// Package handler implements the REST API over the workflow services.
// Routing uses net/http method patterns; every /api route runs behind the
// API-key security middleware, which resolves the requesting user and
// threads it through the request context.
package handler

import (
	"net/http"

	"github.com/smartiq/pim-go/internal/domain/address"
	"github.com/smartiq/pim-go/internal/domain/basket"
	"github.com/smartiq/pim-go/internal/domain/catalog"
	"github.com/smartiq/pim-go/internal/domain/order"
)

// Handler exposes the API endpoints, delegating business logic to the
// workflow services and repositories.
type Handler struct {
	products  catalog.Repository
	addresses address.Repository
	baskets   basket.Repository
	items     basket.ItemRepository
	orders    order.Repository
	basketSvc *basket.Service
	orderSvc  *order.Service
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(
	products catalog.Repository,
	addresses address.Repository,
	baskets basket.Repository,
	items basket.ItemRepository,
	orders order.Repository,
	basketSvc *basket.Service,
	orderSvc *order.Service,
) *Handler {
	return &Handler{
		products:  products,
		addresses: addresses,
		baskets:   baskets,
		items:     items,
		orders:    orders,
		basketSvc: basketSvc,
		orderSvc:  orderSvc,
	}
}

// Routes registers all API endpoints on a fresh mux. The caller wraps the
// result with the security middleware and the shared middleware chain.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/products", h.listProducts)
	mux.HandleFunc("GET /api/products/{id}", h.getProduct)
	mux.HandleFunc("POST /api/products", h.createProduct)
	mux.HandleFunc("PUT /api/products/{id}", h.updateProduct)
	mux.HandleFunc("DELETE /api/products/{id}", h.deleteProduct)
	mux.HandleFunc("GET /api/products/category/{categoryId}", h.listProductsByCategory)

	mux.HandleFunc("GET /api/addresses", h.listAddresses)
	mux.HandleFunc("GET /api/addresses/{id}", h.getAddress)
	mux.HandleFunc("POST /api/addresses", h.createAddress)
	mux.HandleFunc("PUT /api/addresses/{id}", h.updateAddress)
	mux.HandleFunc("DELETE /api/addresses/{id}", h.deleteAddress)

	mux.HandleFunc("GET /api/baskets", h.listBaskets)
	mux.HandleFunc("GET /api/baskets/{id}", h.getBasket)
	mux.HandleFunc("DELETE /api/baskets/{id}", h.deleteBasket)
	mux.HandleFunc("GET /api/baskets/createOrGetActiveBasket", h.createOrGetActiveBasket)
	mux.HandleFunc("POST /api/baskets/addItem/{productId}", h.addBasketItem)
	mux.HandleFunc("GET /api/baskets/deleteItem/{basketItemId}", h.deleteBasketItem)

	mux.HandleFunc("GET /api/basket-items", h.listBasketItems)
	mux.HandleFunc("GET /api/basket-items/{id}", h.getBasketItem)
	mux.HandleFunc("POST /api/basket-items", h.createBasketItem)
	mux.HandleFunc("DELETE /api/basket-items/{id}", h.removeBasketItem)

	mux.HandleFunc("GET /api/orders", h.listOrders)
	mux.HandleFunc("GET /api/orders/{id}", h.getOrder)
	mux.HandleFunc("POST /api/orders", h.createOrder)
	mux.HandleFunc("DELETE /api/orders/{id}", h.deleteOrder)
	mux.HandleFunc("GET /api/orders/cancel/{orderId}", h.cancelOrder)
	mux.HandleFunc("GET /api/orders/updateAddress/{orderId}/{addressId}", h.updateOrderAddress)

	return mux
}
