package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartiq/pim-go/internal/domain/address"
	"github.com/smartiq/pim-go/internal/domain/auth"
	"github.com/smartiq/pim-go/internal/domain/basket"
	"github.com/smartiq/pim-go/internal/domain/catalog"
	"github.com/smartiq/pim-go/internal/domain/order"
	"github.com/smartiq/pim-go/internal/domain/user"
)

// --- Mock implementations ---

type memStore struct {
	users     map[string]*user.User
	apikeys   map[string]*auth.APIKeyInfo // by key hash
	products  map[int64]*catalog.Product
	addresses map[int64]*address.Address
	baskets   map[int64]*basket.Basket
	items     map[int64]*basket.Item
	orders    map[int64]*order.Order
	nextID    int64
}

func newMemStore() *memStore {
	return &memStore{
		users:     make(map[string]*user.User),
		apikeys:   make(map[string]*auth.APIKeyInfo),
		products:  make(map[int64]*catalog.Product),
		addresses: make(map[int64]*address.Address),
		baskets:   make(map[int64]*basket.Basket),
		items:     make(map[int64]*basket.Item),
		orders:    make(map[int64]*order.Order),
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

type userRepo struct{ s *memStore }

func (r userRepo) GetByLogin(_ context.Context, login string) (*user.User, error) {
	u, ok := r.s.users[login]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (r userRepo) GetByID(_ context.Context, id int64) (*user.User, error) {
	for _, u := range r.s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

type apiKeyRepo struct{ s *memStore }

func (r apiKeyRepo) FindByHash(_ context.Context, hash string) (*auth.APIKeyInfo, error) {
	info, ok := r.s.apikeys[hash]
	if !ok {
		return nil, auth.ErrNotFound
	}
	return info, nil
}

type productRepo struct{ s *memStore }

func (r productRepo) List(_ context.Context) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range r.s.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r productRepo) GetByID(_ context.Context, id int64) (*catalog.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return p, nil
}

func (r productRepo) GetByIDs(_ context.Context, ids []int64) ([]catalog.Product, error) {
	var out []catalog.Product
	seen := make(map[int64]bool)
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok && !seen[id] {
			out = append(out, *p)
			seen[id] = true
		}
	}
	return out, nil
}

func (r productRepo) ListByCategory(_ context.Context, categoryID int64) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range r.s.products {
		if p.CategoryID == categoryID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r productRepo) Create(_ context.Context, p *catalog.Product) error {
	p.ID = r.s.id()
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r productRepo) Update(_ context.Context, p *catalog.Product) error {
	if _, ok := r.s.products[p.ID]; !ok {
		return catalog.ErrNotFound
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r productRepo) Delete(_ context.Context, id int64) error {
	delete(r.s.products, id)
	return nil
}

type addressRepo struct{ s *memStore }

func (r addressRepo) GetByID(_ context.Context, id int64) (*address.Address, error) {
	a, ok := r.s.addresses[id]
	if !ok {
		return nil, address.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r addressRepo) ListByUser(_ context.Context, userID int64) ([]address.Address, error) {
	var out []address.Address
	for _, a := range r.s.addresses {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r addressRepo) Create(_ context.Context, a *address.Address) error {
	a.ID = r.s.id()
	cp := *a
	r.s.addresses[a.ID] = &cp
	return nil
}

func (r addressRepo) Update(_ context.Context, a *address.Address) error {
	cp := *a
	r.s.addresses[a.ID] = &cp
	return nil
}

func (r addressRepo) Delete(_ context.Context, id int64) error {
	delete(r.s.addresses, id)
	return nil
}

type basketRepo struct{ s *memStore }

func (r basketRepo) ActiveByUser(_ context.Context, userID int64) (*basket.Basket, error) {
	for _, b := range r.s.baskets {
		if b.UserID == userID && b.Status == basket.StatusActive {
			cp := *b
			return &cp, nil
		}
	}
	return nil, basket.ErrNotFound
}

func (r basketRepo) GetByID(_ context.Context, id int64) (*basket.Basket, error) {
	b, ok := r.s.baskets[id]
	if !ok {
		return nil, basket.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r basketRepo) ListByUser(_ context.Context, userID int64) ([]basket.Basket, error) {
	var out []basket.Basket
	for _, b := range r.s.baskets {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r basketRepo) Create(_ context.Context, b *basket.Basket) error {
	for _, existing := range r.s.baskets {
		if existing.UserID == b.UserID && existing.Status == basket.StatusActive {
			return basket.ErrActiveExists
		}
	}
	b.ID = r.s.id()
	cp := *b
	r.s.baskets[b.ID] = &cp
	return nil
}

func (r basketRepo) Update(_ context.Context, b *basket.Basket) error {
	cp := *b
	r.s.baskets[b.ID] = &cp
	return nil
}

func (r basketRepo) Delete(_ context.Context, id int64) error {
	delete(r.s.baskets, id)
	return nil
}

type basketItemRepo struct{ s *memStore }

func (r basketItemRepo) ListByBasket(_ context.Context, basketID int64) ([]basket.Item, error) {
	var out []basket.Item
	for _, item := range r.s.items {
		if item.BasketID == basketID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r basketItemRepo) GetByID(_ context.Context, id int64) (*basket.Item, error) {
	item, ok := r.s.items[id]
	if !ok {
		return nil, basket.ErrItemNotFound
	}
	cp := *item
	return &cp, nil
}

func (r basketItemRepo) Create(_ context.Context, item *basket.Item, b *basket.Basket) error {
	item.ID = r.s.id()
	cp := *item
	r.s.items[item.ID] = &cp
	bcp := *b
	r.s.baskets[b.ID] = &bcp
	return nil
}

func (r basketItemRepo) Delete(_ context.Context, id int64, b *basket.Basket) error {
	delete(r.s.items, id)
	bcp := *b
	r.s.baskets[b.ID] = &bcp
	return nil
}

type orderRepo struct{ s *memStore }

func (r orderRepo) GetByID(_ context.Context, id int64) (*order.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r orderRepo) List(_ context.Context) ([]order.Order, error) {
	var out []order.Order
	for _, o := range r.s.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r orderRepo) Create(_ context.Context, o *order.Order, _ *address.Address) error {
	o.ID = r.s.id()
	cp := *o
	r.s.orders[o.ID] = &cp
	return nil
}

func (r orderRepo) Cancel(_ context.Context, o *order.Order) error {
	stored, ok := r.s.orders[o.ID]
	if !ok {
		return order.ErrNotFound
	}
	stored.Status = o.Status
	return nil
}

func (r orderRepo) UpdateAddress(_ context.Context, id, addressID int64) error {
	stored, ok := r.s.orders[id]
	if !ok {
		return order.ErrNotFound
	}
	stored.AddressID = addressID
	return nil
}

func (r orderRepo) Delete(_ context.Context, id int64) error {
	delete(r.s.orders, id)
	return nil
}

// --- Helpers ---

const (
	testPepper = "test-pepper"
	aliceKey   = "alice-api-key"
	bobKey     = "bob-api-key"
)

func hashKey(key string) string {
	mac := hmac.New(sha256.New, []byte(testPepper))
	mac.Write([]byte(key))
	return hex.EncodeToString(mac.Sum(nil))
}

type env struct {
	store *memStore
	srv   *httptest.Server
}

// newEnv builds the full API over in-memory repositories with two users
// and one product, wrapped in the security middleware like production.
func newEnv(t *testing.T) *env {
	t.Helper()

	s := newMemStore()
	s.users["alice"] = &user.User{ID: 1, Login: "alice"}
	s.users["bob"] = &user.User{ID: 2, Login: "bob"}
	s.apikeys[hashKey(aliceKey)] = &auth.APIKeyInfo{ID: 1, KeyHash: hashKey(aliceKey), UserLogin: "alice"}
	s.apikeys[hashKey(bobKey)] = &auth.APIKeyInfo{ID: 2, KeyHash: hashKey(bobKey), UserLogin: "bob"}
	s.products[100] = &catalog.Product{ID: 100, Name: "Espresso Machine", Price: decimal.RequireFromString("249.90"), Stock: 25, CategoryID: 1}
	s.nextID = 100

	products := productRepo{s}
	addresses := addressRepo{s}
	baskets := basketRepo{s}
	items := basketItemRepo{s}
	orders := orderRepo{s}

	basketSvc := basket.NewService(baskets, items, products)
	orderSvc := order.NewService(orders, baskets, addresses)

	h := NewHandler(products, addresses, baskets, items, orders, basketSvc, orderSvc)
	sec := NewSecurity(apiKeyRepo{s}, userRepo{s}, []byte(testPepper))

	srv := httptest.NewServer(sec.Middleware(h.Routes()))
	t.Cleanup(srv.Close)

	return &env{store: s, srv: srv}
}

func (e *env) do(t *testing.T, method, path, apiKey string, body io.Reader) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, e.srv.URL+path, body)
	require.NoError(t, err)
	if apiKey != "" {
		req.Header.Set(APIKeyHeader, apiKey)
	}

	resp, err := e.srv.Client().Do(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), "body: %s", raw)
	return v
}

// --- Tests ---

func TestSecurity_MissingKey(t *testing.T) {
	e := newEnv(t)

	resp, raw := e.do(t, http.MethodGet, "/api/products", "", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decode[errorResponse](t, raw)
	assert.Equal(t, "unauthorized", body.Message)
}

func TestSecurity_UnknownKey(t *testing.T) {
	e := newEnv(t)

	resp, _ := e.do(t, http.MethodGet, "/api/products", "not-a-real-key", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSecurity_ValidKey(t *testing.T) {
	e := newEnv(t)

	resp, raw := e.do(t, http.MethodGet, "/api/products", aliceKey, nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	products := decode[[]productResponse](t, raw)
	require.Len(t, products, 1)
	assert.Equal(t, "Espresso Machine", products[0].Name)
}

func TestCreateOrGetActiveBasket(t *testing.T) {
	e := newEnv(t)

	resp, raw := e.do(t, http.MethodGet, "/api/baskets/createOrGetActiveBasket", aliceKey, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	first := decode[basketResponse](t, raw)
	assert.Equal(t, "ACTIVE", first.Status)
	assert.Empty(t, first.BasketItems)

	// Same basket on repeat calls.
	_, raw = e.do(t, http.MethodGet, "/api/baskets/createOrGetActiveBasket", aliceKey, nil)
	second := decode[basketResponse](t, raw)
	assert.Equal(t, first.ID, second.ID)

	// A different user gets their own basket.
	_, raw = e.do(t, http.MethodGet, "/api/baskets/createOrGetActiveBasket", bobKey, nil)
	other := decode[basketResponse](t, raw)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestAddAndRemoveBasketItem(t *testing.T) {
	e := newEnv(t)

	resp, raw := e.do(t, http.MethodPost, "/api/baskets/addItem/100", aliceKey, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	b := decode[basketResponse](t, raw)
	require.Len(t, b.BasketItems, 1)
	assert.EqualValues(t, 100, b.BasketItems[0].ProductID)
	assert.Equal(t, 1, b.BasketItems[0].Quantity)
	assert.EqualValues(t, 249, b.BasketItems[0].TotalCost)
	assert.InDelta(t, 249.90, b.TotalCost, 0.001)

	resp, raw = e.do(t, http.MethodGet, "/api/baskets/deleteItem/"+itoa(b.BasketItems[0].ID), aliceKey, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	b = decode[basketResponse](t, raw)
	assert.Empty(t, b.BasketItems)
	assert.Zero(t, b.TotalCost)
}

func TestAddBasketItem_UnknownProduct(t *testing.T) {
	e := newEnv(t)

	resp, _ := e.do(t, http.MethodPost, "/api/baskets/addItem/999", aliceKey, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateOrder(t *testing.T) {
	e := newEnv(t)

	_, raw := e.do(t, http.MethodGet, "/api/baskets/createOrGetActiveBasket", aliceKey, nil)
	b := decode[basketResponse](t, raw)

	resp, raw := e.do(t, http.MethodPost, "/api/addresses", aliceKey,
		strings.NewReader(`{"name":"home","city":"Ankara"}`))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	addr := decode[addressResponse](t, raw)
	assert.EqualValues(t, 1, addr.UserID, "owner comes from the API key, not the body")

	resp, raw = e.do(t, http.MethodPost, "/api/orders", aliceKey,
		strings.NewReader(`{"basket":{"id":`+itoa(b.ID)+`},"address":{"id":`+itoa(addr.ID)+`}}`))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	o := decode[orderResponse](t, raw)
	assert.Equal(t, "NEW", o.Status)
	assert.EqualValues(t, 1, o.UserID)
	assert.Equal(t, b.ID, o.BasketID)
	assert.Equal(t, addr.ID, o.AddressID)
}

func TestCreateOrder_RejectsClientID(t *testing.T) {
	e := newEnv(t)

	resp, raw := e.do(t, http.MethodPost, "/api/orders", aliceKey,
		strings.NewReader(`{"id":5,"basket":{"id":1},"address":{"id":1}}`))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[errorResponse](t, raw)
	assert.Contains(t, body.Message, "cannot already have an ID")
}

func TestCreateOrder_MissingRefs(t *testing.T) {
	e := newEnv(t)

	resp, _ := e.do(t, http.MethodPost, "/api/orders", aliceKey, strings.NewReader(`{}`))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateOrder_ForeignBasket(t *testing.T) {
	e := newEnv(t)

	// Bob creates the basket, Alice creates the address and tries to order.
	_, raw := e.do(t, http.MethodGet, "/api/baskets/createOrGetActiveBasket", bobKey, nil)
	b := decode[basketResponse](t, raw)

	_, raw = e.do(t, http.MethodPost, "/api/addresses", aliceKey,
		strings.NewReader(`{"name":"home","city":"Ankara"}`))
	addr := decode[addressResponse](t, raw)

	resp, _ := e.do(t, http.MethodPost, "/api/orders", aliceKey,
		strings.NewReader(`{"basket":{"id":`+itoa(b.ID)+`},"address":{"id":`+itoa(addr.ID)+`}}`))

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Empty(t, e.store.orders, "no order persisted on denial")
}

func TestCancelOrder(t *testing.T) {
	e := newEnv(t)
	e.store.orders[1] = &order.Order{ID: 1, Status: order.StatusNew, UserID: 1}

	resp, raw := e.do(t, http.MethodGet, "/api/orders/cancel/1", aliceKey, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	o := decode[orderResponse](t, raw)
	assert.Equal(t, "CANCELLED", o.Status)
}

func TestCancelOrder_Foreign(t *testing.T) {
	e := newEnv(t)
	e.store.orders[1] = &order.Order{ID: 1, Status: order.StatusNew, UserID: 2}

	resp, _ := e.do(t, http.MethodGet, "/api/orders/cancel/1", aliceKey, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUpdateOrderAddress(t *testing.T) {
	e := newEnv(t)
	e.store.addresses[10] = &address.Address{ID: 10, Name: "work", City: "Ankara", UserID: 1}
	e.store.orders[1] = &order.Order{ID: 1, Status: order.StatusNew, UserID: 1, AddressID: 9}

	resp, raw := e.do(t, http.MethodGet, "/api/orders/updateAddress/1/10", aliceKey, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	o := decode[orderResponse](t, raw)
	assert.EqualValues(t, 10, o.AddressID)
}

func TestUpdateAddress_Foreign(t *testing.T) {
	e := newEnv(t)
	e.store.addresses[10] = &address.Address{ID: 10, Name: "work", City: "Ankara", UserID: 2}

	resp, _ := e.do(t, http.MethodPut, "/api/addresses/10", aliceKey,
		strings.NewReader(`{"name":"hijacked","city":"X"}`))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCreateProduct(t *testing.T) {
	e := newEnv(t)

	resp, raw := e.do(t, http.MethodPost, "/api/products", aliceKey,
		strings.NewReader(`{"name":"Grinder","price":79.5,"stock":5,"categoryId":1}`))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	p := decode[productResponse](t, raw)
	assert.NotZero(t, p.ID)
	assert.Equal(t, "Grinder", p.Name)
	assert.InDelta(t, 79.5, p.Price, 0.001)

	_, raw = e.do(t, http.MethodGet, "/api/products", aliceKey, nil)
	assert.Len(t, decode[[]productResponse](t, raw), 2)
}

func TestCreateProduct_RejectsClientID(t *testing.T) {
	e := newEnv(t)

	resp, raw := e.do(t, http.MethodPost, "/api/products", aliceKey,
		strings.NewReader(`{"id":7,"name":"Grinder","price":79.5}`))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[errorResponse](t, raw)
	assert.Contains(t, body.Message, "cannot already have an ID")
}

func TestUpdateProduct(t *testing.T) {
	e := newEnv(t)

	resp, raw := e.do(t, http.MethodPut, "/api/products/100", aliceKey,
		strings.NewReader(`{"name":"Espresso Machine","price":199.90,"stock":20,"categoryId":1}`))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	p := decode[productResponse](t, raw)
	assert.InDelta(t, 199.90, p.Price, 0.001)

	_, raw = e.do(t, http.MethodGet, "/api/products/100", aliceKey, nil)
	p = decode[productResponse](t, raw)
	assert.InDelta(t, 199.90, p.Price, 0.001)
	assert.Equal(t, 20, p.Stock)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	e := newEnv(t)

	resp, _ := e.do(t, http.MethodPut, "/api/products/999", aliceKey,
		strings.NewReader(`{"name":"ghost","price":1}`))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteProduct(t *testing.T) {
	e := newEnv(t)

	resp, _ := e.do(t, http.MethodDelete, "/api/products/100", aliceKey, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = e.do(t, http.MethodGet, "/api/products/100", aliceKey, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBasketItemEndpoints(t *testing.T) {
	e := newEnv(t)

	resp, raw := e.do(t, http.MethodPost, "/api/basket-items", aliceKey,
		strings.NewReader(`{"productId":100}`))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decode[basketItemResponse](t, raw)
	assert.NotZero(t, created.ID)
	assert.EqualValues(t, 100, created.ProductID)
	assert.EqualValues(t, 249, created.TotalCost)

	_, raw = e.do(t, http.MethodGet, "/api/basket-items", aliceKey, nil)
	require.Len(t, decode[[]basketItemResponse](t, raw), 1)

	resp, raw = e.do(t, http.MethodGet, "/api/basket-items/"+itoa(created.ID), aliceKey, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created.ID, decode[basketItemResponse](t, raw).ID)

	resp, _ = e.do(t, http.MethodDelete, "/api/basket-items/"+itoa(created.ID), aliceKey, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// The item is gone and the basket total followed it down to zero.
	_, raw = e.do(t, http.MethodGet, "/api/basket-items", aliceKey, nil)
	assert.Empty(t, decode[[]basketItemResponse](t, raw))
	_, raw = e.do(t, http.MethodGet, "/api/baskets/createOrGetActiveBasket", aliceKey, nil)
	assert.Zero(t, decode[basketResponse](t, raw).TotalCost)
}

func TestCreateBasketItem_RejectsClientID(t *testing.T) {
	e := newEnv(t)

	resp, raw := e.do(t, http.MethodPost, "/api/basket-items", aliceKey,
		strings.NewReader(`{"id":3,"productId":100}`))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[errorResponse](t, raw)
	assert.Contains(t, body.Message, "cannot already have an ID")
}

func TestGetBasketItem_Foreign(t *testing.T) {
	e := newEnv(t)

	_, raw := e.do(t, http.MethodPost, "/api/basket-items", aliceKey,
		strings.NewReader(`{"productId":100}`))
	created := decode[basketItemResponse](t, raw)

	resp, _ := e.do(t, http.MethodGet, "/api/basket-items/"+itoa(created.ID), bobKey, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = e.do(t, http.MethodDelete, "/api/basket-items/"+itoa(created.ID), bobKey, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGetBasketItem_NotFound(t *testing.T) {
	e := newEnv(t)

	resp, _ := e.do(t, http.MethodGet, "/api/basket-items/999", aliceKey, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetProduct_NotFound(t *testing.T) {
	e := newEnv(t)

	resp, raw := e.do(t, http.MethodGet, "/api/products/999", aliceKey, nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decode[errorResponse](t, raw)
	assert.Equal(t, http.StatusNotFound, body.Code)
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
