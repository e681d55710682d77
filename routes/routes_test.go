package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Kariqs/ezelectronics-api/cache"
	"github.com/Kariqs/ezelectronics-api/controllers"
	"github.com/Kariqs/ezelectronics-api/initializers"
	"github.com/Kariqs/ezelectronics-api/models"
	"github.com/Kariqs/ezelectronics-api/repository"
	"github.com/Kariqs/ezelectronics-api/services"
	"github.com/Kariqs/ezelectronics-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	gin.SetMode(gin.TestMode)

	db, err := initializers.ConnectToDB(&initializers.Config{DBDriver: "sqlite", DBSource: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, initializers.SyncDatabase(db))
	t.Cleanup(func() { initializers.CloseDB(db) })

	products := repository.NewProductRepository(db)
	cartService := services.NewCartService(db, repository.NewCartRepository(db), products, cache.NoopCache{}, services.NoopNotifier{})
	reviewService := services.NewReviewService(repository.NewReviewRepository(db), products)
	userService := services.NewUserService(repository.NewUserRepository(db))

	router := gin.New()
	RegisterRoutes(router, testSecret, userService, Controllers{
		Carts:    controllers.NewCartController(cartService),
		Products: controllers.NewProductController(services.NewProductService(products)),
		Reviews:  controllers.NewReviewController(reviewService),
		Users:    controllers.NewUserController(userService),
	})

	for _, p := range []models.Product{
		{ProductModel: "iPhone13", Category: models.CategorySmartphone, SellingPrice: 1200, Quantity: 5},
		{ProductModel: "XPS13", Category: models.CategoryLaptop, SellingPrice: 1500, Quantity: 3},
		{ProductModel: "Fridge", Category: models.CategoryAppliance, SellingPrice: 800, Quantity: 0},
	} {
		require.NoError(t, db.Create(&p).Error)
	}

	return &testServer{t: t, db: db, router: router}
}

func token(t *testing.T, username, role string) string {
	tok, err := utils.GenerateToken(models.User{Username: username, Role: role}, testSecret, time.Hour)
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(method, path, tok string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestCartFlow(t *testing.T) {
	s := newTestServer(t)
	alice := token(t, "alice", models.RoleCustomer)

	w := s.do(http.MethodGet, "/carts", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"customer":"alice","paid":false,"paymentDate":"","total":0,"products":[]}`, w.Body.String())

	for i := 0; i < 2; i++ {
		w = s.do(http.MethodPost, "/carts", alice, gin.H{"model": "iPhone13"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	w = s.do(http.MethodPost, "/carts", alice, gin.H{"model": "XPS13"})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodDelete, "/carts/products/XPS13", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/carts", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"customer":"alice","paid":false,"paymentDate":"","total":2400,
		"products":[{"model":"iPhone13","quantity":2,"category":"Smartphone","price":1200}]}`, w.Body.String())

	w = s.do(http.MethodPatch, "/carts", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/carts/history", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[[]models.CartView](t, w)
	require.Len(t, history, 1)
	assert.True(t, history[0].Paid)
	assert.NotEmpty(t, history[0].PaymentDate)
	assert.Equal(t, 2400.0, history[0].Total)

	var product models.Product
	require.NoError(t, s.db.Where("model = ?", "iPhone13").First(&product).Error)
	assert.Equal(t, 3, product.Quantity)
}

func TestCartErrors(t *testing.T) {
	s := newTestServer(t)
	alice := token(t, "alice", models.RoleCustomer)
	manager := token(t, "mia", models.RoleManager)

	tests := []struct {
		name   string
		method string
		path   string
		tok    string
		body   any
		status int
	}{
		{"no token", http.MethodGet, "/carts", "", nil, http.StatusUnauthorized},
		{"manager current cart", http.MethodGet, "/carts", manager, nil, http.StatusUnauthorized},
		{"manager history", http.MethodGet, "/carts/history", manager, nil, http.StatusUnauthorized},
		{"missing model", http.MethodPost, "/carts", alice, gin.H{}, http.StatusUnprocessableEntity},
		{"blank model", http.MethodPost, "/carts", alice, gin.H{"model": "  "}, http.StatusUnprocessableEntity},
		{"unknown model", http.MethodPost, "/carts", alice, gin.H{"model": "Unknown"}, http.StatusNotFound},
		{"empty stock", http.MethodPost, "/carts", alice, gin.H{"model": "Fridge"}, http.StatusConflict},
		{"checkout without cart", http.MethodPatch, "/carts", alice, nil, http.StatusNotFound},
		{"remove without cart", http.MethodDelete, "/carts/products/iPhone13", alice, nil, http.StatusNotFound},
		{"remove unknown product", http.MethodDelete, "/carts/products/Unknown", alice, nil, http.StatusNotFound},
		{"clear without cart", http.MethodDelete, "/carts/current", alice, nil, http.StatusNotFound},
		{"customer all carts", http.MethodGet, "/carts/all", alice, nil, http.StatusUnauthorized},
		{"customer delete carts", http.MethodDelete, "/carts", alice, nil, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(tt.method, tt.path, tt.tok, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestCheckoutErrors(t *testing.T) {
	s := newTestServer(t)
	alice := token(t, "alice", models.RoleCustomer)

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/carts", alice, gin.H{"model": "XPS13"}).Code)
	require.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/carts/products/XPS13", alice, nil).Code)

	w := s.do(http.MethodPatch, "/carts", alice, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[map[string]string](t, w)
	assert.Equal(t, services.ErrEmptyCart.Error(), body["message"])

	for i := 0; i < 4; i++ {
		require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/carts", alice, gin.H{"model": "XPS13"}).Code)
	}
	assert.Equal(t, http.StatusConflict, s.do(http.MethodPatch, "/carts", alice, nil).Code)

	w = s.do(http.MethodDelete, "/carts/products/iPhone13", alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, services.ErrProductNotInCart.Error(), decode[map[string]string](t, w)["message"])

	require.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/carts/current", alice, nil).Code)
	w = s.do(http.MethodGet, "/carts", alice, nil)
	assert.JSONEq(t, `{"customer":"alice","paid":false,"paymentDate":"","total":0,"products":[]}`, w.Body.String())
}

func TestAdminCarts(t *testing.T) {
	s := newTestServer(t)
	alice := token(t, "alice", models.RoleCustomer)
	admin := token(t, "root", models.RoleAdmin)
	manager := token(t, "mia", models.RoleManager)

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/carts", alice, gin.H{"model": "iPhone13"}).Code)

	w := s.do(http.MethodGet, "/carts/all", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.CartView](t, w), 1)

	require.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/carts", admin, nil).Code)

	w = s.do(http.MethodGet, "/carts/all", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestProducts(t *testing.T) {
	s := newTestServer(t)
	alice := token(t, "alice", models.RoleCustomer)
	admin := token(t, "root", models.RoleAdmin)

	w := s.do(http.MethodGet, "/products", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Product](t, w), 3)

	w = s.do(http.MethodGet, "/products/available?grouping=category&category=Smartphone", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	products := decode[[]models.Product](t, w)
	require.Len(t, products, 1)
	assert.Equal(t, "iPhone13", products[0].ProductModel)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/products", alice, nil).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, s.do(http.MethodGet, "/products?grouping=category", admin, nil).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, s.do(http.MethodGet, "/products?model=XPS13", admin, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/products?grouping=model&model=Unknown", admin, nil).Code)
}

func TestReviews(t *testing.T) {
	s := newTestServer(t)
	alice := token(t, "alice", models.RoleCustomer)
	manager := token(t, "mia", models.RoleManager)

	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/reviews/iPhone13", alice, gin.H{"score": 5, "comment": "Great"}).Code)
	assert.Equal(t, http.StatusConflict, s.do(http.MethodPost, "/reviews/iPhone13", alice, gin.H{"score": 4, "comment": "Again"}).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, s.do(http.MethodPost, "/reviews/iPhone13", alice, gin.H{"score": 6, "comment": "Too much"}).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, s.do(http.MethodPost, "/reviews/iPhone13", alice, gin.H{"score": 3}).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/reviews/Unknown", alice, gin.H{"score": 3, "comment": "?"}).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/reviews/iPhone13", manager, gin.H{"score": 3, "comment": "staff"}).Code)

	w := s.do(http.MethodGet, "/reviews/iPhone13", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	reviews := decode[[]models.ReviewView](t, w)
	require.Len(t, reviews, 1)
	assert.Equal(t, "alice", reviews[0].User)
	assert.Equal(t, 5, reviews[0].Score)

	assert.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/reviews/iPhone13", alice, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/reviews/iPhone13", alice, nil).Code)

	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/reviews/XPS13", alice, gin.H{"score": 2, "comment": "Hot"}).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodDelete, "/reviews/XPS13/all", alice, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/reviews/XPS13/all", manager, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/reviews", manager, nil).Code)

	w = s.do(http.MethodGet, "/reviews/XPS13", alice, nil)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestUsers(t *testing.T) {
	s := newTestServer(t)
	alice := token(t, "alice", models.RoleCustomer)
	bob := token(t, "bob", models.RoleCustomer)
	root := token(t, "root", models.RoleAdmin)
	boss := token(t, "boss", models.RoleAdmin)

	// callers are registered on their first authenticated request
	w := s.do(http.MethodGet, "/users/alice", alice, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"username":"alice","name":"","surname":"","role":"Customer","address":"","birthdate":""}`, w.Body.String())
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/users/alice", bob, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/users/nobody", root, nil).Code)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/users", alice, nil).Code)
	w = s.do(http.MethodGet, "/users", root, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.User](t, w), 3)

	w = s.do(http.MethodGet, "/users/roles/Customer", root, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.User](t, w), 2)
	assert.Equal(t, http.StatusUnprocessableEntity, s.do(http.MethodGet, "/users/roles/Guest", root, nil).Code)

	info := gin.H{"name": "Alice", "surname": "Smith", "address": "Via Roma 1", "birthdate": "1990-01-02"}
	w = s.do(http.MethodPatch, "/users/alice", alice, info)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Via Roma 1", decode[models.User](t, w).Address)
	assert.Equal(t, http.StatusUnprocessableEntity, s.do(http.MethodPatch, "/users/alice", alice, gin.H{"name": "Alice"}).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPatch, "/users/alice", alice,
		gin.H{"name": "A", "surname": "B", "address": "C", "birthdate": "2999-01-01"}).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPatch, "/users/alice", bob, info).Code)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/users/boss", boss, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodDelete, "/users/boss", root, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodDelete, "/users/alice", bob, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/users/bob", bob, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/users/bob", root, nil).Code)

	assert.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/users", root, nil).Code)
	w = s.do(http.MethodGet, "/users", root, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.User](t, w), 2)
}

func TestHomeAndHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	w = s.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["message"], `PATCH "/carts"`)
}
