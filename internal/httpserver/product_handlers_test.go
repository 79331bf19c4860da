package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/basciYusuf/e-commerce/internal/hash"
	"github.com/basciYusuf/e-commerce/internal/models"
	"github.com/basciYusuf/e-commerce/internal/repo"
	"github.com/basciYusuf/e-commerce/internal/service"
	"github.com/basciYusuf/e-commerce/internal/transport"
)

var testSecret = []byte("test-secret")

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.User{}))

	r := repo.NewGormRepo(db)
	e := echo.New()
	Register(e, &Deps{
		AuthHandler:    &AuthHTTP{Svc: &service.AuthService{Repo: r, JWTSecret: testSecret}},
		CatalogHandler: &CatalogHTTP{Svc: &service.CatalogService{Repo: r}},
		JWTSecret:      testSecret,
	})

	return &testEnv{T: t, E: e, DB: db}
}

func (env *testEnv) doJSON(method, path string, body any, token string) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func bearerToken(t *testing.T) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   uint(1),
		"email": "admin@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func TestListProductsEnvelope(t *testing.T) {
	env := newTestEnv(t)
	for i := 1; i <= 12; i++ {
		require.NoError(t, env.DB.Create(&models.Product{
			Name:        fmt.Sprintf("product %02d", i),
			Price:       float64(i),
			Description: "desc",
		}).Error)
	}

	rec := env.doJSON(http.MethodGet, "/products?limit=5", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page transport.ProductPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Data, 5)
	require.EqualValues(t, 12, page.Total)
}

func TestListProductsUnknownSortFieldIsRejected(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(http.MethodGet, "/products?sortBy=password_hash", nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp transport.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp.Fields, "sortBy")
}

func TestMutationsRequireBearerToken(t *testing.T) {
	env := newTestEnv(t)
	body := transport.CreateProductRequest{Name: "Widget", Price: 9.99, Description: "desc"}

	rec := env.doJSON(http.MethodPost, "/products", body, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.doJSON(http.MethodPost, "/products", body, "not-a-token")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.doJSON(http.MethodPut, "/products/1", body, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.doJSON(http.MethodDelete, "/products/1", nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Reads stay open.
	rec = env.doJSON(http.MethodGet, "/products", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateProductValidationResponse(t *testing.T) {
	env := newTestEnv(t)
	token := bearerToken(t)

	rec := env.doJSON(http.MethodPost, "/products", transport.CreateProductRequest{}, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp transport.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp.Fields, "name")
	require.Contains(t, resp.Fields, "price")
	require.Contains(t, resp.Fields, "description")
}

func TestProductCRUDFlow(t *testing.T) {
	env := newTestEnv(t)
	token := bearerToken(t)

	rec := env.doJSON(http.MethodPost, "/products", transport.CreateProductRequest{
		Name:        "Widget",
		Price:       9.99,
		Description: "desc",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.ID)
	require.Equal(t, 9.99, created.Price)

	path := fmt.Sprintf("/products/%d", created.ID)

	rec = env.doJSON(http.MethodPut, path, map[string]any{"price": 19.99}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, 19.99, got.Price)
	require.Equal(t, "Widget", got.Name)

	rec = env.doJSON(http.MethodDelete, path, nil, token)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.doJSON(http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetProductNotFoundAndBadID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(http.MethodGet, "/products/99999", nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.doJSON(http.MethodGet, "/products/abc", nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteProductNotFound(t *testing.T) {
	env := newTestEnv(t)
	token := bearerToken(t)

	rec := env.doJSON(http.MethodDelete, "/products/99999", nil, token)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func seedEnvUser(t *testing.T, env *testEnv, email, password string) {
	t.Helper()
	pwHash, err := hash.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, env.DB.Create(&models.User{Email: email, PasswordHash: pwHash}).Error)
}

func TestLoginEndpoint(t *testing.T) {
	env := newTestEnv(t)
	seedEnvUser(t, env, "admin@example.com", "secret")

	rec := env.doJSON(http.MethodPost, "/auth/login", transport.LoginRequest{
		Email:    "admin@example.com",
		Password: "secret",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)

	// The issued token passes the gate.
	created := env.doJSON(http.MethodPost, "/products", transport.CreateProductRequest{
		Name:        "Widget",
		Price:       9.99,
		Description: "desc",
	}, resp.AccessToken)
	require.Equal(t, http.StatusCreated, created.Code)
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	env := newTestEnv(t)
	seedEnvUser(t, env, "admin@example.com", "secret")

	wrongPassword := env.doJSON(http.MethodPost, "/auth/login", transport.LoginRequest{
		Email:    "admin@example.com",
		Password: "nope",
	}, "")
	unknownEmail := env.doJSON(http.MethodPost, "/auth/login", transport.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret",
	}, "")

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	require.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}
