package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/omnistock/backend/internal/application/catalog"
	"github.com/omnistock/backend/internal/domain/catalog"
	"github.com/omnistock/backend/internal/interfaces/http/dto"
)

func setupProductRouter(repo *stubProductRepo) *gin.Engine {
	service := catalogapp.NewProductService(repo)
	h := NewProductHandler(service)

	engine := gin.New()
	engine.POST("/products", h.Create)
	engine.GET("/products", h.List)
	engine.GET("/products/:id", h.GetByID)
	engine.GET("/products/sku/:sku", h.GetBySKU)
	engine.PUT("/products/:id", h.Update)
	engine.DELETE("/products/:id", h.Delete)
	return engine
}

func doJSON(engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestProductHandler_Create(t *testing.T) {
	t.Run("should create product", func(t *testing.T) {
		engine := setupProductRouter(newStubProductRepo())

		w := doJSON(engine, http.MethodPost, "/products", gin.H{
			"sku":  "TEE-001",
			"name": "Organic Cotton Tee",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)
		data := resp.Data.(map[string]any)
		assert.Equal(t, "TEE-001", data["sku"])
	})

	t.Run("should reject missing sku", func(t *testing.T) {
		engine := setupProductRouter(newStubProductRepo())

		w := doJSON(engine, http.MethodPost, "/products", gin.H{"name": "No SKU"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should reject duplicate sku", func(t *testing.T) {
		repo := newStubProductRepo()
		engine := setupProductRouter(repo)

		first := doJSON(engine, http.MethodPost, "/products", gin.H{"sku": "TEE-001", "name": "First"})
		require.Equal(t, http.StatusCreated, first.Code)

		w := doJSON(engine, http.MethodPost, "/products", gin.H{"sku": "TEE-001", "name": "Second"})

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := decodeResponse(t, w)
		assert.False(t, resp.Success)
	})
}

func TestProductHandler_GetByID(t *testing.T) {
	t.Run("should return product", func(t *testing.T) {
		repo := newStubProductRepo()
		product, err := catalog.NewProduct("MUG-001", "Ceramic Mug")
		require.NoError(t, err)
		require.NoError(t, repo.Save(t.Context(), product))
		engine := setupProductRouter(repo)

		w := doJSON(engine, http.MethodGet, "/products/"+product.ID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]any)
		assert.Equal(t, "MUG-001", data["sku"])
	})

	t.Run("should return 404 for unknown product", func(t *testing.T) {
		engine := setupProductRouter(newStubProductRepo())

		w := doJSON(engine, http.MethodGet, "/products/"+uuid.NewString(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("should return 400 for malformed id", func(t *testing.T) {
		engine := setupProductRouter(newStubProductRepo())

		w := doJSON(engine, http.MethodGet, "/products/not-a-uuid", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProductHandler_GetBySKU(t *testing.T) {
	repo := newStubProductRepo()
	product, err := catalog.NewProduct("MUG-001", "Ceramic Mug")
	require.NoError(t, err)
	require.NoError(t, repo.Save(t.Context(), product))
	engine := setupProductRouter(repo)

	t.Run("should return product by sku", func(t *testing.T) {
		w := doJSON(engine, http.MethodGet, "/products/sku/MUG-001", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("should return 404 for unknown sku", func(t *testing.T) {
		w := doJSON(engine, http.MethodGet, "/products/sku/NOPE", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProductHandler_List(t *testing.T) {
	repo := newStubProductRepo()
	for _, sku := range []string{"A-001", "B-002"} {
		product, err := catalog.NewProduct(sku, "Product "+sku)
		require.NoError(t, err)
		require.NoError(t, repo.Save(t.Context(), product))
	}
	engine := setupProductRouter(repo)

	w := doJSON(engine, http.MethodGet, "/products?page=1&page_size=10", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(2), resp.Meta.Total)
}

func TestProductHandler_Update(t *testing.T) {
	repo := newStubProductRepo()
	product, err := catalog.NewProduct("TEE-001", "Organic Cotton Tee")
	require.NoError(t, err)
	require.NoError(t, repo.Save(t.Context(), product))
	engine := setupProductRouter(repo)

	w := doJSON(engine, http.MethodPut, "/products/"+product.ID.String(), gin.H{
		"name": "Organic Cotton Tee v2",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "Organic Cotton Tee v2", data["name"])
}

func TestProductHandler_Delete(t *testing.T) {
	repo := newStubProductRepo()
	product, err := catalog.NewProduct("TEE-001", "Organic Cotton Tee")
	require.NoError(t, err)
	require.NoError(t, repo.Save(t.Context(), product))
	engine := setupProductRouter(repo)

	w := doJSON(engine, http.MethodDelete, "/products/"+product.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	_, err = repo.FindByID(t.Context(), product.ID)
	assert.Error(t, err)
}
