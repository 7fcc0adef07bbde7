package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	r := NewRouter(gin.New(), WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterRegister(t *testing.T) {
	r := NewRouter(gin.New())

	r.Register(NewDomainGroup("inventory", "/inventory"))

	assert.Len(t, r.registrars, 1)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	group := NewDomainGroup("inventory", "/inventory")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	r.Register(group)
	r.Setup()

	w := serve(engine, "GET", "/api/v1/inventory/ping")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestDomainGroup(t *testing.T) {
	t.Run("should carry name and prefix", func(t *testing.T) {
		g := NewDomainGroup("catalog", "/catalog")

		assert.Equal(t, "catalog", g.Name())
		assert.Equal(t, "/catalog", g.Prefix())
	})

	t.Run("should register each HTTP method", func(t *testing.T) {
		tests := []struct {
			method     string
			path       string
			wantStatus int
		}{
			{"GET", "/items", http.StatusOK},
			{"POST", "/items", http.StatusCreated},
			{"PUT", "/items/123", http.StatusOK},
			{"PATCH", "/items/123", http.StatusOK},
			{"DELETE", "/items/123", http.StatusNoContent},
		}

		for _, tt := range tests {
			t.Run(tt.method, func(t *testing.T) {
				engine := gin.New()
				g := NewDomainGroup("catalog", "/catalog")
				status := tt.wantStatus
				handler := func(c *gin.Context) { c.String(status, "") }

				routePath := "/items"
				if tt.method != "GET" && tt.method != "POST" {
					routePath = "/items/:id"
				}
				switch tt.method {
				case "GET":
					g.GET(routePath, handler)
				case "POST":
					g.POST(routePath, handler)
				case "PUT":
					g.PUT(routePath, handler)
				case "PATCH":
					g.PATCH(routePath, handler)
				case "DELETE":
					g.DELETE(routePath, handler)
				}

				g.RegisterRoutes(engine.Group("/api/v1"))

				w := serve(engine, tt.method, "/api/v1/catalog"+tt.path)
				assert.Equal(t, tt.wantStatus, w.Code)
			})
		}
	})

	t.Run("should apply group middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("catalog", "/catalog")

		g.Use(func(c *gin.Context) {
			c.Header("X-Test-Middleware", "applied")
			c.Next()
		})
		g.GET("/items", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		g.RegisterRoutes(engine.Group("/api/v1"))

		w := serve(engine, "GET", "/api/v1/catalog/items")
		assert.Equal(t, "applied", w.Header().Get("X-Test-Middleware"))
	})

	t.Run("should mount subgroups under the parent prefix", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("catalog", "/catalog")

		products := g.Group("products", "/products")
		products.GET("", func(c *gin.Context) {
			c.String(http.StatusOK, "products list")
		})

		bundles := g.Group("bundles", "/bundles")
		bundles.GET("", func(c *gin.Context) {
			c.String(http.StatusOK, "bundles list")
		})

		g.RegisterRoutes(engine.Group("/api/v1"))

		w := serve(engine, "GET", "/api/v1/catalog/products")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "products list", w.Body.String())

		w = serve(engine, "GET", "/api/v1/catalog/bundles")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "bundles list", w.Body.String())
	})
}

func TestMultipleDomainGroups(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	catalog := NewDomainGroup("catalog", "/catalog")
	catalog.GET("/products", func(c *gin.Context) {
		c.String(http.StatusOK, "products")
	})

	channel := NewDomainGroup("channel", "/channel")
	channel.GET("/mappings", func(c *gin.Context) {
		c.String(http.StatusOK, "mappings")
	})

	r.Register(catalog).Register(channel)
	r.Setup()

	w := serve(engine, "GET", "/api/v1/catalog/products")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "products", w.Body.String())

	w = serve(engine, "GET", "/api/v1/channel/mappings")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mappings", w.Body.String())
}

func TestChainedMethodCalls(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	g := NewDomainGroup("inventory", "/inventory")
	g.GET("/a", func(c *gin.Context) { c.String(http.StatusOK, "a") }).
		POST("/b", func(c *gin.Context) { c.String(http.StatusOK, "b") }).
		PUT("/c", func(c *gin.Context) { c.String(http.StatusOK, "c") })

	r.Register(g).Setup()

	for _, tt := range []struct {
		method string
		path   string
	}{
		{"GET", "/api/v1/inventory/a"},
		{"POST", "/api/v1/inventory/b"},
		{"PUT", "/api/v1/inventory/c"},
	} {
		w := serve(engine, tt.method, tt.path)
		assert.Equal(t, http.StatusOK, w.Code, "route %s %s should be registered", tt.method, tt.path)
	}
}
