package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newSwaggerRouter(cfg SwaggerConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/swagger/*any", SwaggerProtection(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "swagger"})
	})
	return router
}

func requestSwagger(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/swagger/index.html", nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	router.ServeHTTP(w, req)
	return w
}

func TestSwaggerProtection_Disabled(t *testing.T) {
	router := newSwaggerRouter(SwaggerConfig{Enabled: false})

	w := requestSwagger(router, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestSwaggerProtection_Enabled_NoRestrictions(t *testing.T) {
	router := newSwaggerRouter(SwaggerConfig{Enabled: true})

	w := requestSwagger(router, "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSwaggerProtection_Allowlist(t *testing.T) {
	router := newSwaggerRouter(SwaggerConfig{
		Enabled:    true,
		AllowedIPs: []string{"127.0.0.1"},
	})

	t.Run("should allow listed address", func(t *testing.T) {
		w := requestSwagger(router, "127.0.0.1:12345")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("should deny unlisted address", func(t *testing.T) {
		w := requestSwagger(router, "192.168.1.1:12345")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "forbidden")
	})
}

func TestSwaggerProtection_CIDRAllowlist(t *testing.T) {
	router := newSwaggerRouter(SwaggerConfig{
		Enabled:    true,
		AllowedIPs: []string{"10.0.0.0/8"},
	})

	t.Run("should allow address inside range", func(t *testing.T) {
		w := requestSwagger(router, "10.50.100.200:12345")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("should deny address outside range", func(t *testing.T) {
		w := requestSwagger(router, "192.168.1.1:12345")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestIPAllowed(t *testing.T) {
	tests := []struct {
		name        string
		ip          string
		allowedIPs  []string
		allowedCIDR []string
		want        bool
	}{
		{
			name:       "exact IP match",
			ip:         "192.168.1.1",
			allowedIPs: []string{"192.168.1.1"},
			want:       true,
		},
		{
			name:       "no match",
			ip:         "192.168.1.2",
			allowedIPs: []string{"192.168.1.1"},
			want:       false,
		},
		{
			name:        "CIDR match",
			ip:          "10.0.0.5",
			allowedCIDR: []string{"10.0.0.0/8"},
			want:        true,
		},
		{
			name:        "CIDR no match",
			ip:          "11.0.0.5",
			allowedCIDR: []string{"10.0.0.0/8"},
			want:        false,
		},
		{
			name:       "localhost IPv4",
			ip:         "127.0.0.1",
			allowedIPs: []string{"127.0.0.1"},
			want:       true,
		},
		{
			name:       "IPv6 localhost",
			ip:         "::1",
			allowedIPs: []string{"::1"},
			want:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var allowedIPs []net.IP
			for _, ipStr := range tt.allowedIPs {
				if ip := net.ParseIP(ipStr); ip != nil {
					allowedIPs = append(allowedIPs, ip)
				}
			}

			var allowedNets []*net.IPNet
			for _, cidr := range tt.allowedCIDR {
				if _, network, err := net.ParseCIDR(cidr); err == nil {
					allowedNets = append(allowedNets, network)
				}
			}

			got := ipAllowed(net.ParseIP(tt.ip), allowedIPs, allowedNets)
			assert.Equal(t, tt.want, got)
		})
	}
}
