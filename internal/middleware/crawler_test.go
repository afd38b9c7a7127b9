// internal/middleware/crawler_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const (
	facebookUA = "facebookexternalhit/1.1 (+http://www.facebook.com/externalhit_uatext.php)"
	chromeUA   = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 Chrome/120.0 Safari/537.36"
)

func TestIsBotUserAgent(t *testing.T) {
	assert.True(t, IsBotUserAgent(facebookUA))
	assert.True(t, IsBotUserAgent("WhatsApp/2.23.20"))
	assert.True(t, IsBotUserAgent("Mozilla/5.0 (compatible; TelegramBot)"))
	assert.False(t, IsBotUserAgent(chromeUA))
	assert.False(t, IsBotUserAgent(""))
}

func TestRewriteTarget(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		userAgent string
		want      string
		wantOK    bool
	}{
		{"bot on bare username", "/mariasilva", facebookUA, "/og/mariasilva", true},
		{"trailing slash", "/mariasilva/", facebookUA, "/og/mariasilva", true},
		{"browser on bare username", "/mariasilva", chromeUA, "", false},
		{"bot on reserved segment", "/dashboard", facebookUA, "", false},
		{"bot on api route", "/v1", facebookUA, "", false},
		{"bot on nested path", "/mariasilva/products", facebookUA, "", false},
		{"bot on file request", "/favicon.ico", facebookUA, "", false},
		{"bot on root", "/", facebookUA, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RewriteTarget(tt.path, tt.userAgent)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCrawlerRewriteDispatchesToOGRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(CrawlerRewrite(r))
	r.GET("/og/:username", func(c *gin.Context) {
		c.String(http.StatusOK, "og:"+c.Param("username"))
	})

	req := httptest.NewRequest("GET", "/mariasilva", nil)
	req.Header.Set("User-Agent", facebookUA)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "og:mariasilva", w.Body.String())
}

func TestCrawlerRewritePassesThroughBrowsers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(CrawlerRewrite(r))
	r.GET("/og/:username", func(c *gin.Context) {
		c.String(http.StatusOK, "og:"+c.Param("username"))
	})
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// Browser request for a username path is not rewritten; with no matching
	// route registered it falls through to 404.
	req := httptest.NewRequest("GET", "/mariasilva", nil)
	req.Header.Set("User-Agent", chromeUA)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Bot request for a reserved path keeps its original handler.
	req = httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("User-Agent", facebookUA)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", w.Body.String())
}
