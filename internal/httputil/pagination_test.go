package httputil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/storefront/internal/httputil"
)

func TestParsePage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		query    string
		expected httputil.Page
		errorMsg string
	}{
		{name: "defaults", query: "", expected: httputil.Page{Offset: 0, Limit: 50}},
		{name: "explicit window", query: "offset=40&limit=20", expected: httputil.Page{Offset: 40, Limit: 20}},
		{name: "largest limit", query: "limit=100", expected: httputil.Page{Offset: 0, Limit: 100}},
		{name: "negative offset", query: "offset=-1", errorMsg: "offset"},
		{name: "zero limit", query: "limit=0", errorMsg: "limit"},
		{name: "negative limit", query: "limit=-3", errorMsg: "limit"},
		{name: "limit above maximum", query: "limit=101", errorMsg: "limit"},
		{name: "offset not a number", query: "offset=abc", errorMsg: "invalid pagination parameters"},
		{name: "limit not a number", query: "limit=ten", errorMsg: "invalid pagination parameters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/v1/products?"+tt.query, nil)

			page, err := httputil.ParsePage(c)

			if tt.errorMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Equal(t, httputil.Page{}, page)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, page)
		})
	}
}
