package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"realty-client/internal/models"
	"realty-client/services/bidding/helpers"
)

var (
	testBuyer  = models.User{ID: 20, Username: "buyer", FullName: "Buyer", Role: models.RoleBuyer}
	testSeller = models.User{ID: 10, Username: "seller", FullName: "Seller", Role: models.RoleSeller}
)

// asUser stands in for the auth middleware
func asUser(u models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		helpers.SetCurrentUser(c, u)
		c.Next()
	}
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter() *gin.Engine {
	return gin.New()
}

// jsonBody accepts a raw string or any value to marshal
func jsonBody(t *testing.T, body any) io.Reader {
	t.Helper()
	if s, ok := body.(string); ok {
		return bytes.NewBufferString(s)
	}
	b, err := json.Marshal(body)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func doRequest(t *testing.T, router http.Handler, method, path string, body io.Reader, contentType string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w, resp
}
