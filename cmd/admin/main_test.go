package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"minis-storefront/internal/models"
)

func fakeAPI(t *testing.T) *httptest.Server {
	completed := false
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/admin/auth", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.LoginResponse{Success: true, Token: "tok"})
	})
	mux.HandleFunc("GET /api/admin/orders", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.OrderListResponse{Orders: []models.Order{
			{ID: "cs_1-li_1", SKU: "01001", ProductName: "Ogre Chieftain", Price: "12.99", Completed: completed},
		}})
	})
	mux.HandleFunc("PATCH /api/admin/orders", func(w http.ResponseWriter, r *http.Request) {
		var req models.UpdateOrderRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		completed = *req.Completed
		_ = json.NewEncoder(w).Encode(models.SuccessResponse{Success: true})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	var out bytes.Buffer
	argv := append([]string{"minis-admin", "--url", srv.URL, "--password", "pw"}, args...)
	err := newApp(&out).Run(argv)
	return out.String(), err
}

func TestOrdersList(t *testing.T) {
	srv := fakeAPI(t)

	out, err := run(t, srv, "orders", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "cs_1-li_1")
	assert.Contains(t, out, "Ogre Chieftain")
}

func TestOrdersToggle(t *testing.T) {
	srv := fakeAPI(t)

	out, err := run(t, srv, "orders", "toggle", "cs_1-li_1")
	require.NoError(t, err)
	assert.Contains(t, out, "true")
}

func TestOrdersToggle_RequiresID(t *testing.T) {
	srv := fakeAPI(t)

	_, err := run(t, srv, "orders", "toggle")
	assert.Error(t, err)
}
