package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamnguyen-ct/storefront/internal/config"
)

func newTestClient(url string) Client {
	cfg := &config.Config{}
	cfg.Catalog.ProductsURL = url
	return NewClient(cfg)
}

func TestFetchProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"_id":"p1","name":"Red Shirt","description":"A red shirt","price":19.99,"category":"apparel","image":"https://img/p1.jpg"},
			{"_id":"p2","name":"Blue Mug","description":"A blue mug","price":9.5,"category":"kitchen","image":"https://img/p2.jpg"}
		]}`))
	}))
	defer srv.Close()

	products, err := newTestClient(srv.URL).FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, "Red Shirt", products[0].Name)
	assert.Equal(t, 19.99, products[0].Price)
	assert.Equal(t, "kitchen", products[1].Category)
}

func TestFetchProductsMissingDataField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	products, err := newTestClient(srv.URL).FetchProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestFetchProductsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	products, err := newTestClient(srv.URL).FetchProducts(context.Background())
	assert.Error(t, err)
	assert.Empty(t, products)
}
