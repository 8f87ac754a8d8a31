package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamnguyen-ct/storefront/internal/models"
)

func TestListProductsPassesQueryThrough(t *testing.T) {
	catalog := &mockCatalogUsecase{
		products:   []models.Product{{ID: "p1", Name: "Red Shirt", Category: "apparel"}},
		categories: []string{"all", "apparel"},
	}
	ctrl := NewController(catalog)
	e := newTestEcho()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=apparel&q=red&sort=price-low&view=list", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, ctrl.ListProducts(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "apparel", catalog.gotQuery.Category)
	assert.Equal(t, "red", catalog.gotQuery.Search)
	assert.Equal(t, "price-low", catalog.gotQuery.Sort)

	var resp struct {
		Data       []models.Product `json:"data"`
		Categories []string         `json:"categories"`
		View       string           `json:"view"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Red Shirt", resp.Data[0].Name)
	assert.Equal(t, []string{"all", "apparel"}, resp.Categories)
	assert.Equal(t, "list", resp.View)
}

func TestListProductsSourceFailure(t *testing.T) {
	ctrl := NewController(&mockCatalogUsecase{err: errors.New("upstream down")})
	e := newTestEcho()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()

	err := ctrl.ListProducts(e.NewContext(req, rec))
	assertHTTPError(t, err, http.StatusBadGateway)
}

func TestHealth(t *testing.T) {
	ctrl := NewController(&mockCatalogUsecase{})
	e := newTestEcho()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, ctrl.Health(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}
