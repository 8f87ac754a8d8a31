// Package catalog talks to the remote product source. The source owns
// the catalog wholesale; we never write to it.
package catalog

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/lamnguyen-ct/storefront/internal/config"
	"github.com/lamnguyen-ct/storefront/internal/models"
	"github.com/lamnguyen-ct/storefront/pkg/util"
)

type Client interface {
	FetchProducts(ctx context.Context) ([]models.Product, error)
}

type client struct {
	http *resty.Client
	url  string
}

func NewClient(cfg *config.Config) Client {
	return &client{
		http: util.NewRestyClient(),
		url:  cfg.Catalog.ProductsURL,
	}
}

type productsResponse struct {
	Data []models.Product `json:"data"`
}

func (c *client) FetchProducts(ctx context.Context) ([]models.Product, error) {
	var out productsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("product source returned status %d", resp.StatusCode())
	}

	// a missing data array is an empty catalog, not an error
	return out.Data, nil
}
