package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lamnguyen-ct/storefront/internal/usecase"
)

type Controller interface {
	ListProducts(c echo.Context) error
	Health(c echo.Context) error
}

type controller struct {
	catalogUsecase usecase.CatalogUsecase
}

func NewController(catalogUsecase usecase.CatalogUsecase) Controller {
	return &controller{
		catalogUsecase: catalogUsecase,
	}
}

type ListProductsRequest struct {
	Category string `query:"category"`
	Search   string `query:"q"`
	Sort     string `query:"sort"`
	// View is a pure presentation hint, echoed back untouched.
	View string `query:"view"`
}

func (h *controller) ListProducts(c echo.Context) error {
	var req ListProductsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if req.View == "" {
		req.View = "grid"
	}

	ctx := c.Request().Context()
	products, categories, err := h.catalogUsecase.ListProducts(ctx, usecase.CatalogQuery{
		Category: req.Category,
		Search:   req.Search,
		Sort:     req.Sort,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "Error fetching products")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data":       products,
		"categories": categories,
		"view":       req.View,
	})
}

func (h *controller) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "storefront",
	})
}
