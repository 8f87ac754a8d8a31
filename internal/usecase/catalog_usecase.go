package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lamnguyen-ct/storefront/internal/models"
	"github.com/lamnguyen-ct/storefront/internal/repo/catalog"
	"github.com/lamnguyen-ct/storefront/pkg/util"
)

// Sort keys accepted by the catalog listing. CatalogSortFeatured keeps
// the source order untouched.
const (
	CatalogSortFeatured  = "featured"
	CatalogSortPriceLow  = "price-low"
	CatalogSortPriceHigh = "price-high"
	CatalogSortNameAsc   = "name-asc"
	CatalogSortNameDesc  = "name-desc"
)

// CategoryAll disables category filtering.
const CategoryAll = "all"

type CatalogQuery struct {
	Category string
	Search   string
	Sort     string
}

type CatalogUsecase interface {
	// ListProducts returns the filtered and sorted catalog view plus the
	// category set derived from the full catalog.
	ListProducts(ctx context.Context, query CatalogQuery) ([]models.Product, []string, error)
}

type catalogUsecase struct {
	source catalog.Client
}

func NewCatalogUsecase(source catalog.Client) CatalogUsecase {
	return &catalogUsecase{source: source}
}

func (uc *catalogUsecase) ListProducts(ctx context.Context, query CatalogQuery) ([]models.Product, []string, error) {
	products, err := uc.source.FetchProducts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list products: %w", err)
	}

	categories := Categories(products)
	filtered := FilterProducts(products, query.Category, query.Search)
	return SortProducts(filtered, query.Sort), categories, nil
}

// FilterProducts narrows the list by exact category (CategoryAll or
// empty keeps everything) AND case-insensitive substring search over
// name and description.
func FilterProducts(products []models.Product, category, search string) []models.Product {
	search = strings.ToLower(strings.TrimSpace(search))

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if category != "" && category != CategoryAll && p.Category != category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SortProducts returns a sorted copy; the input order is preserved for
// unknown keys and CatalogSortFeatured.
func SortProducts(products []models.Product, key string) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)

	switch key {
	case CatalogSortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case CatalogSortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case CatalogSortNameAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	case CatalogSortNameDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	}
	return out
}

// Categories lists CategoryAll followed by each distinct category in
// first-seen order.
func Categories(products []models.Product) []string {
	categories := []string{CategoryAll}
	for _, p := range products {
		if p.Category == "" || util.SliceIncludes(categories, p.Category) {
			continue
		}
		categories = append(categories, p.Category)
	}
	return categories
}
