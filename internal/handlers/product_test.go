package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loftmebel/backend/internal/models"
	"github.com/loftmebel/backend/internal/services"
	"github.com/loftmebel/backend/internal/utils"
)

// fakeCatalog serves canned products so handler behavior can be tested
// without a database.
type fakeCatalog struct {
	products []models.Product
	prices   map[uint]float64
}

func (f *fakeCatalog) List(filters services.ProductFilters, page int) (utils.Page, error) {
	start := utils.PageOffset(page, utils.DefaultPageSize)
	end := start + utils.DefaultPageSize
	if start > len(f.products) {
		start = len(f.products)
	}
	if end > len(f.products) {
		end = len(f.products)
	}
	return utils.NewPage(f.products[start:end], int64(len(f.products)), page, utils.DefaultPageSize), nil
}

func (f *fakeCatalog) Retrieve(key string) (*models.Product, error) {
	for i := range f.products {
		if f.products[i].Slug == key {
			return &f.products[i], nil
		}
	}
	return nil, services.ErrProductNotFound
}

func (f *fakeCatalog) Top(filters services.ProductFilters, n int) ([]models.Product, error) {
	if n > len(f.products) {
		n = len(f.products)
	}
	return f.products[:n], nil
}

func (f *fakeCatalog) Discounted(filters services.ProductFilters, page int, asOf time.Time) (utils.Page, error) {
	discounted := []models.Product{}
	for _, p := range f.products {
		if _, ok := f.prices[p.ID]; ok {
			discounted = append(discounted, p)
		}
	}
	return utils.NewPage(discounted, int64(len(discounted)), page, utils.DefaultPageSize), nil
}

func (f *fakeCatalog) Recommended(productID uint, limit int) ([]models.Product, error) {
	for _, p := range f.products {
		if p.ID == productID {
			return nil, nil
		}
	}
	return nil, services.ErrProductNotFound
}

func (f *fakeCatalog) Latest(limit int) ([]models.Product, error) {
	if limit > len(f.products) {
		limit = len(f.products)
	}
	return f.products[:limit], nil
}

func (f *fakeCatalog) DiscountedPrices(products []models.Product, asOf time.Time) (map[uint]float64, error) {
	return f.prices, nil
}

func catalogFixture(count int) *fakeCatalog {
	products := make([]models.Product, count)
	for i := range products {
		products[i] = models.Product{
			BaseModel: models.BaseModel{ID: uint(i + 1)},
			Title:     "Product",
			Slug:      "product-" + string(rune('a'+i)),
			Price:     100,
		}
	}
	return &fakeCatalog{products: products, prices: map[uint]float64{1: 80}}
}

func productRouter(catalog *fakeCatalog) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewProductHandler(catalog, 20, 4, 4)

	r := gin.New()
	r.GET("/products/", h.List)
	r.GET("/products/top/", h.Top)
	r.GET("/products/discounted/", h.Discounted)
	r.GET("/products/latest/", h.Latest)
	r.GET("/products/:key/", h.Retrieve)
	r.GET("/products/:key/recommended/", h.Recommended)
	return r
}

func doGet(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest("GET", path, nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProductListPagination(t *testing.T) {
	r := productRouter(catalogFixture(15))

	w := doGet(t, r, "/products/")
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Count    int64             `json:"count"`
		Next     *int              `json:"next"`
		Previous *int              `json:"previous"`
		Results  []ProductResponse `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(15), page.Count)
	assert.Len(t, page.Results, 10)
	require.NotNil(t, page.Next)
	assert.Equal(t, 2, *page.Next)
	assert.Nil(t, page.Previous)
}

func TestProductListDiscountAnnotation(t *testing.T) {
	r := productRouter(catalogFixture(3))

	w := doGet(t, r, "/products/")
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Results []ProductResponse `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Results, 3)

	require.NotNil(t, page.Results[0].DiscountedPrice)
	assert.Equal(t, 80.0, *page.Results[0].DiscountedPrice)
	assert.Nil(t, page.Results[1].DiscountedPrice)
}

func TestProductListOutOfRangePage(t *testing.T) {
	r := productRouter(catalogFixture(15))

	w := doGet(t, r, "/products/?page=9")
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Count   int64             `json:"count"`
		Results []ProductResponse `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(15), page.Count)
	assert.Empty(t, page.Results)
}

func TestProductListBadFilter(t *testing.T) {
	r := productRouter(catalogFixture(3))

	w := doGet(t, r, "/products/?min_price=cheap")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductRetrieveBySlug(t *testing.T) {
	r := productRouter(catalogFixture(3))

	w := doGet(t, r, "/products/product-b/")
	require.Equal(t, http.StatusOK, w.Code)

	var detail ProductDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, uint(2), detail.ID)
}

func TestProductRetrieveUnknown(t *testing.T) {
	r := productRouter(catalogFixture(3))

	w := doGet(t, r, "/products/no-such-product/")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecommendedRejectsNonNumericID(t *testing.T) {
	r := productRouter(catalogFixture(3))

	w := doGet(t, r, "/products/product-a/recommended/")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecommendedUnknownID(t *testing.T) {
	r := productRouter(catalogFixture(3))

	w := doGet(t, r, "/products/999/recommended/")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLatestReturnsConfiguredCount(t *testing.T) {
	r := productRouter(catalogFixture(8))

	w := doGet(t, r, "/products/latest/")
	require.Equal(t, http.StatusOK, w.Code)

	var results []ProductResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	assert.Len(t, results, 4)
}
