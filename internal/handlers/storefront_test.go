package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loftmebel/backend/internal/models"
	"github.com/loftmebel/backend/internal/services"
)

type fakeStorefront struct {
	banners  []models.Banner
	entries  []models.Wishlist
	feedback []models.Feedback
	known    map[uint]bool
}

func (f *fakeStorefront) Banners() ([]models.Banner, error) {
	return f.banners, nil
}

func (f *fakeStorefront) AddToWishlist(userID *uint, ip string, productID uint) error {
	if !f.known[productID] {
		return services.ErrProductNotFound
	}
	f.entries = append(f.entries, models.Wishlist{IP: ip, UserID: userID, ProductID: productID})
	return nil
}

func (f *fakeStorefront) Wishlist(userID *uint, ip string) ([]models.Wishlist, error) {
	return f.entries, nil
}

func (f *fakeStorefront) CreateReview(productID uint, userID *uint, rating float64, text string) (*models.Review, error) {
	if !f.known[productID] {
		return nil, services.ErrProductNotFound
	}
	return &models.Review{ProductID: productID, UserID: userID, Rating: rating, Text: text}, nil
}

func (f *fakeStorefront) CreateFeedback(feedback *models.Feedback) error {
	f.feedback = append(f.feedback, *feedback)
	return nil
}

type noPrices struct{}

func (noPrices) DiscountedPrices(products []models.Product, asOf time.Time) (map[uint]float64, error) {
	return map[uint]float64{}, nil
}

func storefrontRouter(fake *fakeStorefront) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewStorefrontHandler(fake, noPrices{})

	r := gin.New()
	r.GET("/banners/", h.Banners)
	r.GET("/wishlist/", h.Wishlist)
	r.POST("/wishlist/", h.AddToWishlist)
	r.POST("/products/:key/reviews/", h.CreateReview)
	r.POST("/feedback/", h.CreateFeedback)
	return r
}

func TestBanners(t *testing.T) {
	fake := &fakeStorefront{banners: []models.Banner{{Heading: "Summer sale"}}}
	r := storefrontRouter(fake)

	w := doGet(t, r, "/banners/")
	require.Equal(t, http.StatusOK, w.Code)

	var banners []models.Banner
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &banners))
	require.Len(t, banners, 1)
	assert.Equal(t, "Summer sale", banners[0].Heading)
}

func TestAddToWishlist(t *testing.T) {
	fake := &fakeStorefront{known: map[uint]bool{1: true}}
	r := storefrontRouter(fake)

	w := doPost(t, r, "/wishlist/", gin.H{"product_id": 1})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, fake.entries, 1)
	assert.Nil(t, fake.entries[0].UserID)
	assert.NotEmpty(t, fake.entries[0].IP)
}

func TestAddToWishlistUnknownProduct(t *testing.T) {
	fake := &fakeStorefront{known: map[uint]bool{}}
	r := storefrontRouter(fake)

	w := doPost(t, r, "/wishlist/", gin.H{"product_id": 99})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddToWishlistMissingProductID(t *testing.T) {
	fake := &fakeStorefront{known: map[uint]bool{1: true}}
	r := storefrontRouter(fake)

	w := doPost(t, r, "/wishlist/", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWishlistListsPreloadedProducts(t *testing.T) {
	fake := &fakeStorefront{entries: []models.Wishlist{
		{ProductID: 1, Product: &models.Product{BaseModel: models.BaseModel{ID: 1}, Title: "Loft sofa", Slug: "loft-sofa", Price: 300}},
		{ProductID: 2, Product: &models.Product{BaseModel: models.BaseModel{ID: 2}, Title: "Oak table", Slug: "oak-table", Price: 450}},
	}}
	r := storefrontRouter(fake)

	w := doGet(t, r, "/wishlist/")
	require.Equal(t, http.StatusOK, w.Code)

	var results []ProductResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "loft-sofa", results[0].Slug)
	assert.Equal(t, 450.0, results[1].Price)
}

func TestWishlistSkipsVanishedProducts(t *testing.T) {
	fake := &fakeStorefront{entries: []models.Wishlist{
		{ProductID: 1, Product: &models.Product{BaseModel: models.BaseModel{ID: 1}, Title: "Loft sofa", Slug: "loft-sofa"}},
		{ProductID: 2, Product: nil},
	}}
	r := storefrontRouter(fake)

	w := doGet(t, r, "/wishlist/")
	require.Equal(t, http.StatusOK, w.Code)

	var results []ProductResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, uint(1), results[0].ID)
}

func TestCreateReview(t *testing.T) {
	fake := &fakeStorefront{known: map[uint]bool{5: true}}
	r := storefrontRouter(fake)

	w := doPost(t, r, "/products/5/reviews/", gin.H{"rating": 4, "text": "solid"})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCreateReviewRejectsBadRating(t *testing.T) {
	fake := &fakeStorefront{known: map[uint]bool{5: true}}
	r := storefrontRouter(fake)

	w := doPost(t, r, "/products/5/reviews/", gin.H{"rating": 9})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateReviewNonNumericProduct(t *testing.T) {
	fake := &fakeStorefront{known: map[uint]bool{5: true}}
	r := storefrontRouter(fake)

	w := doPost(t, r, "/products/loft-sofa/reviews/", gin.H{"rating": 4})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateFeedback(t *testing.T) {
	fake := &fakeStorefront{}
	r := storefrontRouter(fake)

	w := doPost(t, r, "/feedback/", gin.H{
		"name":    "Ann",
		"phone":   "+15550101",
		"email":   "ann@example.com",
		"message": "Do you deliver on weekends?",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, fake.feedback, 1)
	assert.Equal(t, "Ann", fake.feedback[0].Name)
}

func TestCreateFeedbackWithoutEmail(t *testing.T) {
	fake := &fakeStorefront{}
	r := storefrontRouter(fake)

	w := doPost(t, r, "/feedback/", gin.H{
		"name":    "Ann",
		"phone":   "+15550101",
		"message": "Call me back please",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, fake.feedback, 1)
	assert.Empty(t, fake.feedback[0].Email)
}

func TestCreateFeedbackValidation(t *testing.T) {
	fake := &fakeStorefront{}
	r := storefrontRouter(fake)

	w := doPost(t, r, "/feedback/", gin.H{"name": "Ann", "email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
