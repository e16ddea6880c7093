package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/loftmebel/backend/internal/models"
	"github.com/loftmebel/backend/internal/services"
	"github.com/loftmebel/backend/internal/utils"
)

// CatalogProvider is the slice of the catalog service the product handler
// needs.
type CatalogProvider interface {
	List(filters services.ProductFilters, page int) (utils.Page, error)
	Retrieve(key string) (*models.Product, error)
	Top(filters services.ProductFilters, n int) ([]models.Product, error)
	Discounted(filters services.ProductFilters, page int, asOf time.Time) (utils.Page, error)
	Recommended(productID uint, limit int) ([]models.Product, error)
	Latest(limit int) ([]models.Product, error)
	DiscountedPrices(products []models.Product, asOf time.Time) (map[uint]float64, error)
}

type ProductHandler struct {
	catalog          CatalogProvider
	topCount         int
	recommendedCount int
	latestCount      int
}

func NewProductHandler(catalog CatalogProvider, topCount, recommendedCount, latestCount int) *ProductHandler {
	return &ProductHandler{
		catalog:          catalog,
		topCount:         topCount,
		recommendedCount: recommendedCount,
		latestCount:      latestCount,
	}
}

// ProductResponse is the listing payload: the product plus its discount
// annotation. DiscountedPrice stays null when no discount applies, which is
// different from a 0% discount.
type ProductResponse struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Photo           string    `json:"photo"`
	Price           float64   `json:"price"`
	DiscountedPrice *float64  `json:"discounted_price"`
	AverageRating   *float64  `json:"average_rating"`
	CategoryID      *uint     `json:"category_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ProductDetailResponse adds the detail-page fields.
type ProductDetailResponse struct {
	ProductResponse
	Description     string                  `json:"description"`
	Category        *models.Category        `json:"category,omitempty"`
	Colors          []models.Color          `json:"colors"`
	Sizes           []models.Size           `json:"sizes"`
	Photos          []models.Photo          `json:"photos"`
	Characteristics []models.Characteristic `json:"characteristics"`
}

// mapProducts joins products with their discount annotations.
func mapProducts(products []models.Product, prices map[uint]float64) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ProductResponse{
			ID:            p.ID,
			Title:         p.Title,
			Slug:          p.Slug,
			Photo:         p.Photo,
			Price:         p.Price,
			AverageRating: p.AverageRating,
			CategoryID:    p.CategoryID,
			CreatedAt:     p.CreatedAt,
		}
		if price, ok := prices[p.ID]; ok {
			value := price
			responses[i].DiscountedPrice = &value
		}
	}
	return responses
}

func (h *ProductHandler) toResponses(products []models.Product) ([]ProductResponse, error) {
	prices, err := h.catalog.DiscountedPrices(products, time.Now())
	if err != nil {
		return nil, err
	}
	return mapProducts(products, prices), nil
}

func (h *ProductHandler) pageToResponses(page utils.Page) (utils.Page, error) {
	products, ok := page.Results.([]models.Product)
	if !ok {
		return page, nil
	}
	responses, err := h.toResponses(products)
	if err != nil {
		return utils.Page{}, err
	}
	page.Results = responses
	return page, nil
}

// GET /products/
func (h *ProductHandler) List(c *gin.Context) {
	filters, err := services.ParseProductFilters(c.Request.URL.Query())
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	page, err := h.catalog.List(filters, utils.PageFromQuery(c))
	if err != nil {
		utils.InternalErrorResponse(c)
		return
	}

	page, err = h.pageToResponses(page)
	if err != nil {
		utils.InternalErrorResponse(c)
		return
	}
	utils.SuccessResponse(c, page)
}

// GET /products/:key/
func (h *ProductHandler) Retrieve(c *gin.Context) {
	product, err := h.catalog.Retrieve(c.Param("key"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c)
			return
		}
		utils.InternalErrorResponse(c)
		return
	}

	responses, err := h.toResponses([]models.Product{*product})
	if err != nil {
		utils.InternalErrorResponse(c)
		return
	}

	detail := ProductDetailResponse{
		ProductResponse: responses[0],
		Description:     product.Description,
		Category:        product.Category,
		Colors:          product.Colors,
		Sizes:           product.Sizes,
		Photos:          product.Photos,
		Characteristics: product.Characteristics,
	}
	utils.SuccessResponse(c, detail)
}

// GET /products/top/
func (h *ProductHandler) Top(c *gin.Context) {
	filters, err := services.ParseProductFilters(c.Request.URL.Query())
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	products, err := h.catalog.Top(filters, h.topCount)
	if err != nil {
		utils.InternalErrorResponse(c)
		return
	}

	responses, err := h.toResponses(products)
	if err != nil {
		utils.InternalErrorResponse(c)
		return
	}
	utils.SuccessResponse(c, responses)
}

// GET /products/discounted/
func (h *ProductHandler) Discounted(c *gin.Context) {
	filters, err := services.ParseProductFilters(c.Request.URL.Query())
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	page, err := h.catalog.Discounted(filters, utils.PageFromQuery(c), time.Now())
	if err != nil {
		utils.InternalErrorResponse(c)
		return
	}

	page, err = h.pageToResponses(page)
	if err != nil {
		utils.InternalErrorResponse(c)
		return
	}
	utils.SuccessResponse(c, page)
}

// GET /products/:key/recommended/ (numeric ids only)
func (h *ProductHandler) Recommended(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("key"), 10, 64)
	if err != nil {
		utils.NotFoundResponse(c)
		return
	}

	products, err := h.catalog.Recommended(uint(id), h.recommendedCount)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c)
			return
		}
		utils.InternalErrorResponse(c)
		return
	}

	responses, err := h.toResponses(products)
	if err != nil {
		utils.InternalErrorResponse(c)
		return
	}
	utils.SuccessResponse(c, responses)
}

// GET /products/latest/
func (h *ProductHandler) Latest(c *gin.Context) {
	products, err := h.catalog.Latest(h.latestCount)
	if err != nil {
		utils.InternalErrorResponse(c)
		return
	}

	responses, err := h.toResponses(products)
	if err != nil {
		utils.InternalErrorResponse(c)
		return
	}
	utils.SuccessResponse(c, responses)
}
