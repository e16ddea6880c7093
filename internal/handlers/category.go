package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/loftmebel/backend/internal/models"
	"github.com/loftmebel/backend/internal/services"
	"github.com/loftmebel/backend/internal/utils"
)

// CategoryProvider resolves identifiers and answers category-scoped queries.
type CategoryProvider interface {
	Resolve(key string) (*models.Category, error)
	ListRoots() ([]models.Category, error)
	PriceRange(category *models.Category, filters services.ProductFilters) (float64, float64, error)
}

// CategoryCatalog lists products within a category.
type CategoryCatalog interface {
	ListInCategory(category *models.Category, filters services.ProductFilters, page int) (utils.Page, error)
	DiscountedPrices(products []models.Product, asOf time.Time) (map[uint]float64, error)
}

type CategoryHandler struct {
	categories CategoryProvider
	catalog    CategoryCatalog
}

func NewCategoryHandler(categories CategoryProvider, catalog CategoryCatalog) *CategoryHandler {
	return &CategoryHandler{categories: categories, catalog: catalog}
}

// GET /categories/
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.ListRoots()
	if err != nil {
		utils.InternalErrorResponse(c)
		return
	}
	utils.SuccessResponse(c, categories)
}

// GET /categories/:key/products/
func (h *CategoryHandler) Products(c *gin.Context) {
	category, err := h.categories.Resolve(c.Param("key"))
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			utils.NotFoundResponse(c)
			return
		}
		utils.InternalErrorResponse(c)
		return
	}

	filters, err := services.ParseProductFilters(c.Request.URL.Query())
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	page, err := h.catalog.ListInCategory(category, filters, utils.PageFromQuery(c))
	if err != nil {
		utils.InternalErrorResponse(c)
		return
	}

	if products, ok := page.Results.([]models.Product); ok {
		prices, err := h.catalog.DiscountedPrices(products, time.Now())
		if err != nil {
			utils.InternalErrorResponse(c)
			return
		}
		page.Results = mapProducts(products, prices)
	}
	utils.SuccessResponse(c, page)
}

// GET /categories/:key/prices/
func (h *CategoryHandler) Prices(c *gin.Context) {
	category, err := h.categories.Resolve(c.Param("key"))
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			utils.NotFoundResponse(c)
			return
		}
		utils.InternalErrorResponse(c)
		return
	}

	filters, err := services.ParseProductFilters(c.Request.URL.Query())
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	min, max, err := h.categories.PriceRange(category, filters)
	if err != nil {
		utils.InternalErrorResponse(c)
		return
	}
	utils.SuccessResponse(c, gin.H{"min": min, "max": max})
}
