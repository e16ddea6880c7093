package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/loftmebel/backend/internal/models"
	"github.com/loftmebel/backend/internal/utils"
)

// ErrProductNotFound is returned when an identifier resolves to nothing.
var ErrProductNotFound = errors.New("product not found")

// CatalogService composes the filter pipeline, discount resolution and
// rating aggregation into the listing queries.
type CatalogService struct {
	db        *gorm.DB
	discounts *DiscountService
}

func NewCatalogService(db *gorm.DB, discounts *DiscountService) *CatalogService {
	return &CatalogService{db: db, discounts: discounts}
}

// annotated builds the base listing query: one row per product with its mean
// review rating. Products without reviews carry a NULL rating and sort last;
// the ascending id is the documented tie-break. Grouping by product id also
// deduplicates the multi-valued attribute joins.
func (s *CatalogService) annotated() *gorm.DB {
	return s.db.Model(&models.Product{}).
		Select("products.*, AVG(reviews.rating) AS average_rating").
		Joins("LEFT JOIN reviews ON reviews.product_id = products.id").
		Group("products.id").
		Order("average_rating DESC NULLS LAST").
		Order("products.id ASC")
}

// countMatches counts distinct products for the given restriction, without
// the rating join.
func (s *CatalogService) countMatches(filters ProductFilters, restrict func(*gorm.DB) *gorm.DB) (int64, error) {
	query := filters.Apply(s.db.Model(&models.Product{}))
	if restrict != nil {
		query = restrict(query)
	}

	var total int64
	if err := query.Distinct("products.id").Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

func (s *CatalogService) page(filters ProductFilters, restrict func(*gorm.DB) *gorm.DB, page int) (utils.Page, error) {
	total, err := s.countMatches(filters, restrict)
	if err != nil {
		return utils.Page{}, err
	}

	query := filters.Apply(s.annotated())
	if restrict != nil {
		query = restrict(query)
	}

	products := []models.Product{}
	err = query.
		Offset(utils.PageOffset(page, utils.DefaultPageSize)).
		Limit(utils.DefaultPageSize).
		Find(&products).Error
	if err != nil {
		return utils.Page{}, fmt.Errorf("failed to fetch products: %w", err)
	}

	return utils.NewPage(products, total, page, utils.DefaultPageSize), nil
}

// List returns one page of the filtered, rating-sorted catalog.
func (s *CatalogService) List(filters ProductFilters, page int) (utils.Page, error) {
	return s.page(filters, nil, page)
}

// ListInCategory restricts the listing to products directly assigned to the
// category.
func (s *CatalogService) ListInCategory(category *models.Category, filters ProductFilters, page int) (utils.Page, error) {
	return s.page(filters, func(db *gorm.DB) *gorm.DB {
		return db.Where("products.category_id = ?", category.ID)
	}, page)
}

// Discounted restricts the listing to products carrying a live discount.
func (s *CatalogService) Discounted(filters ProductFilters, page int, asOf time.Time) (utils.Page, error) {
	ids, err := s.discounts.ActiveProductIDs(asOf)
	if err != nil {
		return utils.Page{}, err
	}
	if len(ids) == 0 {
		return utils.NewPage([]models.Product{}, 0, page, utils.DefaultPageSize), nil
	}

	return s.page(filters, func(db *gorm.DB) *gorm.DB {
		return db.Where("products.id IN ?", ids)
	}, page)
}

// Top returns the first n products of the default-sorted filtered listing.
func (s *CatalogService) Top(filters ProductFilters, n int) ([]models.Product, error) {
	products := []models.Product{}
	if err := filters.Apply(s.annotated()).Limit(n).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch top products: %w", err)
	}
	return products, nil
}

// Retrieve resolves a numeric id or slug into the full product detail:
// photos, characteristics, attributes and the mean rating.
func (s *CatalogService) Retrieve(key string) (*models.Product, error) {
	detail := s.db.
		Preload("Category").
		Preload("Colors").
		Preload("Sizes").
		Preload("Photos").
		Preload("Characteristics")

	var product models.Product
	if id, err := strconv.ParseUint(key, 10, 64); err == nil {
		err := detail.First(&product, uint(id)).Error
		if err == nil {
			return s.withRating(&product)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("database error: %w", err)
		}
	}

	if err := detail.Where("products.slug = ?", key).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return s.withRating(&product)
}

func (s *CatalogService) withRating(product *models.Product) (*models.Product, error) {
	var rating sql.NullFloat64
	err := s.db.Model(&models.Review{}).
		Where("product_id = ?", product.ID).
		Select("AVG(rating)").
		Scan(&rating).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate rating: %w", err)
	}
	if rating.Valid {
		product.AverageRating = &rating.Float64
	}
	return product, nil
}

// Recommended lists other products of the same category, excluding the
// product itself, in natural id order. Uncategorised products recommend
// other uncategorised ones.
func (s *CatalogService) Recommended(productID uint, limit int) ([]models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	query := s.db.Where("products.id <> ?", productID).Order("products.id ASC").Limit(limit)
	if product.CategoryID != nil {
		query = query.Where("products.category_id = ?", *product.CategoryID)
	} else {
		query = query.Where("products.category_id IS NULL")
	}

	products := []models.Product{}
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recommendations: %w", err)
	}
	return products, nil
}

// Latest returns the most recently created products.
func (s *CatalogService) Latest(limit int) ([]models.Product, error) {
	products := []models.Product{}
	err := s.db.
		Order("products.created_at DESC").
		Order("products.id DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest products: %w", err)
	}
	return products, nil
}

// DiscountedPrices exposes the discount annotation for listing responses.
func (s *CatalogService) DiscountedPrices(products []models.Product, asOf time.Time) (map[uint]float64, error) {
	return s.discounts.DiscountedPrices(products, asOf)
}
