package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/loftmebel/backend/internal/database"
	"github.com/loftmebel/backend/internal/models"
)

type DiscountService struct {
	db *gorm.DB
}

func NewDiscountService(db *gorm.DB) *DiscountService {
	return &DiscountService{db: db}
}

// ActiveDiscount returns the product's single effective discount as of the
// given instant, or nil when none applies. When several rows qualify the
// newest wins (created_at, then id, descending).
func (s *DiscountService) ActiveDiscount(productID uint, asOf time.Time) (*models.Discount, error) {
	var discount models.Discount
	err := s.db.
		Where("product_id = ? AND is_active = ? AND expires_in > ?", productID, true, asOf).
		Order("created_at DESC, id DESC").
		First(&discount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &discount, nil
}

// DiscountedPrice returns the product's price after its active discount, or
// nil when no discount applies. Callers must treat nil as "no discount",
// which is different from a 0% discount returning the full price.
func (s *DiscountService) DiscountedPrice(product *models.Product, asOf time.Time) (*float64, error) {
	discount, err := s.ActiveDiscount(product.ID, asOf)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, nil
	}
	price := discount.Apply(product.Price)
	return &price, nil
}

// Create saves a new discount. When the new row is active, other active
// discounts on the product whose expiry is strictly later than the new one
// are deactivated first, inside one transaction.
func (s *DiscountService) Create(discount *models.Discount) error {
	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if discount.IsActive {
			err := tx.Model(&models.Discount{}).
				Where("product_id = ? AND is_active = ? AND expires_in > ?",
					discount.ProductID, true, discount.ExpiresIn).
				Update("is_active", false).Error
			if err != nil {
				return fmt.Errorf("failed to deactivate prior discounts: %w", err)
			}
		}
		if err := tx.Create(discount).Error; err != nil {
			return fmt.Errorf("failed to create discount: %w", err)
		}
		return nil
	})
}

// ActiveProductIDs lists products carrying a live discount as of the given
// instant, for the discounted catalog listing.
func (s *DiscountService) ActiveProductIDs(asOf time.Time) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.Discount{}).
		Where("is_active = ? AND expires_in > ?", true, asOf).
		Distinct().
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return ids, nil
}

// DiscountedPrices maps product id to discounted price for every listed
// product that has a live discount. Products without one are absent.
func (s *DiscountService) DiscountedPrices(products []models.Product, asOf time.Time) (map[uint]float64, error) {
	if len(products) == 0 {
		return map[uint]float64{}, nil
	}

	ids := make([]uint, len(products))
	priceByID := make(map[uint]float64, len(products))
	for i, p := range products {
		ids[i] = p.ID
		priceByID[p.ID] = p.Price
	}

	var discounts []models.Discount
	err := s.db.
		Where("product_id IN ? AND is_active = ? AND expires_in > ?", ids, true, asOf).
		Order("created_at DESC, id DESC").
		Find(&discounts).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	result := make(map[uint]float64, len(discounts))
	for _, d := range discounts {
		if _, seen := result[d.ProductID]; seen {
			// rows are newest-first, keep the winner
			continue
		}
		result[d.ProductID] = d.Apply(priceByID[d.ProductID])
	}
	return result, nil
}
