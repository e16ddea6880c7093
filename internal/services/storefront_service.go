package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/loftmebel/backend/internal/models"
)

// StorefrontService covers the small storefront features: banners, wishlist,
// reviews and feedback.
type StorefrontService struct {
	db *gorm.DB
}

func NewStorefrontService(db *gorm.DB) *StorefrontService {
	return &StorefrontService{db: db}
}

func (s *StorefrontService) Banners() ([]models.Banner, error) {
	banners := []models.Banner{}
	if err := s.db.Order("id").Find(&banners).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch banners: %w", err)
	}
	return banners, nil
}

// AddToWishlist likes a product for the user when known, keyed by the client
// ip otherwise. Liking the same product twice is a no-op.
func (s *StorefrontService) AddToWishlist(userID *uint, ip string, productID uint) error {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	query := s.db.Model(&models.Wishlist{}).Where("product_id = ?", productID)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	} else {
		query = query.Where("user_id IS NULL AND ip = ?", ip)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil
	}

	entry := &models.Wishlist{UserID: userID, ProductID: productID}
	if userID == nil {
		entry.IP = ip
	}
	if err := s.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create wishlist entry: %w", err)
	}
	return nil
}

func (s *StorefrontService) Wishlist(userID *uint, ip string) ([]models.Wishlist, error) {
	query := s.db.Preload("Product")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	} else {
		query = query.Where("user_id IS NULL AND ip = ?", ip)
	}

	entries := []models.Wishlist{}
	if err := query.Order("id DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch wishlist: %w", err)
	}
	return entries, nil
}

// CreateReview stores a rating that feeds the catalog's mean-rating sort.
func (s *StorefrontService) CreateReview(productID uint, userID *uint, rating float64, text string) (*models.Review, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	review := &models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Text:      text,
	}
	if err := s.db.Create(review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

func (s *StorefrontService) CreateFeedback(feedback *models.Feedback) error {
	if err := s.db.Create(feedback).Error; err != nil {
		return fmt.Errorf("failed to store feedback: %w", err)
	}
	return nil
}
