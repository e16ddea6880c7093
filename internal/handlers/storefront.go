package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/loftmebel/backend/internal/middleware"
	"github.com/loftmebel/backend/internal/models"
	"github.com/loftmebel/backend/internal/services"
	"github.com/loftmebel/backend/internal/utils"
)

// StorefrontProvider backs the banner, wishlist, review and feedback routes.
type StorefrontProvider interface {
	Banners() ([]models.Banner, error)
	AddToWishlist(userID *uint, ip string, productID uint) error
	Wishlist(userID *uint, ip string) ([]models.Wishlist, error)
	CreateReview(productID uint, userID *uint, rating float64, text string) (*models.Review, error)
	CreateFeedback(feedback *models.Feedback) error
}

type StorefrontHandler struct {
	storefront StorefrontProvider
	prices     PriceProvider
}

// PriceProvider annotates wishlist entries with live discounted prices.
type PriceProvider interface {
	DiscountedPrices(products []models.Product, asOf time.Time) (map[uint]float64, error)
}

func NewStorefrontHandler(storefront StorefrontProvider, prices PriceProvider) *StorefrontHandler {
	return &StorefrontHandler{storefront: storefront, prices: prices}
}

// GET /banners/
func (h *StorefrontHandler) Banners(c *gin.Context) {
	banners, err := h.storefront.Banners()
	if err != nil {
		utils.InternalErrorResponse(c)
		return
	}
	utils.SuccessResponse(c, banners)
}

type wishlistRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// POST /wishlist/
func (h *StorefrontHandler) AddToWishlist(c *gin.Context) {
	var req wishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	userID := optionalUserID(c)
	err := h.storefront.AddToWishlist(userID, c.ClientIP(), req.ProductID)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c)
			return
		}
		utils.InternalErrorResponse(c)
		return
	}
	utils.SuccessDetail(c)
}

// GET /wishlist/
func (h *StorefrontHandler) Wishlist(c *gin.Context) {
	userID := optionalUserID(c)
	entries, err := h.storefront.Wishlist(userID, c.ClientIP())
	if err != nil {
		utils.InternalErrorResponse(c)
		return
	}

	// entries whose product vanished since preload carry a nil pointer
	products := make([]models.Product, 0, len(entries))
	for _, entry := range entries {
		if entry.Product != nil {
			products = append(products, *entry.Product)
		}
	}
	prices, err := h.prices.DiscountedPrices(products, time.Now())
	if err != nil {
		utils.InternalErrorResponse(c)
		return
	}
	utils.SuccessResponse(c, mapProducts(products, prices))
}

type reviewRequest struct {
	Rating float64 `json:"rating" validate:"required,min=1,max=5"`
	Text   string  `json:"text,omitempty"`
}

// POST /products/:key/reviews/ (writes resolve by numeric id only)
func (h *StorefrontHandler) CreateReview(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("key"), 10, 64)
	if err != nil {
		utils.NotFoundResponse(c)
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.BadRequestResponse(c, utils.GetValidationErrors(err))
		return
	}

	userID := optionalUserID(c)
	review, err := h.storefront.CreateReview(uint(productID), userID, req.Rating, req.Text)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c)
			return
		}
		utils.InternalErrorResponse(c)
		return
	}
	utils.SuccessData(c, review)
}

type feedbackRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required,max=16"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Message string `json:"message" validate:"required"`
}

// POST /feedback/
func (h *StorefrontHandler) CreateFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.BadRequestResponse(c, utils.GetValidationErrors(err))
		return
	}

	feedback := &models.Feedback{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Message: req.Message,
	}
	if err := h.storefront.CreateFeedback(feedback); err != nil {
		utils.InternalErrorResponse(c)
		return
	}
	utils.SuccessDetail(c)
}

func optionalUserID(c *gin.Context) *uint {
	if id, ok := middleware.UserIDFromContext(c); ok {
		return &id
	}
	return nil
}
