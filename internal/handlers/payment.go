package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/loftmebel/backend/internal/services"
	"github.com/loftmebel/backend/internal/utils"
)

// CheckoutProvider creates hosted payment links.
type CheckoutProvider interface {
	CreateCheckoutLink(req services.CreateCheckoutRequest) (string, error)
}

type PaymentHandler struct {
	payments CheckoutProvider
}

func NewPaymentHandler(payments CheckoutProvider) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// POST /payments/stripe/
func (h *PaymentHandler) CreateCheckout(c *gin.Context) {
	var req services.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.BadRequestResponse(c, utils.GetValidationErrors(err))
		return
	}

	url, err := h.payments.CreateCheckoutLink(req)
	if err != nil {
		utils.InternalErrorResponse(c)
		return
	}
	utils.SuccessData(c, gin.H{"checkout_url": url})
}
