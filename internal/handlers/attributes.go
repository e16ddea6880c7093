package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/loftmebel/backend/internal/models"
	"github.com/loftmebel/backend/internal/utils"
)

// AttributeProvider lists filter dimensions, optionally scoped to a
// category subtree.
type AttributeProvider interface {
	Colors(categoryKey string) ([]models.Color, error)
	Sizes(categoryKey string) ([]models.Size, error)
}

type AttributeHandler struct {
	attributes AttributeProvider
}

func NewAttributeHandler(attributes AttributeProvider) *AttributeHandler {
	return &AttributeHandler{attributes: attributes}
}

// GET /colors/
func (h *AttributeHandler) Colors(c *gin.Context) {
	colors, err := h.attributes.Colors(c.Query("category"))
	if err != nil {
		utils.InternalErrorResponse(c)
		return
	}
	utils.SuccessResponse(c, colors)
}

// GET /size/
func (h *AttributeHandler) Sizes(c *gin.Context) {
	sizes, err := h.attributes.Sizes(c.Query("category"))
	if err != nil {
		utils.InternalErrorResponse(c)
		return
	}
	utils.SuccessResponse(c, sizes)
}
