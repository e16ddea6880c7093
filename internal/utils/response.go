package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Detail codes returned to the storefront. The vocabulary is part of the
// client contract and must not be renamed.
const (
	DetailNotValidEmail    = "NOT_VALID_EMAIL"
	DetailUserExists       = "USER_EXISTS"
	DetailWrongCode        = "WRONG_CODE"
	DetailExpired          = "EXPIRED"
	DetailSuccess          = "SUCCESS"
	DetailTimeout          = "TIMEOUT"
	DetailDatabaseError    = "DATABASE_ERROR"
	DetailUserNotExists    = "USER_NOT_EXISTS"
	DetailWrongPassword    = "WRONG_PASSWORD"
	DetailTryInFiveMinutes = "TRY_IN_FIVE_MINUTES"
	DetailBadRequest       = "BAD_REQUEST"
)

// RejectResponse reports a business-rule rejection. These are deliberately
// HTTP 200 so the storefront handles every outcome through one code path.
func RejectResponse(c *gin.Context, detail string) {
	c.JSON(http.StatusOK, gin.H{
		"status": false,
		"detail": detail,
	})
}

// SuccessDetail reports a business operation that completed with no payload.
func SuccessDetail(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": true,
		"detail": DetailSuccess,
	})
}

// SuccessData reports a business operation that carries a payload.
func SuccessData(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"status": true,
		"data":   data,
	})
}

// SuccessResponse writes a plain 200 payload for catalog reads.
func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// BadRequestResponse is for malformed requests, as opposed to business
// rejections.
func BadRequestResponse(c *gin.Context, details interface{}) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  false,
		"detail":  DetailBadRequest,
		"details": details,
	})
}

func NotFoundResponse(c *gin.Context) {
	c.Status(http.StatusNotFound)
}

func InternalErrorResponse(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"status": false,
		"detail": DetailDatabaseError,
	})
}
