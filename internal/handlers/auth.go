package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/loftmebel/backend/internal/middleware"
	"github.com/loftmebel/backend/internal/models"
	"github.com/loftmebel/backend/internal/services"
	"github.com/loftmebel/backend/internal/utils"
)

// AuthProvider covers the verification, signup and login flows.
type AuthProvider interface {
	CheckEmail(email string) (*models.OTP, string, error)
	CheckOTP(req services.CheckOTPRequest) (string, error)
	SignUp(req services.SignUpRequest) (*models.User, string, error)
	Login(req services.LoginRequest, fp services.Fingerprint) (*services.TokenPair, string, error)
	Me(userID uint) (*models.User, error)
}

type AuthHandler struct {
	auth AuthProvider
}

func NewAuthHandler(auth AuthProvider) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type checkEmailRequest struct {
	Email string `json:"email"`
}

// POST /check-email/
func (h *AuthHandler) CheckEmail(c *gin.Context) {
	var req checkEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	otp, detail, err := h.auth.CheckEmail(req.Email)
	if err != nil {
		utils.InternalErrorResponse(c)
		return
	}
	if detail != "" {
		utils.RejectResponse(c, detail)
		return
	}

	utils.SuccessData(c, gin.H{"token": otp.Token})
}

// POST /check-otp/
func (h *AuthHandler) CheckOTP(c *gin.Context) {
	var req services.CheckOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.BadRequestResponse(c, utils.GetValidationErrors(err))
		return
	}

	detail, err := h.auth.CheckOTP(req)
	if err != nil {
		utils.InternalErrorResponse(c)
		return
	}
	if detail != utils.DetailSuccess {
		utils.RejectResponse(c, detail)
		return
	}
	utils.SuccessDetail(c)
}

// POST /sign-up/
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req services.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.BadRequestResponse(c, utils.GetValidationErrors(err))
		return
	}

	user, detail, err := h.auth.SignUp(req)
	if err != nil {
		utils.InternalErrorResponse(c)
		return
	}
	if detail != "" {
		utils.RejectResponse(c, detail)
		return
	}

	utils.SuccessData(c, userResponse(user))
}

// POST /login/
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.BadRequestResponse(c, utils.GetValidationErrors(err))
		return
	}

	fp := services.Fingerprint{
		UserAgent: c.GetHeader("User-Agent"),
		IP:        c.ClientIP(),
	}

	tokens, detail, err := h.auth.Login(req, fp)
	if err != nil {
		utils.InternalErrorResponse(c)
		return
	}
	if detail != "" {
		utils.RejectResponse(c, detail)
		return
	}

	utils.SuccessData(c, tokens)
}

// GET /user/me/
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.NotFoundResponse(c)
		return
	}

	user, err := h.auth.Me(userID)
	if err != nil {
		utils.NotFoundResponse(c)
		return
	}
	utils.SuccessData(c, userResponse(user))
}

func userResponse(u *models.User) gin.H {
	return gin.H{
		"id":       u.ID,
		"email":    u.Email,
		"phone":    u.Phone,
		"fullname": u.Fullname,
		"photo":    u.Photo,
	}
}
