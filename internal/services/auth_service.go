package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/loftmebel/backend/internal/config"
	"github.com/loftmebel/backend/internal/models"
	"github.com/loftmebel/backend/internal/utils"
)

const (
	lockoutWindow    = 5 * time.Minute
	lockoutThreshold = 3
)

// AuthService drives the OTP email-verification flow, signup and login.
// Business rejections come back as a detail code with a nil error; a non-nil
// error means something actually broke.
type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	mailer *Mailer
}

func NewAuthService(db *gorm.DB, cfg *config.Config, mailer *Mailer) *AuthService {
	return &AuthService{db: db, cfg: cfg, mailer: mailer}
}

// Fingerprint identifies a login client for the lockout counter.
type Fingerprint struct {
	UserAgent string
	IP        string
}

type CheckOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Token string `json:"token" validate:"required"`
	Code  string `json:"code" validate:"required,len=6"`
}

type SignUpRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Fullname string `json:"fullname,omitempty"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,max=16"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// CheckEmail issues an OTP for an address that is not yet registered and
// mails the code out-of-band. The returned token is what signup later
// consumes.
func (s *AuthService) CheckEmail(email string) (*models.OTP, string, error) {
	email = strings.TrimSpace(email)
	if !utils.ValidEmail(email) {
		return nil, utils.DetailNotValidEmail, nil
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, "", fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, utils.DetailUserExists, nil
	}

	otp := &models.OTP{Email: email}
	if err := s.db.Create(otp).Error; err != nil {
		return nil, "", fmt.Errorf("failed to create otp: %w", err)
	}

	if err := s.mailer.SendOTPCode(otp.Email, otp.Code); err != nil {
		return nil, "", fmt.Errorf("failed to send otp code: %w", err)
	}

	return otp, "", nil
}

// CheckOTP activates the row matching {email, token, code} exactly. A row
// that was already activated, or whose issuance window passed, reports
// EXPIRED; no match at all reports WRONG_CODE. Nothing limits retries here;
// only login carries a lockout.
func (s *AuthService) CheckOTP(req CheckOTPRequest) (string, error) {
	var otp models.OTP
	err := s.db.
		Where("email = ? AND token = ? AND code = ?", req.Email, req.Token, req.Code).
		Order("id DESC").
		First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.DetailWrongCode, nil
		}
		return "", fmt.Errorf("database error: %w", err)
	}

	if otp.IsActivated || otp.Expired(time.Now()) {
		return utils.DetailExpired, nil
	}

	if err := s.db.Model(&otp).UpdateColumn("is_activated", true).Error; err != nil {
		return "", fmt.Errorf("failed to activate otp: %w", err)
	}
	return utils.DetailSuccess, nil
}

// SignUp consumes an activated token and creates the account. The freshness
// window re-checks the OTP's original creation time, so activating late and
// signing up slowly can still time out. Two concurrent signups against one
// token can both pass the check; the unique email index makes the loser
// surface as DATABASE_ERROR, matching the original behavior.
func (s *AuthService) SignUp(req SignUpRequest) (*models.User, string, error) {
	var otp models.OTP
	err := s.db.
		Where("token = ? AND is_activated = ? AND created_at >= ?",
			req.Token, true, time.Now().Add(-models.OTPWindow)).
		Order("id DESC").
		First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.DetailTimeout, nil
		}
		return nil, "", fmt.Errorf("database error: %w", err)
	}

	user := &models.User{
		Email:    otp.Email,
		Fullname: req.Fullname,
		Phone:    req.Phone,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		// persistence failures surface as a generic detail code
		return nil, utils.DetailDatabaseError, nil
	}
	return user, "", nil
}

// Login checks the lockout counter before touching credentials: three
// failures from one fingerprint within the window refuse the attempt
// outright. A successful login does not clear the counter; it decays with
// time only.
func (s *AuthService) Login(req LoginRequest, fp Fingerprint) (*TokenPair, string, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Password = strings.TrimSpace(req.Password)

	locked, err := s.lockedOut(fp)
	if err != nil {
		return nil, "", err
	}
	if locked {
		return nil, utils.DetailTryInFiveMinutes, nil
	}

	var user models.User
	err = s.db.
		Where("email = ? OR phone = ?", req.Username, req.Username).
		Order("id").
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.DetailUserNotExists, nil
		}
		return nil, "", fmt.Errorf("database error: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		if err := s.recordWrongTry(req.Username, fp); err != nil {
			return nil, "", err
		}
		return nil, utils.DetailWrongPassword, nil
	}

	access, err := utils.GenerateAccessToken(user.ID, user.Email, s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := utils.GenerateRefreshToken(user.ID, s.cfg.JWT.RefreshTokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{Access: access, Refresh: refresh}, "", nil
}

func (s *AuthService) lockedOut(fp Fingerprint) (bool, error) {
	var count int64
	err := s.db.Model(&models.WrongTry{}).
		Where("user_agent = ? AND ip = ? AND created_at >= ?",
			fp.UserAgent, fp.IP, time.Now().Add(-lockoutWindow)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("database error: %w", err)
	}
	return count >= lockoutThreshold, nil
}

func (s *AuthService) recordWrongTry(username string, fp Fingerprint) error {
	try := &models.WrongTry{
		Username:  username,
		UserAgent: fp.UserAgent,
		IP:        fp.IP,
	}
	if err := s.db.Create(try).Error; err != nil {
		return fmt.Errorf("failed to record wrong try: %w", err)
	}
	return nil
}

// Me fetches the authenticated profile.
func (s *AuthService) Me(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	return &user, nil
}
