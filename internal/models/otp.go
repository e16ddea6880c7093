package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/loftmebel/backend/internal/utils"
)

// OTPWindow is how long a code stays valid, counted from the row's original
// creation time. Signup re-checks the same window, so a slow signup after a
// late activation can still time out.
const OTPWindow = 5 * time.Minute

// OTP is a one-time passcode issued for email verification before signup.
// The token is an irreversible hash of the row id and creation year; a
// reused id within the same year would collide, which is a known weakness of
// the scheme and is kept as-is.
type OTP struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Email       string    `json:"email" gorm:"size:255;index;not null"`
	Code        string    `json:"-" gorm:"size:6;not null"`
	Token       string    `json:"token" gorm:"size:64;index"`
	IsActivated bool      `json:"is_activated" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
}

// Expired reports whether the issuance window has passed.
func (o *OTP) Expired(now time.Time) bool {
	return now.Sub(o.CreatedAt) > OTPWindow
}

func (o *OTP) BeforeCreate(tx *gorm.DB) error {
	if o.Code != "" {
		return nil
	}
	code, err := utils.GenerateNumericCode(6)
	if err != nil {
		return err
	}
	o.Code = code
	return nil
}

// AfterCreate derives the token once the row id is known.
func (o *OTP) AfterCreate(tx *gorm.DB) error {
	o.Token = utils.HashString(fmt.Sprintf("%d-%d", o.ID, o.CreatedAt.Year()))
	return tx.Model(o).UpdateColumn("token", o.Token).Error
}

// WrongTry records a failed login attempt for the lockout counter. Attempts
// are keyed by the (user agent, ip) fingerprint and decay purely by time.
type WrongTry struct {
	BaseModel
	Username  string `json:"username" gorm:"size:255"`
	UserAgent string `json:"user_agent" gorm:"size:512;index:idx_wrong_tries_fingerprint"`
	IP        string `json:"ip" gorm:"size:50;index:idx_wrong_tries_fingerprint"`
}
