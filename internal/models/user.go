package models

import (
	"golang.org/x/crypto/bcrypt"
)

// User is an account created through the OTP signup flow. Login accepts
// either the email or the phone as the username.
type User struct {
	BaseModel
	Email        string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Phone        string `json:"phone,omitempty" gorm:"size:16;index"`
	Fullname     string `json:"fullname,omitempty" gorm:"size:255"`
	Photo        string `json:"photo,omitempty" gorm:"size:512"`
	PasswordHash string `json:"-" gorm:"size:255;not null"`
	IsAdmin      bool   `json:"is_admin" gorm:"default:false"`
}

func (u *User) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashed)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
