package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserPassword(t *testing.T) {
	var user User
	assert.NoError(t, user.SetPassword("correct horse"))
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotContains(t, user.PasswordHash, "correct horse")

	assert.NoError(t, user.CheckPassword("correct horse"))
	assert.Error(t, user.CheckPassword("battery staple"))
}
