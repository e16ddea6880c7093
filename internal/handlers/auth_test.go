package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loftmebel/backend/internal/models"
	"github.com/loftmebel/backend/internal/services"
	"github.com/loftmebel/backend/internal/utils"
)

// fakeAuth scripts the detail codes the auth flow should surface.
type fakeAuth struct {
	checkEmailDetail string
	checkOTPDetail   string
	signUpDetail     string
	loginDetail      string
	lastFingerprint  services.Fingerprint
}

func (f *fakeAuth) CheckEmail(email string) (*models.OTP, string, error) {
	if f.checkEmailDetail != "" {
		return nil, f.checkEmailDetail, nil
	}
	return &models.OTP{Email: email, Token: "tok-abc"}, "", nil
}

func (f *fakeAuth) CheckOTP(req services.CheckOTPRequest) (string, error) {
	return f.checkOTPDetail, nil
}

func (f *fakeAuth) SignUp(req services.SignUpRequest) (*models.User, string, error) {
	if f.signUpDetail != "" {
		return nil, f.signUpDetail, nil
	}
	return &models.User{Email: "new@example.com"}, "", nil
}

func (f *fakeAuth) Login(req services.LoginRequest, fp services.Fingerprint) (*services.TokenPair, string, error) {
	f.lastFingerprint = fp
	if f.loginDetail != "" {
		return nil, f.loginDetail, nil
	}
	return &services.TokenPair{Access: "a", Refresh: "r"}, "", nil
}

func (f *fakeAuth) Me(userID uint) (*models.User, error) {
	return &models.User{Email: "me@example.com"}, nil
}

func authRouter(auth *fakeAuth) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(auth)

	r := gin.New()
	r.POST("/check-email/", h.CheckEmail)
	r.POST("/check-otp/", h.CheckOTP)
	r.POST("/sign-up/", h.SignUp)
	r.POST("/login/", h.Login)
	return r
}

func doPost(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest("POST", path, bytes.NewBuffer(payload))
	require.NoError(t, err)
	req.RemoteAddr = "192.0.2.1:1234"
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type detailEnvelope struct {
	Status bool                   `json:"status"`
	Detail string                 `json:"detail"`
	Data   map[string]interface{} `json:"data"`
}

func TestCheckEmailIssuesToken(t *testing.T) {
	r := authRouter(&fakeAuth{})

	w := doPost(t, r, "/check-email/", gin.H{"email": "new@example.com"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp detailEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Status)
	assert.Equal(t, "tok-abc", resp.Data["token"])
}

func TestCheckEmailRejectionsAreHTTP200(t *testing.T) {
	for _, detail := range []string{utils.DetailNotValidEmail, utils.DetailUserExists} {
		r := authRouter(&fakeAuth{checkEmailDetail: detail})

		w := doPost(t, r, "/check-email/", gin.H{"email": "whatever"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp detailEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Status)
		assert.Equal(t, detail, resp.Detail)
	}
}

func TestCheckOTPSuccess(t *testing.T) {
	r := authRouter(&fakeAuth{checkOTPDetail: utils.DetailSuccess})

	w := doPost(t, r, "/check-otp/", gin.H{
		"email": "new@example.com", "token": "tok-abc", "code": "123456",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp detailEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Status)
	assert.Equal(t, utils.DetailSuccess, resp.Detail)
}

func TestCheckOTPWrongCode(t *testing.T) {
	r := authRouter(&fakeAuth{checkOTPDetail: utils.DetailWrongCode})

	w := doPost(t, r, "/check-otp/", gin.H{
		"email": "new@example.com", "token": "tok-abc", "code": "000000",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp detailEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Status)
	assert.Equal(t, utils.DetailWrongCode, resp.Detail)
}

func TestCheckOTPValidation(t *testing.T) {
	r := authRouter(&fakeAuth{})

	// missing code fails validation before the service is reached
	w := doPost(t, r, "/check-otp/", gin.H{"email": "new@example.com", "token": "tok-abc"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignUpTimeout(t *testing.T) {
	r := authRouter(&fakeAuth{signUpDetail: utils.DetailTimeout})

	w := doPost(t, r, "/sign-up/", gin.H{"token": "tok-abc", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp detailEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Status)
	assert.Equal(t, utils.DetailTimeout, resp.Detail)
}

func TestLoginReturnsTokenPair(t *testing.T) {
	fake := &fakeAuth{}
	r := authRouter(fake)

	req, err := http.NewRequest("POST", "/login/",
		bytes.NewBufferString(`{"username":"new@example.com","password":"secret1"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "test-agent")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test-agent", fake.lastFingerprint.UserAgent)

	var resp detailEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Status)
	assert.Equal(t, "a", resp.Data["access"])
	assert.Equal(t, "r", resp.Data["refresh"])
}

func TestLoginLockout(t *testing.T) {
	r := authRouter(&fakeAuth{loginDetail: utils.DetailTryInFiveMinutes})

	w := doPost(t, r, "/login/", gin.H{"username": "new@example.com", "password": "wrong"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp detailEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Status)
	assert.Equal(t, utils.DetailTryInFiveMinutes, resp.Detail)
}
