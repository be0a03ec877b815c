package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbantrove-ng/Urbantrove-Api/config"
)

const secret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func sign(t *testing.T, claims jwt.MapClaims, key string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func whoami(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/me", mw, func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})
	return r
}

func get(r http.Handler, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestValidateToken(t *testing.T) {
	r := whoami(ValidateToken(secret))
	valid := sign(t, jwt.MapClaims{"user_id": "u1", "role": "buyer", "exp": time.Now().Add(time.Hour).Unix()}, secret)

	w := get(r, "Bearer "+valid)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())

	w = get(r, valid)
	assert.Equal(t, http.StatusOK, w.Code, "raw token header is accepted")

	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)

	wrongKey := sign(t, jwt.MapClaims{"user_id": "u1"}, "other")
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+wrongKey).Code)

	expired := sign(t, jwt.MapClaims{"user_id": "u1", "exp": time.Now().Add(-time.Hour).Unix()}, secret)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+expired).Code)

	noUser := sign(t, jwt.MapClaims{"role": "buyer"}, secret)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+noUser).Code)
}

func TestOptionalToken(t *testing.T) {
	r := whoami(OptionalToken(secret))

	w := get(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = get(r, "Bearer garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = get(r, "Bearer "+sign(t, jwt.MapClaims{"user_id": "guest_1"}, secret))
	assert.Equal(t, "guest_1", w.Body.String())
}

func TestValidateAPIKey(t *testing.T) {
	r := gin.New()
	r.GET("/admin", ValidateAPIKey("k1"), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	call := func(key string) int {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("X-API-KEY", key)
		r.ServeHTTP(w, req)
		return w.Code
	}
	assert.Equal(t, http.StatusNoContent, call("k1"))
	assert.Equal(t, http.StatusUnauthorized, call("nope"))

	closed := gin.New()
	closed.GET("/admin", ValidateAPIKey(""), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/admin", nil)
	closed.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func postWebhook(r http.Handler, form url.Values) int {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/webhook", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w.Code
}

func TestTelrWebhookAuth(t *testing.T) {
	cfg := config.TelrConfig{WebhookSecret: "whsec", Mode: "live"}
	r := gin.New()
	r.POST("/webhook", TelrWebhookAuth(cfg), func(c *gin.Context) { c.Status(http.StatusOK) })

	form := url.Values{"tran_cartid": {"order-1-1"}, "tran_status": {"A"}, "tran_ref": {"TX1"}}
	form.Set("tran_check", TelrSignature("whsec", form.Get))
	assert.Equal(t, http.StatusOK, postWebhook(r, form))

	form.Set("tran_status", "D")
	assert.Equal(t, http.StatusForbidden, postWebhook(r, form), "tampered field")

	form.Del("tran_check")
	assert.Equal(t, http.StatusForbidden, postWebhook(r, form))
}

func TestTelrWebhookAuthSandboxSkips(t *testing.T) {
	r := gin.New()
	r.POST("/webhook", TelrWebhookAuth(config.TelrConfig{Mode: "sandbox"}), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, postWebhook(r, url.Values{"tran_cartid": {"order-1-1"}}))
}

func TestSessionKey(t *testing.T) {
	r := gin.New()
	r.GET("/cart", OptionalToken(secret), func(c *gin.Context) {
		c.String(http.StatusOK, SessionKey(c))
	})
	call := func(target, auth, guest string) string {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, target, nil)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		if guest != "" {
			req.Header.Set(GuestHeader, guest)
		}
		r.ServeHTTP(w, req)
		return w.Body.String()
	}

	token := sign(t, jwt.MapClaims{"user_id": "u9"}, secret)
	assert.Equal(t, "u9", call("/cart?guest_id=g1", "Bearer "+token, "g2"))
	assert.Equal(t, "g1", call("/cart?guest_id=g1", "", "g2"))
	assert.Equal(t, "g2", call("/cart", "", "g2"))
	assert.Empty(t, call("/cart", "", ""))
}
