package middleware

import (
	"crypto/sha1"
	"encoding/hex"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/urbantrove-ng/Urbantrove-Api/config"
	"github.com/urbantrove-ng/Urbantrove-Api/response"
)

// telrSignedFields is the order Telr hashes the webhook fields in.
var telrSignedFields = []string{
	"tran_store", "tran_type", "tran_class", "tran_test", "tran_ref",
	"tran_prevref", "tran_firstref", "tran_order", "tran_currency",
	"tran_amount", "tran_cartid", "tran_desc", "tran_status",
	"tran_authcode", "tran_authmessage",
}

// TelrSignature computes the tran_check value for a webhook form.
func TelrSignature(secret string, form func(string) string) string {
	parts := []string{secret}
	for _, f := range telrSignedFields {
		parts = append(parts, strings.TrimSpace(form(f)))
	}
	sum := sha1.Sum([]byte(strings.Join(parts, ":")))
	return hex.EncodeToString(sum[:])
}

// TelrWebhookAuth verifies the Telr webhook signature; sandbox/dev mode skips the check.
func TelrWebhookAuth(cfg config.TelrConfig) gin.HandlerFunc {
	if cfg.WebhookSecret == "" && !cfg.TestMode() {
		log.Println("❌ TELR_WEBHOOK_SECRET is not set, Telr webhooks will be rejected")
	}

	return func(c *gin.Context) {
		if cfg.TestMode() {
			c.Next()
			return
		}

		if cfg.WebhookSecret == "" {
			response.AbortFail(c, http.StatusForbidden, response.Detail{Msg: "webhook verification is not configured"})
			return
		}

		if err := c.Request.ParseForm(); err != nil {
			response.AbortFail(c, http.StatusBadRequest, response.Detail{Msg: "failed to parse form for signature verification", Location: "body"})
			return
		}

		providedCheck := c.PostForm("tran_check")
		if providedCheck == "" {
			response.AbortFail(c, http.StatusForbidden, response.Detail{Path: "tran_check", Msg: "missing tran_check signature", Location: "body"})
			return
		}

		calculated := TelrSignature(cfg.WebhookSecret, c.PostForm)
		if !strings.EqualFold(calculated, providedCheck) {
			log.Printf("❌ Telr webhook signature mismatch for cart %s", c.PostForm("tran_cartid"))
			response.AbortFail(c, http.StatusForbidden, response.Detail{Path: "tran_check", Msg: "invalid webhook signature", Location: "body"})
			return
		}

		c.Next()
	}
}
