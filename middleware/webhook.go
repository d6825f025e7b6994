package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// PaymentWebhookAuth verifies the gateway's HMAC signature over the raw
// body, skips the check in sandbox/dev mode.
func PaymentWebhookAuth() gin.HandlerFunc {
	mode := strings.ToLower(os.Getenv("PAYMENT_MODE"))
	skipVerify := mode == "sandbox" || mode == "dev"

	secretKey := os.Getenv("PAYMENT_WEBHOOK_SECRET")
	if secretKey == "" && !skipVerify {
		log.Fatalf("❌ PAYMENT_WEBHOOK_SECRET is not set")
	}

	return func(c *gin.Context) {
		if skipVerify {
			log.Println("Sandbox/dev mode: skipping webhook signature verification")
			c.Next()
			return
		}

		provided := c.GetHeader("X-Webhook-Signature")
		if provided == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "missing webhook signature"})
			c.Abort()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body for signature verification"})
			c.Abort()
			return
		}
		// hand the body back to the handler
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		mac := hmac.New(sha256.New, []byte(secretKey))
		mac.Write(body)
		calculated := hex.EncodeToString(mac.Sum(nil))

		if !hmac.Equal([]byte(strings.ToLower(provided)), []byte(calculated)) {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid webhook signature"})
			c.Abort()
			return
		}

		c.Next()
	}
}
