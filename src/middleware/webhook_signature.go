package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"os"

	"github.com/gofiber/fiber/v2"
)

const SignatureHeader = "X-Webhook-Signature"

// VerifyFormSignature checks the form provider's HMAC-SHA256 signature over
// the raw body when FORM_WEBHOOK_SECRET is set. With no secret configured the
// check is skipped entirely.
func VerifyFormSignature(c *fiber.Ctx) error {
	secret := os.Getenv("FORM_WEBHOOK_SECRET")
	if secret == "" {
		return c.Next()
	}

	got := c.Get(SignatureHeader)
	if got == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing webhook signature"})
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(c.Body())
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(got), []byte(want)) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid webhook signature"})
	}

	return c.Next()
}
