package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	twilioClient "github.com/twilio/twilio-go/client"
)

// ValidateTwilioSignature checks the X-Twilio-Signature header on
// webhook requests. With an empty auth token the check is skipped
// entirely, which keeps local development and the test webhook usable
// without credentials.
func ValidateTwilioSignature(authToken string) fiber.Handler {
	validator := twilioClient.NewRequestValidator(authToken)

	return func(c *fiber.Ctx) error {
		if authToken == "" {
			return c.Next()
		}

		signature := c.Get("X-Twilio-Signature")
		if signature == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Missing Twilio signature",
			})
		}

		params := make(map[string]string)
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			params[string(key)] = string(value)
		})

		if !validator.Validate(fullURL(c), params, signature) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Invalid signature",
			})
		}

		return c.Next()
	}
}

// fullURL reconstructs the public URL Twilio signed against.
func fullURL(c *fiber.Ctx) string {
	return fmt.Sprintf("%s://%s%s", c.Protocol(), c.Hostname(), c.OriginalURL())
}
