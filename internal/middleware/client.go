package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	ClientIDHeader = "X-Client-ID"
	clientIDQuery  = "clientId"
	maxClientIDLen = 64
)

// EnsureClientID stores the caller's client ID in locals under "clientID".
// Browsers cannot set headers on a websocket handshake, hence the query fallback.
func EnsureClientID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals("clientID").(string); ok {
			return c.Next()
		}

		clientID := strings.TrimSpace(c.Get(ClientIDHeader))
		if clientID == "" {
			clientID = strings.TrimSpace(c.Query(clientIDQuery))
		}

		switch {
		case clientID == "":
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "client ID is required, send it in the " + ClientIDHeader + " header",
			})
		case len(clientID) > maxClientIDLen:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "client ID is too long",
			})
		}

		c.Locals("clientID", clientID)
		return c.Next()
	}
}
