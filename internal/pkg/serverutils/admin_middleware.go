package serverutils

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AdminKeyMiddleware requires "Authorization: Bearer <key>" when key is set.
// An empty key leaves the route open.
func AdminKeyMiddleware(key string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if key == "" {
			return ctx.Next()
		}

		authHeader := ctx.Get(fiber.HeaderAuthorization)
		token, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || subtle.ConstantTimeCompare([]byte(token), []byte(key)) != 1 {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Unauthorized"))
		}
		return ctx.Next()
	}
}
