package http

import (
	"crypto/subtle"
	"net"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// requireToken guards maintenance endpoints with a static bearer token.
func requireToken(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		presented := strings.TrimPrefix(header, "Bearer ")
		if token == "" || presented == header ||
			subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(Response{Success: false, Error: "unauthorized"})
		}
		return c.Next()
	}
}

// allowFrom restricts a route to source addresses inside the given CIDR
// blocks. An empty list allows everyone.
func allowFrom(cidrs []string) fiber.Handler {
	var blocks []*net.IPNet
	for _, raw := range cidrs {
		if _, block, err := net.ParseCIDR(raw); err == nil {
			blocks = append(blocks, block)
		}
	}
	return func(c *fiber.Ctx) error {
		if len(blocks) == 0 {
			return c.Next()
		}
		ip := net.ParseIP(c.IP())
		if ip != nil {
			for _, block := range blocks {
				if block.Contains(ip) {
					return c.Next()
				}
			}
		}
		return c.Status(fiber.StatusUnauthorized).JSON(Response{Success: false, Error: "unauthorized"})
	}
}
