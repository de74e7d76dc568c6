package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/observability"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

func requestMeta(c *fiber.Ctx) observability.RequestMeta {
	return observability.RequestMeta{
		IP:        c.IP(),
		UserAgent: c.Get("User-Agent"),
		Endpoint:  c.OriginalURL(),
	}
}

func actorFromContext(c *fiber.Ctx) (service.Actor, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return service.Actor{}, apperrors.NewUnauthorized("authentication required")
	}
	return service.Actor{
		ID:       principal.User.ID,
		Role:     principal.Role,
		AgencyID: principal.AgencyID(),
	}, nil
}

func pageQuery(c *fiber.Ctx) (page, limit int) {
	page = queryInt(c, "page", 1)
	limit = queryInt(c, "limit", 10)
	return page, limit
}

func queryInt(c *fiber.Ctx, key string, fallback int) int {
	val := c.Query(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func queryString(c *fiber.Ctx, key string) *string {
	val := c.Query(key)
	if val == "" {
		return nil
	}
	return &val
}
