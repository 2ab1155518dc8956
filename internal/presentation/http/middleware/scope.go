package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kmutua/dukabook-api/internal/domain/enum"
	"github.com/kmutua/dukabook-api/internal/domain/repository"
	infraRepo "github.com/kmutua/dukabook-api/internal/infrastructure/repository"
	"github.com/kmutua/dukabook-api/internal/presentation/http/dto/response"
)

// ShopIDHeader names the shop a privileged user is acting on. The value
// "all" widens reads to every shop; it is never accepted for writes.
const ShopIDHeader = "X-Shop-ID"

// ScopeMiddleware resolves the effective shop scope for the request and puts
// it on the request context where the repository scope reads it.
//
// Scoped users always operate on their home shop; any X-Shop-ID header they
// send is ignored. Privileged users must name a shop explicitly, and a write
// without one is rejected before any handler runs.
func ScopeMiddleware(shopRepo repository.ShopRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := enum.Role(c.GetString("user_role"))

		if role != enum.RolePrivileged {
			homeShopVal, exists := c.Get("home_shop_id")
			if !exists {
				response.BadRequest(c, "Shop scope required")
				c.Abort()
				return
			}
			shopID, ok := homeShopVal.(uuid.UUID)
			if !ok || shopID == uuid.Nil {
				response.BadRequest(c, "Shop scope required")
				c.Abort()
				return
			}

			c.Set("shop_id", shopID)
			ctx := infraRepo.WithShop(c.Request.Context(), shopID)
			c.Request = c.Request.WithContext(ctx)
			c.Next()
			return
		}

		header := c.GetHeader(ShopIDHeader)
		if header == "" {
			response.BadRequest(c, "Shop scope required")
			c.Abort()
			return
		}

		if header == "all" {
			if c.Request.Method != "GET" {
				response.BadRequest(c, "Shop scope required for writes")
				c.Abort()
				return
			}
			ctx := infraRepo.WithSkipShopScope(c.Request.Context(), true)
			c.Request = c.Request.WithContext(ctx)
			c.Next()
			return
		}

		shopID, err := uuid.Parse(header)
		if err != nil {
			response.BadRequest(c, "Invalid shop ID")
			c.Abort()
			return
		}

		shop, err := shopRepo.GetByID(c.Request.Context(), shopID)
		if err != nil || shop == nil {
			response.NotFound(c, "Shop not found")
			c.Abort()
			return
		}

		c.Set("shop_id", shopID)
		ctx := infraRepo.WithShop(c.Request.Context(), shopID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetShopID retrieves the effective shop ID from gin context
func GetShopID(c *gin.Context) uuid.UUID {
	shopIDVal, exists := c.Get("shop_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := shopIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
