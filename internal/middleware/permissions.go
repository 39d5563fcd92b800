package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fitdesk/scheduling-api/internal/cache"
	"github.com/fitdesk/scheduling-api/internal/models"
)

const permissionTTL = 5 * time.Minute

// PermissionKey is the cache key for a tenant/user role lookup. Exposed so
// whoever mutates the staff roster can invalidate it.
func PermissionKey(tenantID, userID uint) string {
	return fmt.Sprintf("perm:%d:%d", tenantID, userID)
}

// RequireStaff gates an endpoint to staff roles (trainer, admin). The
// roster lookup is TTL-cached; scheduling data itself never goes through
// this cache.
func RequireStaff(db *gorm.DB, c cache.Cache, log *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tenantID := ctx.MustGet(ContextTenantID).(uint)
		userID := ctx.MustGet(ContextUserID).(uint)

		role, err := resolveRole(ctx, db, c, tenantID, userID)
		if err != nil {
			log.Error("staff permission lookup failed", zap.Error(err))
			ctx.AbortWithStatusJSON(http.StatusInternalServerError,
				gin.H{"success": false, "message": "Internal server error"})
			return
		}

		if role != "trainer" && role != "admin" {
			ctx.AbortWithStatusJSON(http.StatusForbidden,
				gin.H{"success": false, "message": "Staff permission required"})
			return
		}

		ctx.Next()
	}
}

func resolveRole(ctx *gin.Context, db *gorm.DB, c cache.Cache, tenantID, userID uint) (string, error) {
	key := PermissionKey(tenantID, userID)

	if cached, ok, err := c.Get(ctx, key); err == nil && ok {
		return cached, nil
	}

	var member models.StaffMember
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		member.Role = "client"
	} else if err != nil {
		return "", err
	}

	// Cache write failures are not fatal; the role was resolved.
	_ = c.Set(ctx, key, member.Role, permissionTTL)

	return member.Role, nil
}
