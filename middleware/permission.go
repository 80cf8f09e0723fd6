package middleware

import (
	"errors"
	"log"

	"supportdesk/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminOnly lets the request through only when the caller is an active ADMIN user.
// The role is read from the users table, not from the token.
func AdminOnly(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := CurrentUserID(c)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		var user models.User
		err := db.WithContext(c.UserContext()).
			Where("id = ? AND is_deleted = ? AND role = ?", userID, false, models.RoleAdmin).
			First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
			}
			log.Printf("[AUTH] admin check for user %d failed: %v", userID, err)
			return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking permissions!", nil)
		}

		return c.Next()
	}
}
