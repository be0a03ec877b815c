package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/urbantrove-ng/Urbantrove-Api/models"
	"github.com/urbantrove-ng/Urbantrove-Api/response"
)

const guestTTL = 24 * time.Hour

// POST /auth/guest
func CreateGuestUser(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID := newGuestID()

		guest := models.GuestUser{
			ID:        guestID,
			ExpiresAt: time.Now().Add(guestTTL),
		}
		// Guests also get a users row so their orders satisfy orders.user_id.
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&models.User{ID: guestID, Role: models.RoleGuest}).Error; err != nil {
				return err
			}
			return tx.Create(&guest).Error
		})
		if err != nil {
			response.Internal(c, err)
			return
		}

		token, err := IssueToken(secret, guestID, models.RoleGuest, guestTTL)
		if err != nil {
			response.Internal(c, err)
			return
		}

		response.Success(c, http.StatusOK, "success", gin.H{
			"guestId":   guestID,
			"token":     token,
			"expiresAt": guest.ExpiresAt,
		})
	}
}

// newGuestID returns "guest_" followed by 32 hex characters.
func newGuestID() string {
	return "guest_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
