package userControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/urbantrove-ng/Urbantrove-Api/middleware"
	"github.com/urbantrove-ng/Urbantrove-Api/models"
	"github.com/urbantrove-ng/Urbantrove-Api/response"
)

// UpdateUserInput carries the profile fields shown on order emails.
type UpdateUserInput struct {
	Fullname *string `json:"fullname"`
	Phone    *string `json:"phone"`
}

func userNotFound(c *gin.Context, id string) {
	response.Fail(c, http.StatusNotFound, response.Detail{
		Path: "user_id", Msg: "User not found", Value: id, Location: "token",
	})
}

// GET /user
func GetUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)
		var user models.User

		err := db.First(&user, "id = ?", userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			userNotFound(c, userID)
			return
		}
		if err != nil {
			response.Internal(c, err)
			return
		}

		response.Success(c, http.StatusOK, "success", user)
	}
}

// GET /admin/users
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("created_at desc")
		if role := c.Query("role"); role != "" {
			query = query.Where("role = ?", role)
		}

		var users []models.User
		if err := query.Find(&users).Error; err != nil {
			response.Internal(c, err)
			return
		}

		response.Success(c, http.StatusOK, "success", users)
	}
}

// PUT /user
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)
		var user models.User

		err := db.First(&user, "id = ?", userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			userNotFound(c, userID)
			return
		}
		if err != nil {
			response.Internal(c, err)
			return
		}

		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Invalid(c, err, "body")
			return
		}

		updates := make(map[string]interface{})
		if input.Fullname != nil {
			name := strings.TrimSpace(*input.Fullname)
			if name == "" {
				response.Fail(c, http.StatusUnprocessableEntity, response.Detail{
					Path: "fullname", Msg: "fullname must not be empty", Location: "body",
				})
				return
			}
			updates["fullname"] = name
		}
		if input.Phone != nil {
			updates["phone"] = strings.TrimSpace(*input.Phone)
		}

		if len(updates) > 0 {
			if err := db.Model(&user).Updates(updates).Error; err != nil {
				response.Internal(c, err)
				return
			}
		}

		response.Success(c, http.StatusOK, "success", user)
	}
}
