package productcontroller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/urbantrove-ng/Urbantrove-Api/models"
	"github.com/urbantrove-ng/Urbantrove-Api/response"
)

// withAssociations preloads what every catalog response carries.
func withAssociations(db *gorm.DB) *gorm.DB {
	return db.Preload("Category").
		Preload("User").
		Preload("Images", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC, id ASC")
		})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid id %q", models.ErrValidation, raw)
	}
	return uint(id), nil
}

// findOwned loads a product only when userID owns it.
func findOwned(db *gorm.DB, id uint, userID string) (*models.Product, error) {
	var product models.Product
	err := withAssociations(db).Where("id = ? AND user_id = ?", id, userID).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func notOwned(c *gin.Context, value any, location string) {
	response.Fail(c, http.StatusBadRequest, response.Detail{
		Path:     "id",
		Msg:      "No product found with id associated with this user please verify id.",
		Value:    value,
		Location: location,
	})
}
