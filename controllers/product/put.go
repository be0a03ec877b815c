package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/urbantrove-ng/Urbantrove-Api/middleware"
	"github.com/urbantrove-ng/Urbantrove-Api/models"
	"github.com/urbantrove-ng/Urbantrove-Api/response"
)

// UpdateProduct replaces the submitted fields of an owned product and appends
// any uploaded images after the existing ones.
func UpdateProduct(db *gorm.DB, uploads Uploads) gin.HandlerFunc {
	return func(c *gin.Context) {
		idParam := c.Param("id")
		id, err := parseID(idParam)
		if err != nil {
			notOwned(c, idParam, "params")
			return
		}

		product, err := findOwned(db, id, middleware.UserID(c))
		if errors.Is(err, models.ErrNotFound) {
			notOwned(c, idParam, "params")
			return
		}
		if err != nil {
			response.Internal(c, err)
			return
		}

		var form productForm
		if err := c.ShouldBind(&form); err != nil {
			response.Invalid(c, err, "body")
			return
		}
		if err := form.apply(product); err != nil {
			formError(c, err)
			return
		}

		offset := 0
		if n := len(product.Images); n > 0 {
			offset = product.Images[n-1].Position + 1
		}
		images, err := uploads.save(c, offset)
		if err != nil {
			response.Internal(c, err)
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Omit(clause.Associations).Save(product).Error; err != nil {
				return err
			}
			for i := range images {
				images[i].ProductID = product.ID
			}
			if len(images) > 0 {
				if err := tx.Create(&images).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			response.Internal(c, err)
			return
		}
		product.Images = append(product.Images, images...)

		response.Success(c, http.StatusOK, "success", gin.H{
			"product": product,
			"msg":     "Product was successfully updated",
		})
	}
}
