package productcontroller

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/urbantrove-ng/Urbantrove-Api/middleware"
	"github.com/urbantrove-ng/Urbantrove-Api/models"
	"github.com/urbantrove-ng/Urbantrove-Api/response"
)

// CreateProduct lists a new product or service for the authenticated vendor.
// Multipart form; any number of "image" files.
func CreateProduct(db *gorm.DB, uploads Uploads) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form productForm
		if err := c.ShouldBind(&form); err != nil {
			response.Invalid(c, err, "body")
			return
		}
		if err := form.validateNew(); err != nil {
			formError(c, err)
			return
		}

		category, err := lookupCategory(db, form.CategoryName, form.SubCategory)
		if errors.Is(err, models.ErrNotFound) {
			response.Fail(c, http.StatusBadRequest, response.Detail{
				Path: "subCategory", Msg: "No category found for categoryName and subCategory",
				Value: form.SubCategory, Location: "body",
			})
			return
		}
		if err != nil {
			response.Internal(c, err)
			return
		}

		product := models.Product{
			CategoryID: category.ID,
			UserID:     middleware.UserID(c),
		}
		if err := form.apply(&product); err != nil {
			formError(c, err)
			return
		}

		images, err := uploads.save(c, 0)
		if err != nil {
			response.Internal(c, err)
			return
		}
		product.Images = images

		if err := db.Create(&product).Error; err != nil {
			response.Internal(c, err)
			return
		}
		log.Printf("✅ Product %d created by %s", product.ID, product.UserID)

		product.Category = category
		response.Success(c, http.StatusCreated, "success", gin.H{
			"product": product,
			"msg":     "Single product inserted successfully",
		})
	}
}

// formError maps a form failure to 422 with the offending field.
func formError(c *gin.Context, err error) {
	var fe *fieldError
	if errors.As(err, &fe) {
		response.Fail(c, http.StatusUnprocessableEntity, response.Detail{
			Path: fe.Field, Msg: fe.Error(), Value: fe.Value, Location: "body",
		})
		return
	}
	response.Invalid(c, err, "body")
}
