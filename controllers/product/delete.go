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

// DELETE /product/:id
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
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

		// Images stay with the soft-deleted row so vendor reports can still show them.
		if err := db.Delete(&models.Product{}, product.ID).Error; err != nil {
			response.Internal(c, err)
			return
		}
		log.Printf("🗑️ Product %d deleted by %s", product.ID, product.UserID)

		response.Success(c, http.StatusOK, "success", gin.H{
			"product": product,
			"msg":     "Product was successfully removed",
		})
	}
}

type deleteImageInput struct {
	ProdID uint `json:"prodId" binding:"required"`
	ImgID  uint `json:"imgId" binding:"required"`
}

// DELETE /product/image
func DeleteProductImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input deleteImageInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Invalid(c, err, "body")
			return
		}

		product, err := findOwned(db, input.ProdID, middleware.UserID(c))
		if errors.Is(err, models.ErrNotFound) {
			notOwned(c, input.ProdID, "body")
			return
		}
		if err != nil {
			response.Internal(c, err)
			return
		}

		res := db.Where("id = ? AND product_id = ?", input.ImgID, product.ID).Delete(&models.ProductImage{})
		if res.Error != nil {
			response.Internal(c, res.Error)
			return
		}
		if res.RowsAffected == 0 {
			response.Fail(c, http.StatusBadRequest, response.Detail{
				Path: "imgId", Msg: "No image found with this id on the product", Value: input.ImgID, Location: "body",
			})
			return
		}

		kept := product.Images[:0]
		for _, img := range product.Images {
			if img.ID != input.ImgID {
				kept = append(kept, img)
			}
		}
		product.Images = kept

		response.Success(c, http.StatusOK, "success", gin.H{
			"product": product,
			"msg":     "Product image was successfully removed",
		})
	}
}
