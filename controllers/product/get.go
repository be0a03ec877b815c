package productcontroller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/urbantrove-ng/Urbantrove-Api/models"
	"github.com/urbantrove-ng/Urbantrove-Api/response"
)

// GET /product/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return getSingle(db, models.ProductTypeProduct, "product", "No product found with id=%s please verify id")
}

// GET /service/:id
func GetServiceByID(db *gorm.DB) gin.HandlerFunc {
	return getSingle(db, models.ProductTypeService, "service", "No Service found with id=%s please verify id.")
}

func getSingle(db *gorm.DB, kind models.ProductType, key, missing string) gin.HandlerFunc {
	return func(c *gin.Context) {
		idParam := c.Param("id")
		notFound := func() {
			response.Fail(c, http.StatusBadRequest, response.Detail{
				Path: "id", Msg: fmt.Sprintf(missing, idParam), Value: idParam, Location: "params",
			})
		}

		id, err := parseID(idParam)
		if err != nil {
			notFound()
			return
		}

		var product models.Product
		err = withAssociations(db).Where("product_type = ?", kind).First(&product, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound()
			return
		}
		if err != nil {
			response.Internal(c, err)
			return
		}

		label := "Product"
		if kind == models.ProductTypeService {
			label = "Service"
		}
		response.Success(c, http.StatusOK, "success", gin.H{
			key:   product,
			"msg": label + " fetched successfully",
		})
	}
}
