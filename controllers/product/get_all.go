package productcontroller

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

// GET /products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return listByType(db, models.ProductTypeProduct, "products", "Products fetched successfully")
}

// GET /services
func GetServices(db *gorm.DB) gin.HandlerFunc {
	return listByType(db, models.ProductTypeService, "services", "Services fetched successfully")
}

func listByType(db *gorm.DB, kind models.ProductType, key, msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := withAssociations(db).
			Where("product_type = ?", kind).
			Order("created_at DESC").
			Find(&products).Error; err != nil {
			response.Internal(c, err)
			return
		}
		response.Success(c, http.StatusOK, "success", gin.H{key: products, "msg": msg})
	}
}

// GET /category_products?subCategory=
func GetSubCategoryProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub := c.Query("subCategory")
		if sub == "" {
			response.Fail(c, http.StatusUnprocessableEntity, response.Detail{
				Path: "subCategory", Msg: "subCategory is required", Location: "query",
			})
			return
		}

		var category models.Category
		err := db.Where("sub_category = ?", sub).First(&category).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusBadRequest, response.Detail{
				Path: "subCategory", Msg: "No category found", Value: sub, Location: "query",
			})
			return
		}
		if err != nil {
			response.Internal(c, err)
			return
		}

		var products []models.Product
		if err := withAssociations(db).Where("category_id = ?", category.ID).
			Order("created_at DESC").Find(&products).Error; err != nil {
			response.Internal(c, err)
			return
		}

		msg := "Products fetched successfully"
		if len(products) == 0 {
			msg = "no product found"
		}
		response.Success(c, http.StatusOK, "success", gin.H{"products": products, "msg": msg})
	}
}

// GET /vendor/products
func GetVendorProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := withAssociations(db).
			Where("user_id = ?", middleware.UserID(c)).
			Order("created_at DESC").
			Find(&products).Error; err != nil {
			response.Internal(c, err)
			return
		}
		response.Success(c, http.StatusOK, "success", gin.H{
			"number":   len(products),
			"products": products,
		})
	}
}

// GET /search?q=
func SearchProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := strings.ToLower(strings.TrimSpace(c.Query("q")))
		pattern := "%" + escapeLike(q) + "%"

		var products []models.Product
		if err := withAssociations(db).
			Where(`LOWER(product_name) LIKE ? ESCAPE '\'`, pattern).
			Order("created_at DESC").
			Find(&products).Error; err != nil {
			response.Internal(c, err)
			return
		}
		response.Success(c, http.StatusOK, "success", gin.H{
			"products": products,
			"msg":      "Products fetched successfully",
		})
	}
}

// GET /related_products?id=<categoryId>&productType=
func GetRelatedProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, err := parseID(c.Query("id"))
		if err != nil {
			response.Fail(c, http.StatusUnprocessableEntity, response.Detail{
				Path: "id", Msg: "A valid category id is required", Value: c.Query("id"), Location: "query",
			})
			return
		}
		kind := models.ProductType(c.DefaultQuery("productType", string(models.ProductTypeProduct)))
		if !kind.Valid() {
			response.Fail(c, http.StatusUnprocessableEntity, response.Detail{
				Path: "productType", Msg: "productType must be product or service", Value: kind, Location: "query",
			})
			return
		}

		var products []models.Product
		if err := withAssociations(db).
			Where("category_id = ? AND product_type = ?", categoryID, kind).
			Order("created_at DESC").
			Find(&products).Error; err != nil {
			response.Internal(c, err)
			return
		}
		response.Success(c, http.StatusOK, "success", gin.H{
			"products": products,
			"msg":      "Related Products fetched successfully",
		})
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
