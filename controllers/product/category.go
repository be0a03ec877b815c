package productcontroller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/urbantrove-ng/Urbantrove-Api/models"
	"github.com/urbantrove-ng/Urbantrove-Api/response"
)

// GET /category/:type
func GetCategoriesByType(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Where("category_type = ?", c.Param("type")).
			Order("category_name ASC, sub_category ASC").
			Find(&categories).Error; err != nil {
			response.Internal(c, err)
			return
		}
		response.Success(c, http.StatusOK, "success", gin.H{
			"categories": categories,
			"msg":        "Single Category fetched successfully",
		})
	}
}

type categoryInput struct {
	CategoryType string `json:"categoryType" binding:"required"`
	CategoryName string `json:"categoryName" binding:"required"`
	SubCategory  string `json:"subCategory" binding:"required"`
}

// POST /admin/categories
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input categoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Invalid(c, err, "body")
			return
		}

		category := models.Category{
			CategoryType: strings.TrimSpace(input.CategoryType),
			CategoryName: strings.TrimSpace(input.CategoryName),
			SubCategory:  strings.TrimSpace(input.SubCategory),
		}
		if err := db.Create(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(strings.ToLower(err.Error()), "unique") {
				response.Fail(c, http.StatusConflict, response.Detail{
					Path: "subCategory", Msg: "Category already exists", Value: input.SubCategory, Location: "body",
				})
				return
			}
			response.Internal(c, err)
			return
		}
		response.Success(c, http.StatusCreated, "success", gin.H{"category": category})
	}
}

// lookupCategory resolves the category a vendor picks by name and sub-category.
func lookupCategory(db *gorm.DB, name, sub string) (*models.Category, error) {
	var category models.Category
	err := db.Where("category_name = ? AND sub_category = ?", name, sub).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}
