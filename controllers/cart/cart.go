package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/urbantrove-ng/Urbantrove-Api/middleware"
	"github.com/urbantrove-ng/Urbantrove-Api/models"
	"github.com/urbantrove-ng/Urbantrove-Api/response"
	"github.com/urbantrove-ng/Urbantrove-Api/store"
)

// -------- Request Structs --------

type CartItemInput struct {
	ID uint `json:"id" binding:"required"`
}

// -------- Helpers --------

func sessionOrFail(c *gin.Context) (string, bool) {
	key := middleware.SessionKey(c)
	if key == "" {
		response.Fail(c, http.StatusBadRequest, response.Detail{
			Path: "guest_id", Msg: "A token or guest id is required", Location: "query",
		})
		return "", false
	}
	return key, true
}

func productNotFound(c *gin.Context, msg string, id uint) {
	response.Fail(c, http.StatusNotFound, response.Detail{
		Path: "id", Msg: msg, Value: id, Location: "body",
	})
}

// -------- Handlers --------

// GET /cart
func GetCart(carts *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := middleware.SessionKey(c)
		items := []models.CartItem{}
		if key != "" {
			items = carts.Snapshot(key)
		}
		response.Success(c, http.StatusOK, "success", items)
	}
}

// POST /cart
func AddToCart(db *gorm.DB, carts *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := sessionOrFail(c)
		if !ok {
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Invalid(c, err, "body")
			return
		}

		var product models.Product
		err := db.Preload("Images", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC, id ASC")
		}).Where("product_type = ?", models.ProductTypeProduct).First(&product, input.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			productNotFound(c, "Product not found", input.ID)
			return
		}
		if err != nil {
			response.Internal(c, err)
			return
		}

		items, err := carts.AddOrIncrement(key, product)
		if errors.Is(err, models.ErrNotFound) {
			productNotFound(c, "Product not found", input.ID)
			return
		}
		if err != nil {
			response.Internal(c, err)
			return
		}
		response.Success(c, http.StatusOK, "success", items)
	}
}

// DELETE /cart
func RemoveFromCart(carts *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := sessionOrFail(c)
		if !ok {
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Invalid(c, err, "body")
			return
		}

		items, err := carts.DecrementOrRemove(key, input.ID)
		if errors.Is(err, models.ErrNotFound) {
			productNotFound(c, "Product not found in cart", input.ID)
			return
		}
		if err != nil {
			response.Internal(c, err)
			return
		}
		response.Success(c, http.StatusOK, "success", items)
	}
}
