package orderControllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/urbantrove-ng/Urbantrove-Api/events"
	"github.com/urbantrove-ng/Urbantrove-Api/middleware"
	"github.com/urbantrove-ng/Urbantrove-Api/models"
	"github.com/urbantrove-ng/Urbantrove-Api/response"
	"github.com/urbantrove-ng/Urbantrove-Api/store"
)

// -------- Request Structs --------

type CheckoutRequest struct {
	Address models.Address `json:"address"`
}

// -------- Helpers --------

// generateOrderNo returns a readable unique order number, UT-<timestamp>-<6 hex>.
func generateOrderNo(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return "UT-" + now.Format("20060102150405") + "-" + strings.ToUpper(suffix)
}

func emptyCart(c *gin.Context) {
	response.Fail(c, http.StatusBadRequest, response.Detail{
		Path: "cart", Msg: "Invalid cart details", Location: "session",
	})
}

// -------- Core Logic --------

// PlaceOrder turns cart lines into a pending order for buyerID. Lines are priced
// from the locked product row, not the cart snapshot. Each line's commission is
// rate × line total; the order total adds every line's shipping.
func PlaceOrder(db *gorm.DB, buyerID string, items []models.CartItem, address models.Address, rate decimal.Decimal, now time.Time) (*models.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", models.ErrValidation)
	}

	order := models.Order{
		OrderNo:   generateOrderNo(now),
		UserID:    buyerID,
		Status:    models.OrderStatusPending,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			var product models.Product
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("product_type = ?", models.ProductTypeProduct).
				First(&product, item.ID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product %d is no longer available", models.ErrNotFound, item.ID)
			}
			if err != nil {
				return err
			}

			total := product.Prices.Effective().Mul(decimal.NewFromInt(int64(item.Quantity)))
			commission := total.Mul(rate).Round(2)
			order.Items = append(order.Items, models.OrderItem{
				ProductID:  product.ID,
				VendorID:   product.UserID,
				Quantity:   item.Quantity,
				Commission: commission,
				Total:      total,
			})
			order.Total = order.Total.Add(total).Add(product.Prices.ShippingFee)
			order.TotalCommission = order.TotalCommission.Add(commission)
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// -------- Handlers --------

// GET /order
func GetCurrentOrder(db *gorm.DB, carts *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		items := carts.Snapshot(middleware.SessionKey(c))
		if len(items) == 0 {
			emptyCart(c)
			return
		}

		var user *models.User
		var found models.User
		err := db.First(&found, "id = ?", middleware.UserID(c)).Error
		switch {
		case err == nil:
			user = &found
		case !errors.Is(err, gorm.ErrRecordNotFound):
			response.Internal(c, err)
			return
		}

		response.Success(c, http.StatusOK, "success", gin.H{"user": user, "cart": items})
	}
}

// POST /order
func Checkout(db *gorm.DB, carts *store.CartStore, hub events.Publisher, rate decimal.Decimal) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := middleware.SessionKey(c)
		items := carts.Snapshot(key)
		if len(items) == 0 {
			emptyCart(c)
			return
		}

		var req CheckoutRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				response.Invalid(c, err, "body")
				return
			}
		}

		order, err := PlaceOrder(db, middleware.UserID(c), items, req.Address, rate, time.Now())
		if errors.Is(err, models.ErrNotFound) {
			response.Fail(c, http.StatusBadRequest, response.Detail{
				Path: "cart", Msg: err.Error(), Location: "session",
			})
			return
		}
		if err != nil {
			response.Internal(c, err)
			return
		}
		carts.Clear(key)

		log.Printf("✅ Order %s placed by %s", order.OrderNo, order.UserID)
		hub.Publish(events.OrderCreated, events.SummarizeOrder(*order))
		response.Success(c, http.StatusCreated, "success", gin.H{"order": order})
	}
}
