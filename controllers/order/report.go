package orderControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/urbantrove-ng/Urbantrove-Api/middleware"
	"github.com/urbantrove-ng/Urbantrove-Api/models"
	"github.com/urbantrove-ng/Urbantrove-Api/response"
)

// -------- Report Shapes --------

type VendorOrderProduct struct {
	ID          uint                  `json:"id"`
	ProductName string                `json:"productName"`
	Images      []models.ProductImage `json:"images"`
}

type VendorOrderItem struct {
	Quantity   int                `json:"quantity"`
	Commission decimal.Decimal    `json:"commission"`
	Total      decimal.Decimal    `json:"total"`
	Product    VendorOrderProduct `json:"product"`
}

type VendorOrderBuyer struct {
	Fullname string `json:"fullname"`
}

// VendorOrder is one order as a vendor sees it: only their items, but the
// order-level figures as the buyer placed them.
type VendorOrder struct {
	ID              uint               `json:"id"`
	OrderNo         string             `json:"orderNo"`
	Items           []VendorOrderItem  `json:"items"`
	Total           decimal.Decimal    `json:"total"`
	TotalCommission decimal.Decimal    `json:"totalCommission"`
	Status          models.OrderStatus `json:"status"`
	Address         models.Address     `json:"address"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
	User            VendorOrderBuyer   `json:"user"`
}

// vendorItemRow is one order line flattened out of its order.
type vendorItemRow struct {
	ItemID      uint
	OrderID     uint
	ProductID   uint
	ProductName string
	Quantity    int
	Commission  decimal.Decimal
	Total       decimal.Decimal
}

// -------- Core Logic --------

// BuildVendorReport lists the orders containing vendorID's items. Rows are
// flattened per item, filtered by vendor and joined with their product, then
// regrouped by order in first-seen order. Orders without a matching item
// never appear.
func BuildVendorReport(db *gorm.DB, vendorID string) ([]VendorOrder, error) {
	var rows []vendorItemRow
	err := db.Table("order_items AS oi").
		Select("oi.id AS item_id, oi.order_id, oi.product_id, p.product_name, oi.quantity, oi.commission, oi.total").
		Joins("JOIN products p ON p.id = oi.product_id").
		Where("oi.vendor_id = ?", vendorID).
		Order("oi.order_id ASC, oi.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []VendorOrder{}, nil
	}

	var orderIDs, productIDs []uint
	seenOrder := map[uint]bool{}
	seenProduct := map[uint]bool{}
	for _, row := range rows {
		if !seenOrder[row.OrderID] {
			seenOrder[row.OrderID] = true
			orderIDs = append(orderIDs, row.OrderID)
		}
		if !seenProduct[row.ProductID] {
			seenProduct[row.ProductID] = true
			productIDs = append(productIDs, row.ProductID)
		}
	}

	var images []models.ProductImage
	if err := db.Where("product_id IN ?", productIDs).Order("position ASC, id ASC").Find(&images).Error; err != nil {
		return nil, err
	}
	imagesByProduct := map[uint][]models.ProductImage{}
	for _, img := range images {
		imagesByProduct[img.ProductID] = append(imagesByProduct[img.ProductID], img)
	}

	var orders []models.Order
	if err := db.Where("id IN ?", orderIDs).Find(&orders).Error; err != nil {
		return nil, err
	}
	ordersByID := make(map[uint]models.Order, len(orders))
	var buyerIDs []string
	for _, o := range orders {
		ordersByID[o.ID] = o
		buyerIDs = append(buyerIDs, o.UserID)
	}

	var buyers []models.User
	if err := db.Where("id IN ?", buyerIDs).Find(&buyers).Error; err != nil {
		return nil, err
	}
	names := make(map[string]string, len(buyers))
	for _, u := range buyers {
		names[u.ID] = u.Fullname
	}

	report := make([]VendorOrder, 0, len(orderIDs))
	index := make(map[uint]int, len(orderIDs))
	for _, row := range rows {
		i, ok := index[row.OrderID]
		if !ok {
			o := ordersByID[row.OrderID]
			report = append(report, VendorOrder{
				ID:              o.ID,
				OrderNo:         o.OrderNo,
				Total:           o.Total,
				TotalCommission: o.TotalCommission,
				Status:          o.Status,
				Address:         o.Address,
				CreatedAt:       o.CreatedAt,
				UpdatedAt:       o.UpdatedAt,
				User:            VendorOrderBuyer{Fullname: names[o.UserID]},
			})
			i = len(report) - 1
			index[row.OrderID] = i
		}
		productImages := imagesByProduct[row.ProductID]
		if productImages == nil {
			productImages = []models.ProductImage{}
		}
		report[i].Items = append(report[i].Items, VendorOrderItem{
			Quantity:   row.Quantity,
			Commission: row.Commission,
			Total:      row.Total,
			Product: VendorOrderProduct{
				ID:          row.ProductID,
				ProductName: row.ProductName,
				Images:      productImages,
			},
		})
	}
	return report, nil
}

// -------- Handlers --------

// GET /vendor/orders
func GetVendorOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := BuildVendorReport(db, middleware.UserID(c))
		if err != nil {
			response.Internal(c, err)
			return
		}
		response.Success(c, http.StatusOK, "success", report)
	}
}
