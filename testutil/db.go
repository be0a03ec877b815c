// Package testutil holds fixtures shared by the package tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/urbantrove-ng/Urbantrove-Api/models"
)

// NewDB opens a private in-memory SQLite database for t and migrates every model.
// Foreign keys are enforced as they are on PostgreSQL.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// CreateUser inserts a user with the given id and role.
func CreateUser(t testing.TB, db *gorm.DB, id, fullname string, role models.Role) models.User {
	t.Helper()
	user := models.User{ID: id, Fullname: fullname, Email: id + "@example.com", Role: role}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// CreateCategory inserts a category.
func CreateCategory(t testing.TB, db *gorm.DB, categoryType, name, sub string) models.Category {
	t.Helper()
	category := models.Category{CategoryType: categoryType, CategoryName: name, SubCategory: sub}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

// CreateProduct inserts a product owned by vendorID with one image.
func CreateProduct(t testing.TB, db *gorm.DB, vendorID string, categoryID uint, name string, kind models.ProductType, price, discount int64) models.Product {
	t.Helper()
	product := models.Product{
		ProductName: name,
		CategoryID:  categoryID,
		ProductType: kind,
		UserID:      vendorID,
		Prices: models.Prices{
			ActualPrice: decimal.NewFromInt(price),
			Discount:    decimal.NewFromInt(discount),
			ShippingFee: decimal.NewFromInt(100),
		},
		Images: []models.ProductImage{{URL: "http://img/" + strings.ReplaceAll(name, " ", "_") + ".png"}},
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

// ItemSpec describes one order line for CreateOrder.
type ItemSpec struct {
	Product  models.Product
	Quantity int
}

// CreateOrder inserts a pending order for buyerID with the given lines.
func CreateOrder(t testing.TB, db *gorm.DB, buyerID, orderNo string, lines ...ItemSpec) models.Order {
	t.Helper()
	order := models.Order{
		OrderNo: orderNo,
		UserID:  buyerID,
		Status:  models.OrderStatusPending,
		Address: models.Address{Street: "1 Marina", City: "Lagos", Country: "NG"},
	}
	for _, line := range lines {
		total := line.Product.Prices.Effective().Mul(decimal.NewFromInt(int64(line.Quantity)))
		commission := total.Mul(decimal.RequireFromString("0.1"))
		order.Items = append(order.Items, models.OrderItem{
			ProductID:  line.Product.ID,
			VendorID:   line.Product.UserID,
			Quantity:   line.Quantity,
			Total:      total,
			Commission: commission,
		})
		order.Total = order.Total.Add(total)
		order.TotalCommission = order.TotalCommission.Add(commission)
	}
	order.CreatedAt = time.Now()
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}
