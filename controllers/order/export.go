package orderControllers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/urbantrove-ng/Urbantrove-Api/middleware"
	"github.com/urbantrove-ng/Urbantrove-Api/response"
)

var exportHeaders = []string{
	"Order No", "Status", "Buyer", "Product ID", "Product", "Quantity",
	"Item Total", "Commission", "Order Total", "City", "Created At",
}

// WriteVendorWorkbook lays the report out as one row per vendor item.
func WriteVendorWorkbook(report []VendorOrder) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return nil, err
	}

	headerRow := sheet.AddRow()
	for _, h := range exportHeaders {
		headerRow.AddCell().SetString(h)
	}

	for _, order := range report {
		for _, item := range order.Items {
			row := sheet.AddRow()
			row.AddCell().SetString(order.OrderNo)
			row.AddCell().SetString(string(order.Status))
			row.AddCell().SetString(order.User.Fullname)
			row.AddCell().SetInt(int(item.Product.ID))
			row.AddCell().SetString(item.Product.ProductName)
			row.AddCell().SetInt(item.Quantity)
			row.AddCell().SetString(item.Total.StringFixed(2))
			row.AddCell().SetString(item.Commission.StringFixed(2))
			row.AddCell().SetString(order.Total.StringFixed(2))
			row.AddCell().SetString(order.Address.City)
			row.AddCell().SetString(order.CreatedAt.Format("2006-01-02 15:04:05"))
		}
	}
	return file, nil
}

// GET /vendor/orders/export
func ExportVendorOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID := middleware.UserID(c)
		report, err := BuildVendorReport(db, vendorID)
		if err != nil {
			response.Internal(c, err)
			return
		}

		file, err := WriteVendorWorkbook(report)
		if err != nil {
			response.Internal(c, err)
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=orders-%s.xlsx", vendorID))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			response.Internal(c, err)
			return
		}
	}
}
