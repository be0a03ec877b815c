package notify

import (
	"bytes"
	"html/template"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/urbantrove-ng/Urbantrove-Api/models"
)

const brand = "Urban Trove"

var printer = message.NewPrinter(language.English)

// naira formats an amount with thousands separators, e.g. ₦12,500.00.
func naira(d decimal.Decimal) string {
	return printer.Sprintf("₦%.2f", d.InexactFloat64())
}

var layout = template.Must(template.New("mail").Funcs(template.FuncMap{"naira": naira}).Parse(`<!DOCTYPE html>
<html><body style="font-family:Helvetica,Arial,sans-serif;color:#333">
<h2>{{.Brand}}</h2>
<p>Hi {{.Name}},</p>
{{range .Intro}}<p>{{.}}</p>
{{end}}<table style="width:100%;border-collapse:collapse">
<caption style="text-align:left;font-weight:bold">{{.Title}}</caption>
<tr><th style="text-align:left;width:60%">Item</th><th>Qty</th><th style="text-align:right">Price</th></tr>
{{range .Rows}}<tr><td>{{.Item}}</td><td>{{.Quantity}}</td><td style="text-align:right">{{naira .Price}}</td></tr>
{{end}}{{if .ShowTotal}}<tr><td><b>Total</b></td><td></td><td style="text-align:right"><b>{{naira .Total}}</b></td></tr>
{{end}}</table>
<p>{{.Outro}}</p>
<p>Warm Regards,<br>{{.Brand}}</p>
</body></html>`))

type row struct {
	Item     string
	Quantity int
	Price    decimal.Decimal
}

type mailData struct {
	Brand     string
	Name      string
	Intro     []string
	Title     string
	Rows      []row
	ShowTotal bool
	Total     decimal.Decimal
	Outro     string
}

func rows(items []models.OrderItem) []row {
	out := make([]row, 0, len(items))
	for _, item := range items {
		name := "Product"
		if item.Product != nil {
			name = item.Product.ProductName
		}
		out = append(out, row{Item: name, Quantity: item.Quantity, Price: item.Total})
	}
	return out
}

func render(data mailData) (string, error) {
	data.Brand = brand
	var buf bytes.Buffer
	if err := layout.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buyerMail(buyer models.User, order models.Order) (subject, body string, err error) {
	subject = "Your " + brand + " Order " + order.OrderNo + " has been Confirmed."
	body, err = render(mailData{
		Name: buyer.DisplayName(),
		Intro: []string{
			"Thank you for shopping on " + brand + "!",
			"Your order " + order.OrderNo + " has been confirmed successfully.",
			"It will be packed and shipped as soon as possible. You will receive a notification from us once the item(s) are ready for delivery.",
		},
		Title:     "Order: " + order.OrderNo,
		Rows:      rows(order.Items),
		ShowTotal: true,
		Total:     order.Total,
		Outro:     "Need help, or have questions? Just reply to this email, we'd love to help.",
	})
	return subject, body, err
}

func vendorMail(vendor models.User, order models.Order, items []models.OrderItem) (subject, body string, err error) {
	subject = "New Order " + order.OrderNo + " for Your Product on " + brand
	body, err = render(mailData{
		Name: vendor.DisplayName(),
		Intro: []string{
			"You have a new order on " + brand + "!",
			"Order " + order.OrderNo + " has been placed and includes your products.",
			"Please note: You have 3 days to send out this delivery, otherwise the order will be cancelled.",
		},
		Title: "Order Details: " + order.OrderNo,
		Rows:  rows(items),
		Outro: "Need help or have questions? Just reply to this email, we'd love to assist.",
	})
	return subject, body, err
}
