package productcontroller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/urbantrove-ng/Urbantrove-Api/models"
	"github.com/urbantrove-ng/Urbantrove-Api/response"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindNumber
	kindInt
	kindBool
	kindTime
)

type filterField struct {
	column string
	kind   fieldKind
}

// filterable maps the JSON names clients filter and sort on to columns.
var filterable = map[string]filterField{
	"id":                                {"id", kindInt},
	"productName":                       {"product_name", kindString},
	"productType":                       {"product_type", kindString},
	"categoryId":                        {"category_id", kindInt},
	"userId":                            {"user_id", kindString},
	"header":                            {"header", kindString},
	"prices.actualPrice":                {"actual_price", kindNumber},
	"prices.discount":                   {"discount", kindNumber},
	"prices.shippingFee":                {"shipping_fee", kindNumber},
	"additionalDetails.gender":          {"details_gender", kindString},
	"additionalDetails.seller":          {"details_seller", kindString},
	"additionalDetails.quantity":        {"details_quantity", kindInt},
	"deliveryPreference.handleDelivery": {"delivery_handle_delivery", kindBool},
	"createdAt":                         {"created_at", kindTime},
	"updatedAt":                         {"updated_at", kindTime},
}

// Short aliases for the nested price fields.
func init() {
	filterable["actualPrice"] = filterable["prices.actualPrice"]
	filterable["discount"] = filterable["prices.discount"]
	filterable["shippingFee"] = filterable["prices.shippingFee"]
	filterable["price"] = filterable["prices.actualPrice"]
}

var comparisons = map[string]string{"gte": ">=", "gt": ">", "lte": "<=", "lt": "<"}

var reservedParams = map[string]bool{"page": true, "sort": true, "limit": true, "fields": true}

const (
	defaultLimit = 100
	maxLimit     = 100
)

// productQuery is a parsed /filter query string.
type productQuery struct {
	conditions []condition
	order      []string
	fields     []string
	page       int
	limit      int
}

type condition struct {
	sql   string
	value any
}

// parseProductQuery reads field[op]=value filters, sort, fields, page and limit.
func parseProductQuery(values url.Values) (*productQuery, error) {
	q := &productQuery{page: 1, limit: defaultLimit}

	for key, vals := range values {
		if reservedParams[key] || len(vals) == 0 {
			continue
		}
		name, op := key, ""
		if i := strings.IndexByte(key, '['); i > 0 && strings.HasSuffix(key, "]") {
			name, op = key[:i], key[i+1:len(key)-1]
		}

		field, ok := filterable[name]
		if !ok {
			return nil, fmt.Errorf("%w: cannot filter on %q", models.ErrValidation, name)
		}
		operator := "="
		if op != "" {
			if operator, ok = comparisons[op]; !ok {
				return nil, fmt.Errorf("%w: unknown operator %q", models.ErrValidation, op)
			}
		}
		value, err := field.parse(vals[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", models.ErrValidation, key, err)
		}
		q.conditions = append(q.conditions, condition{sql: field.column + " " + operator + " ?", value: value})
	}

	sortParam := values.Get("sort")
	if sortParam == "" {
		sortParam = "-createdAt"
	}
	for _, s := range strings.Split(sortParam, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		dir := "ASC"
		if strings.HasPrefix(s, "-") {
			dir, s = "DESC", s[1:]
		}
		field, ok := filterable[s]
		if !ok {
			return nil, fmt.Errorf("%w: cannot sort on %q", models.ErrValidation, s)
		}
		q.order = append(q.order, field.column+" "+dir)
	}

	if raw := values.Get("fields"); raw != "" {
		for _, f := range strings.Split(raw, ",") {
			if f = strings.TrimSpace(f); f != "" {
				q.fields = append(q.fields, f)
			}
		}
	}

	var err error
	if q.page, err = positive(values.Get("page"), 1); err != nil {
		return nil, fmt.Errorf("%w: page: %v", models.ErrValidation, err)
	}
	if q.limit, err = positive(values.Get("limit"), defaultLimit); err != nil {
		return nil, fmt.Errorf("%w: limit: %v", models.ErrValidation, err)
	}
	if q.limit > maxLimit {
		q.limit = maxLimit
	}
	return q, nil
}

func (f filterField) parse(raw string) (any, error) {
	switch f.kind {
	case kindNumber:
		return strconv.ParseFloat(raw, 64)
	case kindInt:
		return strconv.ParseInt(raw, 10, 64)
	case kindBool:
		return strconv.ParseBool(raw)
	case kindTime:
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t, nil
		}
		return time.Parse("2006-01-02", raw)
	default:
		return raw, nil
	}
}

func positive(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.New("must be a positive integer")
	}
	return n, nil
}

func (q *productQuery) scope(db *gorm.DB) *gorm.DB {
	for _, cond := range q.conditions {
		db = db.Where(cond.sql, cond.value)
	}
	for _, o := range q.order {
		db = db.Order(o)
	}
	return db.Order("id ASC").Offset((q.page - 1) * q.limit).Limit(q.limit)
}

// project keeps only the requested top-level JSON keys (plus id) of each product.
func (q *productQuery) project(products []models.Product) (any, error) {
	if len(q.fields) == 0 {
		return products, nil
	}
	out := make([]map[string]json.RawMessage, 0, len(products))
	for _, p := range products {
		raw, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		var all map[string]json.RawMessage
		if err := json.Unmarshal(raw, &all); err != nil {
			return nil, err
		}
		picked := map[string]json.RawMessage{"id": all["id"]}
		for _, f := range q.fields {
			if v, ok := all[f]; ok {
				picked[f] = v
			}
		}
		out = append(out, picked)
	}
	return out, nil
}

// GET /filter
func FilterProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := parseProductQuery(c.Request.URL.Query())
		if err != nil {
			response.Invalid(c, err, "query")
			return
		}

		var products []models.Product
		if err := q.scope(withAssociations(db)).Find(&products).Error; err != nil {
			response.Internal(c, err)
			return
		}

		data, err := q.project(products)
		if err != nil {
			response.Internal(c, err)
			return
		}
		response.Success(c, http.StatusOK, "success", gin.H{
			"product": data,
			"page":    q.page,
			"limit":   q.limit,
		})
	}
}
