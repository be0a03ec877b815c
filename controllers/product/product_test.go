package productcontroller

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/urbantrove-ng/Urbantrove-Api/middleware"
	"github.com/urbantrove-ng/Urbantrove-Api/models"
	"github.com/urbantrove-ng/Urbantrove-Api/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
}

// as authenticates every request as userID.
func as(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}

func newRouter(t *testing.T, db *gorm.DB, userID string) *gin.Engine {
	uploads := Uploads{Dir: t.TempDir(), BaseURL: "http://cdn.test/"}
	r := gin.New()
	r.GET("/category/:type", GetCategoriesByType(db))
	r.GET("/products", GetProducts(db))
	r.GET("/services", GetServices(db))
	r.GET("/product/:id", GetProductByID(db))
	r.GET("/service/:id", GetServiceByID(db))
	r.GET("/category_products", GetSubCategoryProducts(db))
	r.GET("/search", SearchProducts(db))
	r.GET("/related_products", GetRelatedProducts(db))
	r.POST("/admin/categories", CreateCategory(db))

	authed := r.Group("/", as(userID))
	authed.POST("/product", CreateProduct(db, uploads))
	authed.PATCH("/product/:id", UpdateProduct(db, uploads))
	authed.DELETE("/product/:id", DeleteProduct(db))
	authed.DELETE("/product/image", DeleteProductImage(db))
	authed.GET("/vendor/products", GetVendorProducts(db))
	authed.GET("/filter", FilterProducts(db))
	return r
}

func do(r http.Handler, method, target string, body *bytes.Buffer, contentType string) (*httptest.ResponseRecorder, envelope) {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req, _ := http.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func multipartBody(t *testing.T, fields map[string]string, images ...string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, name := range images {
		fw, err := mw.CreateFormFile("image", name)
		require.NoError(t, err)
		_, _ = fw.Write([]byte("png"))
	}
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

type seeded struct {
	category models.Category
	phone    models.Product
	cover    models.Product
	repair   models.Product
}

func seed(t *testing.T, db *gorm.DB) seeded {
	testutil.CreateUser(t, db, "v1", "Vendor One", models.RoleVendor)
	testutil.CreateUser(t, db, "v2", "Vendor Two", models.RoleVendor)
	cat := testutil.CreateCategory(t, db, "shop", "Electronics", "Phones")
	return seeded{
		category: cat,
		phone:    testutil.CreateProduct(t, db, "v1", cat.ID, "Galaxy Phone", models.ProductTypeProduct, 1000, 100),
		cover:    testutil.CreateProduct(t, db, "v2", cat.ID, "Phone_Cover 100%", models.ProductTypeProduct, 50, 0),
		repair:   testutil.CreateProduct(t, db, "v1", cat.ID, "Screen Repair", models.ProductTypeService, 300, 0),
	}
}

func TestCategoriesByType(t *testing.T) {
	db := testutil.NewDB(t)
	seed(t, db)
	testutil.CreateCategory(t, db, "service", "Home", "Cleaning")
	r := newRouter(t, db, "v1")

	w, env := do(r, http.MethodGet, "/category/shop", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var data struct {
		Categories []models.Category `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Categories, 1)
	assert.Equal(t, "Phones", data.Categories[0].SubCategory)
}

func TestCreateCategory(t *testing.T) {
	db := testutil.NewDB(t)
	r := newRouter(t, db, "admin")

	body := `{"categoryType":"shop","categoryName":"Fashion","subCategory":"Shoes"}`
	w, _ := do(r, http.MethodPost, "/admin/categories", bytes.NewBufferString(body), "application/json")
	assert.Equal(t, http.StatusCreated, w.Code)

	w, _ = do(r, http.MethodPost, "/admin/categories", bytes.NewBufferString(body), "application/json")
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = do(r, http.MethodPost, "/admin/categories", bytes.NewBufferString(`{"categoryType":"shop"}`), "application/json")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListProductsAndServices(t *testing.T) {
	db := testutil.NewDB(t)
	s := seed(t, db)
	r := newRouter(t, db, "v1")

	_, env := do(r, http.MethodGet, "/products", nil, "")
	var products struct {
		Products []models.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &products))
	assert.Len(t, products.Products, 2)
	for _, p := range products.Products {
		assert.Equal(t, models.ProductTypeProduct, p.ProductType)
		require.NotNil(t, p.Category)
		require.NotNil(t, p.User)
		assert.NotEmpty(t, p.Images)
	}

	_, env = do(r, http.MethodGet, "/services", nil, "")
	var services struct {
		Services []models.Product `json:"services"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &services))
	require.Len(t, services.Services, 1)
	assert.Equal(t, s.repair.ID, services.Services[0].ID)
}

func TestGetSingleProduct(t *testing.T) {
	db := testutil.NewDB(t)
	s := seed(t, db)
	r := newRouter(t, db, "v1")

	w, env := do(r, http.MethodGet, "/product/"+itoa(s.phone.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var data struct {
		Product models.Product `json:"product"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "Galaxy Phone", data.Product.ProductName)
	assert.Equal(t, "900", data.Product.Prices.Effective().String())

	w, env = do(r, http.MethodGet, "/product/"+itoa(s.repair.ID), nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "a service is not a product")
	assert.False(t, env.Success)

	w, _ = do(r, http.MethodGet, "/service/"+itoa(s.repair.ID), nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(r, http.MethodGet, "/product/999", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = do(r, http.MethodGet, "/product/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubCategoryProducts(t *testing.T) {
	db := testutil.NewDB(t)
	seed(t, db)
	r := newRouter(t, db, "v1")

	_, env := do(r, http.MethodGet, "/category_products?subCategory=Phones", nil, "")
	var data struct {
		Products []models.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data.Products, 3)

	w, _ := do(r, http.MethodGet, "/category_products?subCategory=Laptops", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchEscapesWildcards(t *testing.T) {
	db := testutil.NewDB(t)
	s := seed(t, db)
	r := newRouter(t, db, "v1")

	search := func(q string) []models.Product {
		_, env := do(r, http.MethodGet, "/search?q="+url.QueryEscape(q), nil, "")
		var data struct {
			Products []models.Product `json:"products"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		return data.Products
	}

	assert.Len(t, search("PHONE"), 2)
	got := search("laxy ph")
	require.Len(t, got, 1, "mid-word substring across a space")
	assert.Equal(t, s.phone.ID, got[0].ID)
	got = search("100%")
	require.Len(t, got, 1)
	assert.Equal(t, s.cover.ID, got[0].ID)
	got = search("_")
	require.Len(t, got, 1)
	assert.Equal(t, s.cover.ID, got[0].ID)
	assert.Empty(t, search("laptop"))
}

func TestRelatedProducts(t *testing.T) {
	db := testutil.NewDB(t)
	s := seed(t, db)
	r := newRouter(t, db, "v1")

	_, env := do(r, http.MethodGet, "/related_products?id="+itoa(s.category.ID)+"&productType=service", nil, "")
	var data struct {
		Products []models.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Products, 1)
	assert.Equal(t, s.repair.ID, data.Products[0].ID)

	w, _ := do(r, http.MethodGet, "/related_products?id=x", nil, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreateProduct(t *testing.T) {
	db := testutil.NewDB(t)
	seed(t, db)
	r := newRouter(t, db, "v1")

	fields := map[string]string{
		"productName":  "Pixel",
		"categoryName": "Electronics",
		"subCategory":  "Phones",
		"productType":  "product",
		"actualPrice":  "500",
		"discount":     "50",
		"shippingFee":  "20",
		"quantity":     "3",
	}
	body, ct := multipartBody(t, fields, "front.png", "back side.png")
	w, env := do(r, http.MethodPost, "/product", body, ct)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var data struct {
		Product models.Product `json:"product"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "v1", data.Product.UserID)
	assert.Equal(t, 3, data.Product.AdditionalDetails.Quantity)
	require.Len(t, data.Product.Images, 2)
	assert.True(t, strings.HasPrefix(data.Product.Images[0].URL, "http://cdn.test/uploads/products/"))
	assert.True(t, strings.HasSuffix(data.Product.Images[1].URL, "back_side.png"))

	fields["subCategory"] = "Tablets"
	body, ct = multipartBody(t, fields)
	w, _ = do(r, http.MethodPost, "/product", body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code, "unknown category")

	fields["subCategory"] = "Phones"
	fields["discount"] = "600"
	body, ct = multipartBody(t, fields)
	w, _ = do(r, http.MethodPost, "/product", body, ct)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "discount above price")

	fields["discount"] = "-1"
	body, ct = multipartBody(t, fields)
	w, _ = do(r, http.MethodPost, "/product", body, ct)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "negative discount")

	delete(fields, "productName")
	fields["discount"] = "0"
	body, ct = multipartBody(t, fields)
	w, _ = do(r, http.MethodPost, "/product", body, ct)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUpdateProductAppendsImages(t *testing.T) {
	db := testutil.NewDB(t)
	s := seed(t, db)
	r := newRouter(t, db, "v1")

	body, ct := multipartBody(t, map[string]string{"productName": "Galaxy Phone 2", "discount": "200"}, "new.png")
	w, _ := do(r, http.MethodPatch, "/product/"+itoa(s.phone.ID), body, ct)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.Product
	require.NoError(t, withAssociations(db).First(&stored, s.phone.ID).Error)
	assert.Equal(t, "Galaxy Phone 2", stored.ProductName)
	assert.Equal(t, "800", stored.Prices.Effective().String())
	require.Len(t, stored.Images, 2)
	assert.Equal(t, s.phone.Images[0].URL, stored.Images[0].URL, "existing image stays first")

	body, ct = multipartBody(t, map[string]string{"discount": "5000"})
	w, _ = do(r, http.MethodPatch, "/product/"+itoa(s.phone.ID), body, ct)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	body, ct = multipartBody(t, map[string]string{"productName": "Stolen"})
	w, _ = do(r, http.MethodPatch, "/product/"+itoa(s.cover.ID), body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code, "not the owner")
}

func TestDeleteProduct(t *testing.T) {
	db := testutil.NewDB(t)
	s := seed(t, db)
	r := newRouter(t, db, "v1")

	w, _ := do(r, http.MethodDelete, "/product/"+itoa(s.cover.ID), nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "not the owner")

	w, _ = do(r, http.MethodDelete, "/product/"+itoa(s.phone.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Product{}).Where("id = ?", s.phone.ID).Count(&count)
	assert.Zero(t, count)
	db.Unscoped().Model(&models.Product{}).Where("id = ?", s.phone.ID).Count(&count)
	assert.Equal(t, int64(1), count, "row is kept for order history")

	w, _ = do(r, http.MethodGet, "/product/"+itoa(s.phone.ID), nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = do(r, http.MethodDelete, "/product/"+itoa(s.phone.ID), nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "already deleted")
}

func TestDeleteOrderedProduct(t *testing.T) {
	db := testutil.NewDB(t)
	s := seed(t, db)
	testutil.CreateUser(t, db, "b1", "Buyer", models.RoleBuyer)
	order := testutil.CreateOrder(t, db, "b1", "UT-1", testutil.ItemSpec{Product: s.phone, Quantity: 2})
	r := newRouter(t, db, "v1")

	w, _ := do(r, http.MethodDelete, "/product/"+itoa(s.phone.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Order
	require.NoError(t, db.Preload("Items").First(&stored, order.ID).Error)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, s.phone.ID, stored.Items[0].ProductID)

	_, env := do(r, http.MethodGet, "/products", nil, "")
	var data struct {
		Products []models.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	for _, p := range data.Products {
		assert.NotEqual(t, s.phone.ID, p.ID)
	}
}

func TestDeleteProductImage(t *testing.T) {
	db := testutil.NewDB(t)
	s := seed(t, db)
	r := newRouter(t, db, "v1")
	imgID := s.phone.Images[0].ID

	body := bytes.NewBufferString(`{"prodId":` + itoa(s.phone.ID) + `,"imgId":` + itoa(imgID) + `}`)
	w, env := do(r, http.MethodDelete, "/product/image", body, "application/json")
	require.Equal(t, http.StatusOK, w.Code)
	var data struct {
		Product models.Product `json:"product"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Empty(t, data.Product.Images)

	body = bytes.NewBufferString(`{"prodId":` + itoa(s.phone.ID) + `,"imgId":` + itoa(imgID) + `}`)
	w, _ = do(r, http.MethodDelete, "/product/image", body, "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code, "already removed")

	body = bytes.NewBufferString(`{"prodId":` + itoa(s.cover.ID) + `,"imgId":` + itoa(s.cover.Images[0].ID) + `}`)
	w, _ = do(r, http.MethodDelete, "/product/image", body, "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code, "not the owner")
}

func TestVendorProducts(t *testing.T) {
	db := testutil.NewDB(t)
	seed(t, db)
	r := newRouter(t, db, "v1")

	_, env := do(r, http.MethodGet, "/vendor/products", nil, "")
	var data struct {
		Number   int              `json:"number"`
		Products []models.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 2, data.Number)
	for _, p := range data.Products {
		assert.Equal(t, "v1", p.UserID)
	}
}

func TestFilterProducts(t *testing.T) {
	db := testutil.NewDB(t)
	s := seed(t, db)
	r := newRouter(t, db, "v1")

	filter := func(query string) (int, []map[string]any) {
		w, env := do(r, http.MethodGet, "/filter?"+query, nil, "")
		var data struct {
			Product []map[string]any `json:"product"`
		}
		_ = json.Unmarshal(env.Data, &data)
		return w.Code, data.Product
	}

	code, got := filter("productType=product&actualPrice[gte]=100")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, got, 1)
	assert.EqualValues(t, s.phone.ID, got[0]["id"])

	_, got = filter("productType=product&sort=price")
	require.Len(t, got, 2)
	assert.EqualValues(t, s.cover.ID, got[0]["id"])

	_, got = filter("sort=-price&fields=productName")
	require.Len(t, got, 3)
	assert.Equal(t, "Galaxy Phone", got[0]["productName"])
	assert.NotContains(t, got[0], "prices")
	assert.Contains(t, got[0], "id")

	_, got = filter("sort=price&limit=1&page=2")
	require.Len(t, got, 1)
	assert.EqualValues(t, s.repair.ID, got[0]["id"])

	code, _ = filter("password=x")
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	code, _ = filter("actualPrice[ne]=1")
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	code, _ = filter("actualPrice[gt]=cheap")
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	code, _ = filter("page=0")
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
