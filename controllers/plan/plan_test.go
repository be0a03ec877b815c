package planControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbantrove-ng/Urbantrove-Api/middleware"
	"github.com/urbantrove-ng/Urbantrove-Api/models"
	"github.com/urbantrove-ng/Urbantrove-Api/testutil"
)

func TestCheckSubscription(t *testing.T) {
	db := testutil.NewDB(t)

	_, err := CheckSubscription(db, "v1")
	assert.ErrorIs(t, err, models.ErrNotFound)

	pending := models.Plan{BillingPlan: models.BillingPlanMonthly, UserID: "v1", Amount: decimal.NewFromInt(1000), Status: models.PlanStatusPending}
	require.NoError(t, db.Create(&pending).Error)

	sub, err := CheckSubscription(db, "v1")
	require.NoError(t, err)
	assert.False(t, sub.Active)
	assert.NotNil(t, sub.BillingPlans)
	assert.Empty(t, sub.BillingPlans)

	active := models.Plan{BillingPlan: models.BillingPlanYearly, UserID: "v1", Amount: decimal.NewFromInt(9000)}
	active.Activate(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, db.Create(&active).Error)

	sub, err = CheckSubscription(db, "v1")
	require.NoError(t, err)
	assert.True(t, sub.Active)
	require.Len(t, sub.BillingPlans, 1)
	assert.Equal(t, models.BillingPlanYearly, sub.BillingPlans[0].BillingPlan)
	assert.Equal(t, "9000", sub.BillingPlans[0].Amount.String())
	require.NotNil(t, sub.BillingPlans[0].ExpiresAt)
	assert.Equal(t, 2027, sub.BillingPlans[0].ExpiresAt.Year())
}

func TestPlanHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, "v1")
		c.Next()
	})
	r.POST("/plan", CreatePlan(db))
	r.GET("/subscription", GetSubscription(db))

	get := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/subscription", nil))
		return w
	}
	post := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/plan", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	w := get()
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No subscriptions found for this user")

	assert.Equal(t, http.StatusUnprocessableEntity, post(`{"billingPlan":"weekly","amount":10}`).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, post(`{"billingPlan":"monthly","amount":0}`).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, post(`{"amount":10}`).Code)

	w = post(`{"billingPlan":"monthly","amount":2500}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Data struct {
			Plan models.Plan `json:"plan"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, models.PlanStatusPending, created.Data.Plan.Status)
	assert.Equal(t, "v1", created.Data.Plan.UserID)

	w = get()
	require.Equal(t, http.StatusOK, w.Code)
	var sub struct {
		Data Subscription `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sub))
	assert.False(t, sub.Data.Active)
	assert.Empty(t, sub.Data.BillingPlans)
}
