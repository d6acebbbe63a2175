// internal/tests/api_test.go
package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/vapeshop/vapeshop-backend/internal/config"
	"github.com/vapeshop/vapeshop-backend/internal/kvstore"
	"github.com/vapeshop/vapeshop-backend/internal/router"
)

const adminID = int64(99)

type APITestSuite struct {
	suite.Suite
	router *gin.Engine
	reqSeq int
}

func (suite *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Environment: "test",
		Server:      config.ServerConfig{StaticDir: "./static"},
		Admin:       config.AdminConfig{IDs: []int64{adminID}},
		Referral:    config.ReferralConfig{Bonus: 100},
	}

	suite.router = router.Initialize(kvstore.NewMemory(), cfg)
}

// do issues a request as the given user (0 = anonymous). Each request gets
// its own client address so the per-IP rate limiter stays out of the way.
func (suite *APITestSuite) do(method, path string, body interface{}, userID int64) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, path, &buf)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("X-User-ID", strconv.FormatInt(userID, 10))
	}

	suite.reqSeq++
	req.RemoteAddr = fmt.Sprintf("10.1.%d.%d:4000", suite.reqSeq/250, suite.reqSeq%250+1)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *APITestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func (suite *APITestSuite) TestHealth() {
	w := suite.do("GET", "/health", nil, 0)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *APITestSuite) TestProductWritesAreAdminGated() {
	product := map[string]interface{}{
		"name":     "Mango Liquid",
		"category": "liquids",
		"price":    450,
		"stock":    10,
	}

	w := suite.do("POST", "/api/products", product, 0)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	w = suite.do("POST", "/api/products", product, 42)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.do("POST", "/api/products", product, adminID)
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	response := suite.decode(w)
	assert.True(suite.T(), response["success"].(bool))

	// And the catalog is publicly readable
	w = suite.do("GET", "/api/products", nil, 0)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	response = suite.decode(w)
	assert.Len(suite.T(), response["data"], 1)
}

func (suite *APITestSuite) TestUserIsLazilyCreated() {
	w := suite.do("GET", "/api/users/42", nil, 42)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	response := suite.decode(w)
	data := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), float64(42), data["id"])
	assert.Equal(suite.T(), float64(0), data["bonus"])
	assert.Equal(suite.T(), "VAPE-42", data["referral_code"])
	assert.Equal(suite.T(), false, data["is_admin"])
}

func (suite *APITestSuite) TestProfileUpdatesAreOwnerOrAdminOnly() {
	profile := map[string]interface{}{"username": "cloudchaser"}

	w := suite.do("PUT", "/api/users/42", profile, 7)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.do("PUT", "/api/users/42", profile, 42)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.do("PUT", "/api/users/42", map[string]interface{}{"username": "mod"}, adminID)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	response := suite.decode(w)
	data := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), "mod", data["username"])
}

func (suite *APITestSuite) TestBroadcastReachesEveryUser() {
	// Touch three profiles so they exist
	for _, id := range []int64{11, 12, 13} {
		w := suite.do("GET", fmt.Sprintf("/api/users/%d", id), nil, id)
		assert.Equal(suite.T(), http.StatusOK, w.Code)
	}

	body := map[string]interface{}{"message": "New mango liquids in stock"}

	w := suite.do("POST", "/api/broadcast", body, 42)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.do("POST", "/api/broadcast", body, adminID)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	response := suite.decode(w)
	data := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), float64(3), data["recipients"])
}

func (suite *APITestSuite) TestCheckoutAndStats() {
	order := map[string]interface{}{
		"userId": 42,
		"items": []map[string]interface{}{
			{"product_id": 1, "quantity": 2, "price": 450},
		},
		"total": 900,
	}

	w := suite.do("POST", "/api/orders", order, 42)
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	response := suite.decode(w)
	data := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), "pending", data["status"])

	// Another customer cannot touch the order
	orderID := int64(data["id"].(float64))
	w = suite.do("PATCH", fmt.Sprintf("/api/orders/%d/status", orderID),
		map[string]interface{}{"status": "completed"}, 7)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	// Complete the order as its owner
	w = suite.do("PATCH", fmt.Sprintf("/api/orders/%d/status", orderID),
		map[string]interface{}{"status": "completed"}, 42)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	// Stats are admin-only and reflect the completed order
	w = suite.do("GET", "/api/stats", nil, 42)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.do("GET", "/api/stats", nil, adminID)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	response = suite.decode(w)
	stats := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), float64(1), stats["total_orders"])
	assert.Equal(suite.T(), float64(900), stats["total_revenue"])
}

func (suite *APITestSuite) TestPromoLifecycle() {
	promo := map[string]interface{}{
		"code":     "LAUNCH15",
		"discount": 15,
		"uses":     1,
	}

	w := suite.do("POST", "/api/promos", promo, adminID)
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	w = suite.do("POST", "/api/promos", promo, adminID)
	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	apply := map[string]interface{}{"code": "LAUNCH15", "userId": 42}

	w = suite.do("POST", "/api/promos/apply", apply, 42)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	response := suite.decode(w)
	data := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), float64(15), data["discount"])

	w = suite.do("POST", "/api/promos/apply", apply, 42)
	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	response = suite.decode(w)
	errObj := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "LIMIT_REACHED", errObj["code"])
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
