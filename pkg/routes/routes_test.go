package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"bookstore/pkg/database"
	"bookstore/pkg/token"
)

func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatal("failed to connect test database")
	}
	assert.NoError(t, database.Migrate(db))
	assert.NoError(t, database.SeedUserTypes(db))

	r := gin.New()
	tokens := token.NewManager("test-secret", time.Hour)
	SetupRoutes(r, db, tokens, zap.NewNop())
	return r
}

func request(r *gin.Engine, method, path, body, bearer string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	r.ServeHTTP(w, req)
	return w
}

func signin(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := request(r, "POST", "/auth/signup", `{"login":"reader","password":"s3cret"}`, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = request(r, "POST", "/auth/signin", `{"login":"reader","password":"s3cret"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["token"].(string)
}

func TestCategoryLifecycle(t *testing.T) {
	r := setupServer(t)
	bearer := signin(t, r)

	w := request(r, "POST", "/categories", `{"name":"Fiction"}`, bearer)
	assert.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, float64(1), created["id"])
	assert.Equal(t, "Fiction", created["name"])

	w = request(r, "GET", "/categories/1", "", bearer)
	assert.Equal(t, http.StatusOK, w.Code)

	var fetched map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created, fetched)

	w = request(r, "DELETE", "/categories/1", "", bearer)
	assert.Equal(t, http.StatusOK, w.Code)

	w = request(r, "GET", "/categories/1", "", bearer)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var missing map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &missing))
	assert.NotEmpty(t, missing["message"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := setupServer(t)

	w := request(r, "GET", "/book", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = request(r, "GET", "/book", "", "garbage")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthRoutesArePublic(t *testing.T) {
	r := setupServer(t)

	w := request(r, "POST", "/auth/signup", `{"login":"reader","password":"s3cret"}`, "")
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestHealthCheck(t *testing.T) {
	r := setupServer(t)

	w := request(r, "GET", "/manage/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "UP", resp["status"])
}

func TestBookFlowWithRelations(t *testing.T) {
	r := setupServer(t)
	bearer := signin(t, r)

	w := request(r, "POST", "/author", `{"first_name":"Frank","last_name":"Herbert"}`, bearer)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = request(r, "POST", "/book",
		`{"title":"Dune","price":9.99,"published_at":"1965-08-01","stock":3,"author_id":1}`, bearer)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = request(r, "GET", "/book/1", "", bearer)
	assert.Equal(t, http.StatusOK, w.Code)

	var fetched map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, "Dune", fetched["title"])
	author := fetched["author"].(map[string]interface{})
	assert.Equal(t, "Frank", author["first_name"])

	w = request(r, "GET", "/book/filters?min_price=5&max_price=10", "", bearer)
	assert.Equal(t, http.StatusOK, w.Code)

	var filtered []map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &filtered))
	assert.Len(t, filtered, 1)
}

func TestValidationErrorsBeforeStore(t *testing.T) {
	r := setupServer(t)
	bearer := signin(t, r)

	w := request(r, "POST", "/book", `{"description":"no title or price"}`, bearer)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string][]map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp["errors"], 2)
}
