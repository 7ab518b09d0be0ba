package validation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

var bookSchema = Schema{
	{Name: "title", Type: String, Required: true},
	{Name: "price", Type: Float, Required: true},
	{Name: "stock", Type: Int},
	{Name: "active", Type: Bool},
	{Name: "published_at", Type: Date},
}

func runMiddleware(t *testing.T, schema Schema, body string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	reached := false
	r := gin.New()
	r.POST("/", Middleware(schema), func(c *gin.Context) {
		reached = true
		var echo map[string]interface{}
		assert.NoError(t, c.ShouldBindJSON(&echo))
		c.JSON(http.StatusOK, echo)
	})

	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w, reached
}

func fieldErrors(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var resp map[string][]map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["errors"]
}

func TestMissingRequiredFields(t *testing.T) {
	w, reached := runMiddleware(t, bookSchema, `{"stock": 3}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, reached)

	errs := fieldErrors(t, w)
	assert.Len(t, errs, 2)
	assert.Equal(t, "title", errs[0]["field"])
	assert.Equal(t, "price", errs[1]["field"])
}

func TestTypeMismatches(t *testing.T) {
	w, reached := runMiddleware(t, bookSchema,
		`{"title": 7, "price": "cheap", "stock": 1.5, "active": "yes", "published_at": "not-a-date"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, reached)

	errs := fieldErrors(t, w)
	assert.Len(t, errs, 5)
}

func TestValidBodyReachesHandlerWithBodyIntact(t *testing.T) {
	w, reached := runMiddleware(t, bookSchema,
		`{"title": "Dune", "price": 9.99, "stock": 3, "active": true, "published_at": "1965-08-01"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, reached)

	var echo map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &echo))
	assert.Equal(t, "Dune", echo["title"])
}

func TestOptionalFieldsMayBeOmitted(t *testing.T) {
	w, reached := runMiddleware(t, bookSchema, `{"title": "Dune", "price": 9.99}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, reached)
}

func TestPartialRelaxesRequired(t *testing.T) {
	w, reached := runMiddleware(t, bookSchema.Partial(), `{"stock": 5}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, reached)
}

func TestPartialStillChecksTypes(t *testing.T) {
	w, reached := runMiddleware(t, bookSchema.Partial(), `{"price": "cheap"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, reached)
}

func TestNonObjectBody(t *testing.T) {
	w, reached := runMiddleware(t, bookSchema, `[1, 2, 3]`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, reached)
}

func TestDateAcceptsRFC3339(t *testing.T) {
	w, _ := runMiddleware(t, bookSchema,
		`{"title": "Dune", "price": 9.99, "published_at": "1965-08-01T00:00:00Z"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}
