// Package crud is the generic resource-handler factory. Every entity route
// family is one instantiation of Resource with its validation schema.
package crud

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bookstore/pkg/validation"
)

type Resource[T any] struct {
	db       *gorm.DB
	log      *zap.Logger
	name     string
	preloads []string
}

func NewResource[T any](db *gorm.DB, log *zap.Logger, name string, preloads ...string) *Resource[T] {
	return &Resource[T]{db: db, log: log, name: name, preloads: preloads}
}

// Register wires the five standard routes under path, with body validation
// on the mutating verbs.
func (r *Resource[T]) Register(g *gin.RouterGroup, path string, schema validation.Schema) {
	g.GET(path, r.List)
	g.GET(path+"/:id", r.Get)
	g.POST(path, validation.Middleware(schema), r.Create)
	g.PUT(path+"/:id", validation.Middleware(schema.Partial()), r.Update)
	g.DELETE(path+"/:id", r.Delete)
}

func (r *Resource[T]) query() *gorm.DB {
	q := r.db
	for _, p := range r.preloads {
		q = q.Preload(p)
	}
	return q
}

func (r *Resource[T]) List(c *gin.Context) {
	var items []T
	if err := r.query().Find(&items).Error; err != nil {
		r.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (r *Resource[T]) Get(c *gin.Context) {
	id, ok := r.id(c)
	if !ok {
		return
	}
	var item T
	if err := r.query().First(&item, "id = ?", id).Error; err != nil {
		r.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (r *Resource[T]) Create(c *gin.Context) {
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": []validation.FieldError{{Field: "body", Message: err.Error()}},
		})
		return
	}
	setID(&item, 0)
	if err := r.db.Create(&item).Error; err != nil {
		r.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (r *Resource[T]) Update(c *gin.Context) {
	id, ok := r.id(c)
	if !ok {
		return
	}
	var item T
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		r.fail(c, err)
		return
	}
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": []validation.FieldError{{Field: "body", Message: err.Error()}},
		})
		return
	}
	// the body must not move the row
	setID(&item, id)
	if err := r.db.Save(&item).Error; err != nil {
		r.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (r *Resource[T]) Delete(c *gin.Context) {
	id, ok := r.id(c)
	if !ok {
		return
	}
	res := r.db.Delete(new(T), "id = ?", id)
	if res.Error != nil {
		r.fail(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": r.name + " not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": r.name + " deleted"})
}

func (r *Resource[T]) id(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": r.name + " not found"})
		return 0, false
	}
	return uint(id), true
}

func (r *Resource[T]) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": r.name + " not found"})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		c.JSON(http.StatusConflict, gin.H{"message": r.name + " already exists"})
	default:
		r.log.Error("store operation failed", zap.String("resource", r.name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	}
}

func setID(item interface{}, id uint) {
	v := reflect.ValueOf(item).Elem()
	if v.Kind() != reflect.Struct {
		return
	}
	f := v.FieldByName("ID")
	if f.IsValid() && f.CanSet() && f.Kind() == reflect.Uint {
		f.SetUint(uint64(id))
	}
}
