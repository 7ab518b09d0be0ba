package books

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bookstore/pkg/models"
)

type Handler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewHandler(db *gorm.DB, log *zap.Logger) *Handler {
	return &Handler{db: db, log: log}
}

// Filter lists books narrowed by any combination of author_id, category_id,
// publisher_id and an inclusive min_price/max_price range. Omitted params do
// not constrain that dimension.
func (h *Handler) Filter(c *gin.Context) {
	q := h.db.Preload("Author").Preload("Category").Preload("Publisher")

	if v := c.Query("author_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []gin.H{{"field": "author_id", "message": "author_id must be an integer"}}})
			return
		}
		q = q.Where("author_id = ?", id)
	}
	if v := c.Query("category_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []gin.H{{"field": "category_id", "message": "category_id must be an integer"}}})
			return
		}
		q = q.Where("category_id = ?", id)
	}
	if v := c.Query("publisher_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []gin.H{{"field": "publisher_id", "message": "publisher_id must be an integer"}}})
			return
		}
		q = q.Where("publisher_id = ?", id)
	}
	if v := c.Query("min_price"); v != "" {
		min, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []gin.H{{"field": "min_price", "message": "min_price must be a number"}}})
			return
		}
		q = q.Where("price >= ?", min)
	}
	if v := c.Query("max_price"); v != "" {
		max, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []gin.H{{"field": "max_price", "message": "max_price must be a number"}}})
			return
		}
		q = q.Where("price <= ?", max)
	}

	var found []models.Book
	if err := q.Find(&found).Error; err != nil {
		h.log.Error("book filter query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, found)
}
