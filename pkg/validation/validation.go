// Package validation checks JSON request bodies against per-entity schemas
// before any handler or store access runs.
package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type FieldType int

const (
	String FieldType = iota
	Bool
	Int
	Float
	Date
)

func (t FieldType) String() string {
	switch t {
	case String:
		return "string"
	case Bool:
		return "boolean"
	case Int:
		return "integer"
	case Float:
		return "float"
	case Date:
		return "date"
	}
	return "unknown"
}

type Field struct {
	Name     string
	Type     FieldType
	Required bool
}

type Schema []Field

// Partial relaxes the required flags for PUT bodies, which replace only the
// fields they carry.
func (s Schema) Partial() Schema {
	out := make(Schema, len(s))
	for i, f := range s {
		f.Required = false
		out[i] = f
	}
	return out
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (s Schema) Check(body map[string]interface{}) []FieldError {
	var errs []FieldError
	for _, f := range s {
		value, ok := body[f.Name]
		if !ok || value == nil {
			if f.Required {
				errs = append(errs, FieldError{Field: f.Name, Message: f.Name + " is required"})
			}
			continue
		}
		if !matchesType(value, f.Type) {
			errs = append(errs, FieldError{
				Field:   f.Name,
				Message: fmt.Sprintf("%s must be a %s", f.Name, f.Type),
			})
		}
	}
	return errs
}

func matchesType(value interface{}, t FieldType) bool {
	switch t {
	case String:
		_, ok := value.(string)
		return ok
	case Bool:
		_, ok := value.(bool)
		return ok
	case Int:
		// encoding/json decodes every number as float64
		n, ok := value.(float64)
		return ok && n == math.Trunc(n)
	case Float:
		_, ok := value.(float64)
		return ok
	case Date:
		s, ok := value.(string)
		if !ok {
			return false
		}
		if _, err := time.Parse("2006-01-02", s); err == nil {
			return true
		}
		_, err := time.Parse(time.RFC3339, s)
		return err == nil
	}
	return false
}

// Middleware validates the body against the schema and restores it for the
// handler. Violations short-circuit with 400 and the full error list.
func Middleware(schema Schema) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"errors": []FieldError{{Field: "body", Message: "failed to read request body"}},
			})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(raw))

		var body map[string]interface{}
		if err := json.Unmarshal(raw, &body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"errors": []FieldError{{Field: "body", Message: "request body must be a JSON object"}},
			})
			return
		}

		if errs := schema.Check(body); len(errs) > 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": errs})
			return
		}

		c.Next()
	}
}
