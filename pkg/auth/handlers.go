package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bookstore/pkg/models"
	"bookstore/pkg/token"
	"bookstore/pkg/validation"
)

type Handler struct {
	db     *gorm.DB
	tokens *token.Manager
	log    *zap.Logger
}

func NewHandler(db *gorm.DB, tokens *token.Manager, log *zap.Logger) *Handler {
	return &Handler{db: db, tokens: tokens, log: log}
}

type credentials struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup creates the user plus a default CRM card linked to the UserType
// flagged as the regular user role.
func (h *Handler) Signup(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErrors(c, err)
		return
	}

	hash, err := token.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	user := models.User{Login: req.Login, Password: hash}
	if err := h.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"message": "login already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	var userType models.UserType
	if err := h.db.Where("is_user = ?", true).First(&userType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.log.Error("default user type is missing, run the seed step")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "default user type is not configured"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	card := models.CrmCard{UserID: user.ID, UserTypeID: userType.ID, Active: true}
	if err := h.db.Create(&card).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	h.log.Info("user signed up", zap.Uint("user_id", user.ID), zap.String("login", user.Login))
	c.JSON(http.StatusCreated, gin.H{"user": user, "card": card})
}

// Signin verifies credentials and returns the user, the linked CRM card and
// a freshly issued bearer token.
func (h *Handler) Signin(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErrors(c, err)
		return
	}

	var user models.User
	if err := h.db.Where("login = ?", req.Login).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	if !token.CheckPassword(user.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
		return
	}

	var card *models.CrmCard
	var found models.CrmCard
	err := h.db.Where("user_id = ?", user.ID).First(&found).Error
	switch {
	case err == nil:
		card = &found
	case errors.Is(err, gorm.ErrRecordNotFound):
		// user has no card yet, signin still succeeds
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	signed, err := h.tokens.Issue(user.ID, user.Login)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "card": card, "token": signed})
}

func bindErrors(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fieldErrs := make([]validation.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			name := strings.ToLower(fe.Field())
			fieldErrs = append(fieldErrs, validation.FieldError{
				Field:   name,
				Message: name + " is required",
			})
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"errors": []validation.FieldError{{Field: "body", Message: err.Error()}},
	})
}
