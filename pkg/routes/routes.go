package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "bookstore/docs"
	"bookstore/pkg/auth"
	"bookstore/pkg/books"
	"bookstore/pkg/crud"
	"bookstore/pkg/models"
	"bookstore/pkg/token"
	"bookstore/pkg/validation"
)

var (
	userSchema = validation.Schema{
		{Name: "login", Type: validation.String, Required: true},
	}
	userTypeSchema = validation.Schema{
		{Name: "title", Type: validation.String, Required: true},
		{Name: "is_user", Type: validation.Bool},
		{Name: "is_admin", Type: validation.Bool},
	}
	crmCardSchema = validation.Schema{
		{Name: "first_name", Type: validation.String},
		{Name: "last_name", Type: validation.String},
		{Name: "active", Type: validation.Bool},
		{Name: "photo", Type: validation.String},
		{Name: "birthday", Type: validation.Date},
		{Name: "user_id", Type: validation.Int, Required: true},
		{Name: "user_type_id", Type: validation.Int, Required: true},
	}
	crmEmailSchema = validation.Schema{
		{Name: "email", Type: validation.String, Required: true},
		{Name: "crm_card_id", Type: validation.Int, Required: true},
	}
	crmPaymentCardSchema = validation.Schema{
		{Name: "number", Type: validation.String, Required: true},
		{Name: "holder", Type: validation.String},
		{Name: "expires_at", Type: validation.Date},
		{Name: "crm_card_id", Type: validation.Int, Required: true},
	}
	crmAddressSchema = validation.Schema{
		{Name: "country", Type: validation.String},
		{Name: "city", Type: validation.String},
		{Name: "street", Type: validation.String},
		{Name: "house", Type: validation.String},
		{Name: "apartment", Type: validation.String},
		{Name: "crm_card_id", Type: validation.Int, Required: true},
	}
	authorSchema = validation.Schema{
		{Name: "first_name", Type: validation.String, Required: true},
		{Name: "last_name", Type: validation.String},
	}
	categorySchema = validation.Schema{
		{Name: "name", Type: validation.String, Required: true},
	}
	publisherSchema = validation.Schema{
		{Name: "name", Type: validation.String, Required: true},
	}
	bookSchema = validation.Schema{
		{Name: "title", Type: validation.String, Required: true},
		{Name: "description", Type: validation.String},
		{Name: "price", Type: validation.Float, Required: true},
		{Name: "published_at", Type: validation.Date},
		{Name: "stock", Type: validation.Int},
		{Name: "author_id", Type: validation.Int},
		{Name: "category_id", Type: validation.Int},
		{Name: "publisher_id", Type: validation.Int},
	}
	orderStatusSchema = validation.Schema{
		{Name: "title", Type: validation.String, Required: true},
	}
	orderSchema = validation.Schema{
		{Name: "total_amount", Type: validation.Float, Required: true},
		{Name: "order_date", Type: validation.Date},
		{Name: "user_id", Type: validation.Int, Required: true},
		{Name: "order_status_id", Type: validation.Int, Required: true},
	}
	orderItemSchema = validation.Schema{
		{Name: "quantity", Type: validation.Int, Required: true},
		{Name: "price", Type: validation.Float, Required: true},
		{Name: "order_id", Type: validation.Int, Required: true},
		{Name: "book_id", Type: validation.Int, Required: true},
	}
)

// SetupRoutes registers the auth endpoints, the swagger UI, the health check
// and the protected resource families.
func SetupRoutes(r *gin.Engine, db *gorm.DB, tokens *token.Manager, log *zap.Logger) {
	authHandler := auth.NewHandler(db, tokens, log)
	r.POST("/auth/signup", authHandler.Signup)
	r.POST("/auth/signin", authHandler.Signin)

	r.GET("/manage/health", healthCheck(db))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	protected := r.Group("/", auth.RequireAuth(tokens))

	crud.NewResource[models.User](db, log, "user").
		Register(protected, "/user", userSchema)
	crud.NewResource[models.UserType](db, log, "user type").
		Register(protected, "/user-type", userTypeSchema)
	crud.NewResource[models.CrmCard](db, log, "crm card", "Emails", "PaymentCards", "Addresses").
		Register(protected, "/crm-card", crmCardSchema)
	crud.NewResource[models.CrmEmail](db, log, "crm email").
		Register(protected, "/crm-email", crmEmailSchema)
	crud.NewResource[models.CrmPaymentCard](db, log, "crm payment card").
		Register(protected, "/crm-payment-card", crmPaymentCardSchema)
	crud.NewResource[models.CrmAddress](db, log, "crm address").
		Register(protected, "/crm-address", crmAddressSchema)
	crud.NewResource[models.Author](db, log, "author").
		Register(protected, "/author", authorSchema)
	crud.NewResource[models.Category](db, log, "category").
		Register(protected, "/categories", categorySchema)
	crud.NewResource[models.Publisher](db, log, "publisher").
		Register(protected, "/publishers", publisherSchema)
	crud.NewResource[models.Book](db, log, "book", "Author", "Category", "Publisher").
		Register(protected, "/book", bookSchema)
	crud.NewResource[models.OrderStatus](db, log, "order status").
		Register(protected, "/order-status", orderStatusSchema)
	crud.NewResource[models.Order](db, log, "order", "Items").
		Register(protected, "/order", orderSchema)
	crud.NewResource[models.OrderItem](db, log, "order item").
		Register(protected, "/order-item", orderItemSchema)

	bookHandler := books.NewHandler(db, log)
	protected.GET("/book/filters", bookHandler.Filter)
}

func healthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN", "error": err.Error()})
			return
		}
		if err := sqlDB.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	}
}
