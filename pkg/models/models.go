package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Date accepts both "2006-01-02" and RFC3339 payloads so clients can send
// plain ISO8601 dates for birthdays and publication dates.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d Date) Value() (driver.Value, error) {
	if d.Time.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		d.Time = time.Time{}
	case time.Time:
		d.Time = v
	case string:
		formats := []string{
			"2006-01-02",
			time.RFC3339,
			"2006-01-02 15:04:05.999999999-07:00",
			"2006-01-02 15:04:05",
		}
		for _, f := range formats {
			if t, err := time.Parse(f, v); err == nil {
				d.Time = t
				return nil
			}
		}
		return fmt.Errorf("cannot scan %q into Date", v)
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
	return nil
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Login     string    `gorm:"size:80;not null;uniqueIndex" json:"login"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserType struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"size:80;not null" json:"title"`
	IsUser  bool   `gorm:"not null;default:false" json:"is_user"`
	IsAdmin bool   `gorm:"not null;default:false" json:"is_admin"`
}

type CrmCard struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FirstName  string    `gorm:"size:80" json:"first_name"`
	LastName   string    `gorm:"size:80" json:"last_name"`
	Active     bool      `gorm:"not null;default:true" json:"active"`
	Photo      string    `json:"photo"`
	Birthday   *Date     `gorm:"type:date" json:"birthday"`
	UserID     uint      `gorm:"not null" json:"user_id"`
	UserTypeID uint      `gorm:"not null" json:"user_type_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	User     User     `gorm:"foreignKey:UserID" json:"-"`
	UserType UserType `gorm:"foreignKey:UserTypeID" json:"-"`

	Emails       []CrmEmail       `gorm:"foreignKey:CrmCardID" json:"emails,omitempty"`
	PaymentCards []CrmPaymentCard `gorm:"foreignKey:CrmCardID" json:"payment_cards,omitempty"`
	Addresses    []CrmAddress     `gorm:"foreignKey:CrmCardID" json:"addresses,omitempty"`
}

type CrmEmail struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Email     string `gorm:"size:120;not null" json:"email"`
	CrmCardID uint   `gorm:"not null" json:"crm_card_id"`

	CrmCard CrmCard `gorm:"foreignKey:CrmCardID" json:"-"`
}

type CrmPaymentCard struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Number    string `gorm:"size:20;not null" json:"number"`
	Holder    string `gorm:"size:80" json:"holder"`
	ExpiresAt *Date  `gorm:"type:date" json:"expires_at"`
	CrmCardID uint   `gorm:"not null" json:"crm_card_id"`

	CrmCard CrmCard `gorm:"foreignKey:CrmCardID" json:"-"`
}

type CrmAddress struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Country   string `gorm:"size:80" json:"country"`
	City      string `gorm:"size:80" json:"city"`
	Street    string `gorm:"size:120" json:"street"`
	House     string `gorm:"size:20" json:"house"`
	Apartment string `gorm:"size:20" json:"apartment"`
	CrmCardID uint   `gorm:"not null" json:"crm_card_id"`

	CrmCard CrmCard `gorm:"foreignKey:CrmCardID" json:"-"`
}

type Author struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"size:80;not null" json:"first_name"`
	LastName  string    `gorm:"size:80" json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:80;not null" json:"name"`
}

type Publisher struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:120;not null" json:"name"`
}

type Book struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	PublishedAt *Date     `gorm:"type:date" json:"published_at"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	AuthorID    *uint     `json:"author_id"`
	CategoryID  *uint     `json:"category_id"`
	PublisherID *uint     `json:"publisher_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Author    *Author    `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL" json:"author,omitempty"`
	Category  *Category  `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Publisher *Publisher `gorm:"foreignKey:PublisherID;constraint:OnDelete:SET NULL" json:"publisher,omitempty"`
}

type OrderStatus struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Title string `gorm:"size:80;not null" json:"title"`
}

type Order struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	TotalAmount   float64   `gorm:"not null" json:"total_amount"`
	OrderDate     *Date     `gorm:"type:date" json:"order_date"`
	UserID        uint      `gorm:"not null" json:"user_id"`
	OrderStatusID uint      `gorm:"not null" json:"order_status_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	User        User        `gorm:"foreignKey:UserID" json:"-"`
	OrderStatus OrderStatus `gorm:"foreignKey:OrderStatusID" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

type OrderItem struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Quantity int     `gorm:"not null" json:"quantity"`
	Price    float64 `gorm:"not null" json:"price"`
	OrderID  uint    `gorm:"not null" json:"order_id"`
	BookID   uint    `gorm:"not null" json:"book_id"`

	Order Order `gorm:"foreignKey:OrderID" json:"-"`
	Book  Book  `gorm:"foreignKey:BookID" json:"-"`
}
