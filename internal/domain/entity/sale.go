package entity

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod enumerates payment types exactly as the sales sheet names them.
type PaymentMethod string

const (
	PaymentCashless PaymentMethod = "Безналичный"
	PaymentBank     PaymentMethod = "Банк"
	PaymentCash     PaymentMethod = "Наличный"
	PaymentCard     PaymentMethod = "Картой"
)

// PaymentMethods lists every accepted payment type.
var PaymentMethods = []PaymentMethod{PaymentCashless, PaymentBank, PaymentCash, PaymentCard}

// Valid reports whether p is one of the accepted payment types.
func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCashless, PaymentBank, PaymentCash, PaymentCard:
		return true
	}
	return false
}

// Sale is one sold-carpet record imported from the sales sheet. The
// design/size/collection/style columns are denormalized copies of the
// sheet values at sale time, not lookups into the catalog.
type Sale struct {
	SaleID        uuid.UUID     `gorm:"column:sale_id;type:uuid;primaryKey" json:"sale_id"`
	CarpetID      int64         `gorm:"column:carpet_id;not null" json:"carpet_id"`
	Design        string        `gorm:"column:design;size:64" json:"design"`
	Size          string        `gorm:"column:size;size:32" json:"size"`
	Collection    string        `gorm:"column:collection;size:64" json:"collection"`
	Style         string        `gorm:"column:style;size:32" json:"style"`
	SaleDate      time.Time     `gorm:"column:sale_date;type:date;not null" json:"sale_date"`
	Quantity      int           `gorm:"column:quantity;not null" json:"quantity"`
	PaymentMethod PaymentMethod `gorm:"column:payment_method;size:32;not null" json:"payment_method"`
	BasicPrice    float64       `gorm:"column:basic_price;not null" json:"basic_price"`
	SalePrice     float64       `gorm:"column:sale_price;not null" json:"sale_price"`
	Discount      float64       `gorm:"column:discount;not null;default:0" json:"discount"`
	ExtraInfo     *string       `gorm:"column:extra_info" json:"extra_info,omitempty"`
	SoldTo        string        `gorm:"column:sold_to;size:64;not null" json:"sold_to"`
	CreatedAt     time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName maps the entity onto the sales table.
func (Sale) TableName() string { return "sales" }

// SaleKey is the business identity of a sales record: one carpet sold to
// one buyer on one date. SaleDate is kept as a plain YYYY-MM-DD string so
// the struct stays a comparable map key.
type SaleKey struct {
	CarpetID int64
	SaleDate string
	SoldTo   string
}

// Key derives the business key of the sale.
func (s *Sale) Key() SaleKey {
	return SaleKey{
		CarpetID: s.CarpetID,
		SaleDate: s.SaleDate.Format("2006-01-02"),
		SoldTo:   s.SoldTo,
	}
}
