package entity

import (
	"time"
)

// Carpet is a single catalog item. CarpetID is the business identity
// assigned in the source spreadsheet, not an auto-increment key.
type Carpet struct {
	CarpetID   int64     `gorm:"column:carpet_id;primaryKey" json:"carpet_id"`
	Collection string    `gorm:"column:collection;size:64" json:"collection"`
	Geometry   string    `gorm:"column:geometry;size:32" json:"geometry"`
	Size       string    `gorm:"column:size;size:32" json:"size"`
	Design     string    `gorm:"column:design;size:64" json:"design"`
	Color1     string    `gorm:"column:color_1;size:32;not null" json:"color_1"`
	Color2     *string   `gorm:"column:color_2;size:32" json:"color_2,omitempty"`
	Color3     *string   `gorm:"column:color_3;size:32" json:"color_3,omitempty"`
	Style      string    `gorm:"column:style;size:32" json:"style"`
	Quantity   int       `gorm:"column:quantity;not null;default:0" json:"quantity"`
	Price      float64   `gorm:"column:price;not null" json:"price"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName maps the entity onto the carpets table.
func (Carpet) TableName() string { return "carpets" }

// Colors returns the filled color slots in slot order.
func (c *Carpet) Colors() []string {
	colors := make([]string, 0, 3)
	if c.Color1 != "" {
		colors = append(colors, c.Color1)
	}
	if c.Color2 != nil && *c.Color2 != "" {
		colors = append(colors, *c.Color2)
	}
	if c.Color3 != nil && *c.Color3 != "" {
		colors = append(colors, *c.Color3)
	}
	return colors
}

// Available reports whether the carpet is in stock.
func (c *Carpet) Available() bool { return c.Quantity > 0 }
