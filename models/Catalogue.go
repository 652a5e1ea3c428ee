package models

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Unit types.
const (
	UnitTypeWeight = iota + 1
	UnitTypeVolume
	UnitTypeOther
)

// UnitTypeLabel returns the label for a unit type.
func UnitTypeLabel(kind int) string {
	switch kind {
	case UnitTypeWeight:
		return "Weight"
	case UnitTypeVolume:
		return "Volume"
	case UnitTypeOther:
		return "Other"
	}
	return ""
}

// Category groups recipes; categories may nest under a parent.
type Category struct {
	gorm.Model
	Name        string `gorm:"size:60" json:"name"`
	ParentID    *uint  `json:"parent_id,omitempty"`
	Order       int    `gorm:"column:display_order" json:"order"`
	IsPublished bool   `gorm:"not null" json:"is_published"`

	Parent *Category `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
}

type FoodType struct {
	gorm.Model
	TypeName    string `gorm:"size:60;not null" json:"type_name"`
	IsPublished bool   `gorm:"not null" json:"is_published"`
}

type Food struct {
	gorm.Model
	Name        string `gorm:"size:60;not null" json:"name"`
	FoodTypeID  uint   `gorm:"index;not null" json:"food_type_id"`
	IsPublished bool   `gorm:"not null" json:"is_published"`

	FoodType *FoodType `gorm:"foreignKey:FoodTypeID" json:"food_type,omitempty"`
}

type Unit struct {
	gorm.Model
	UnitName string `gorm:"size:60;not null" json:"unit_name"`
	Code     string `gorm:"size:60" json:"code"`
	Type     int    `gorm:"not null" json:"type"`
}

// Symbol returns the abbreviation when present, otherwise the full name.
func (u Unit) Symbol() string {
	if strings.TrimSpace(u.Code) != "" {
		return u.Code
	}
	return u.UnitName
}

type Country struct {
	gorm.Model
	Name      string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Continent string `gorm:"size:60" json:"continent"`
}

type Region struct {
	gorm.Model
	Name      string `gorm:"size:100;not null" json:"name"`
	CountryID uint   `gorm:"index;not null" json:"country_id"`

	Country *Country `gorm:"foreignKey:CountryID" json:"country,omitempty"`
}

// Describe renders an ingredient the way it reads in a recipe, e.g. "2 cup flour".
func (i Ingredient) Describe() string {
	quantity := strconv.FormatFloat(i.Quantity, 'f', -1, 64)
	parts := []string{quantity}
	if i.Unit != nil {
		parts = append(parts, i.Unit.Symbol())
	}
	if i.Food != nil {
		parts = append(parts, strings.ToLower(i.Food.Name))
	}
	return strings.Join(parts, " ")
}
