package models

import (
	"gorm.io/gorm"
)

// Wine kinds.
const (
	WineKindRed = iota + 1
	WineKindWhite
	WineKindRose
	WineKindSparkling
	WineKindPassito
	WineKindLiqueur
)

// Traditional (Italian) appellation codes.
const (
	TraditionalDOCG = iota + 1
	TraditionalDOC
	TraditionalIGT
	TraditionalOther
)

// European appellation codes.
const (
	EuropeanDOP = iota + 1
	EuropeanIGP
	EuropeanOther
)

var wineKindLabels = map[int]string{
	WineKindRed:       "Red",
	WineKindWhite:     "White",
	WineKindRose:      "Rosé",
	WineKindSparkling: "Sparkling",
	WineKindPassito:   "Passito",
	WineKindLiqueur:   "Liqueur-like",
}

var traditionalCodeLabels = map[int]string{
	TraditionalDOCG:  "DOCG",
	TraditionalDOC:   "DOC",
	TraditionalIGT:   "IGT",
	TraditionalOther: "Other",
}

var europeanCodeLabels = map[int]string{
	EuropeanDOP:   "DOP",
	EuropeanIGP:   "IGP",
	EuropeanOther: "Other",
}

// TraditionalCodeLabel returns the label for a traditional appellation code.
func TraditionalCodeLabel(code int) string {
	return traditionalCodeLabels[code]
}

// EuropeanCodeLabel returns the label for a European appellation code.
func EuropeanCodeLabel(code int) string {
	return europeanCodeLabels[code]
}

// WineKindLabel returns the label for a wine kind, or "" when unknown.
func WineKindLabel(kind int) string {
	return wineKindLabels[kind]
}

type GrapeType struct {
	gorm.Model
	Name        string `gorm:"size:200;not null" json:"name"`
	Origin      string `gorm:"size:200" json:"origin"`
	IsPublished bool   `gorm:"not null" json:"is_published"`
}

type Wine struct {
	gorm.Model
	Name               string  `gorm:"size:200;not null" json:"name"`
	Description        string  `gorm:"type:text" json:"description"`
	Code               string  `gorm:"size:20" json:"code"`
	TraditionalCode    int     `gorm:"not null;default:1" json:"traditional_code"`
	EuropeanCode       int     `gorm:"not null;default:1" json:"european_code"`
	Cooperative        string  `gorm:"size:200" json:"cooperative"`
	RegionID           *uint   `json:"region_id,omitempty"`
	SuggestTemperature *int    `json:"suggest_temperature,omitempty"` // °C
	EstateBottled      bool    `gorm:"not null;default:false" json:"estate_bottled"`
	AlcoholPercentage  float64 `gorm:"not null" json:"alcohol_percentage"`
	Year               int     `gorm:"not null" json:"year"`
	Rating             int     `gorm:"not null;default:1" json:"rating"`
	Kind               int     `gorm:"not null" json:"kind"`
	Tags               string  `json:"tags"`
	IsPublished        bool    `gorm:"not null" json:"is_published"`

	Region     *Region     `gorm:"foreignKey:RegionID" json:"region,omitempty"`
	GrapeTypes []GrapeType `gorm:"many2many:wine_grape_types;" json:"grape_types,omitempty"`
}
