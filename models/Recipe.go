package models

import (
	"gorm.io/gorm"
)

// Difficulty levels accepted for a recipe.
const (
	DifficultyVeryEasy = iota + 1
	DifficultyEasy
	DifficultyMedium
	DifficultyDifficult
	DifficultyVeryDifficult
)

var difficultyLabels = map[int]string{
	DifficultyVeryEasy:      "Very Easy",
	DifficultyEasy:          "Easy",
	DifficultyMedium:        "Medium",
	DifficultyDifficult:     "Difficult",
	DifficultyVeryDifficult: "Very Difficult",
}

// DifficultyLabel returns the human readable label for a difficulty level.
func DifficultyLabel(level int) string {
	return difficultyLabels[level]
}

// ValidDifficulty reports whether level is one of the known difficulty levels.
func ValidDifficulty(level int) bool {
	_, ok := difficultyLabels[level]
	return ok
}

type Recipe struct {
	gorm.Model
	Title           string `gorm:"size:200;not null" json:"title"`
	Summary         string `gorm:"size:500" json:"summary"`
	PreparationTime string `gorm:"size:100" json:"preparation_time"`
	Difficulty      int    `gorm:"not null" json:"difficulty"`
	CategoryID      uint   `gorm:"index;not null" json:"category_id"`
	CountryID       uint   `gorm:"index;not null" json:"country_id"`
	RegionID        *uint  `json:"region_id,omitempty"`
	IsForVegan      bool   `gorm:"not null;default:false" json:"is_for_vegan"`
	IsForVegetarian bool   `gorm:"not null;default:false" json:"is_for_vegetarian"`
	IsPublished     bool   `gorm:"not null" json:"is_published"`
	Tags            string `json:"tags"`
	AuthorID        uint   `gorm:"index;not null" json:"author_id"`
	ForkOriginID    *uint  `gorm:"index" json:"fork_origin_id,omitempty"` // recipe this one was forked from

	// --- Preloadable Data ---
	Author         *User        `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Category       *Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Country        *Country     `gorm:"foreignKey:CountryID" json:"country,omitempty"`
	Region         *Region      `gorm:"foreignKey:RegionID" json:"region,omitempty"`
	ForkOrigin     *Recipe      `gorm:"foreignKey:ForkOriginID" json:"fork_origin,omitempty"`
	SuggestedWines []Wine       `gorm:"many2many:recipe_suggested_wines;" json:"suggested_wines,omitempty"`
	Ingredients    []Ingredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE;" json:"ingredients,omitempty"`
	Steps          []RecipeStep `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE;" json:"steps,omitempty"`
}

// RecipeStep is one ordered instruction belonging to a recipe.
type RecipeStep struct {
	gorm.Model
	RecipeID uint   `gorm:"index;not null" json:"recipe_id"`
	Order    int    `gorm:"column:display_order" json:"order"`
	Text     string `gorm:"type:text" json:"text"`
	Duration *int   `json:"duration,omitempty"` // minutes
}

// Ingredient is an ordered quantity of a food used by a recipe.
type Ingredient struct {
	gorm.Model
	RecipeID uint    `gorm:"index;not null" json:"recipe_id"`
	FoodID   uint    `gorm:"not null" json:"food_id"`
	UnitID   *uint   `json:"unit_id,omitempty"`
	Quantity float64 `gorm:"not null" json:"quantity"`
	Order    int     `gorm:"column:display_order" json:"order"`

	Food *Food `gorm:"foreignKey:FoodID" json:"food,omitempty"`
	Unit *Unit `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}

// DisplayOrder is the ordering clause shared by steps and ingredients.
const DisplayOrder = "display_order asc, id asc"
