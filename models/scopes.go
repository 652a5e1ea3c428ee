package models

import "gorm.io/gorm"

// Published restricts a query to records flagged as published.
func Published(db *gorm.DB) *gorm.DB {
	return db.Where("is_published = ?", true)
}

// VeganFriendly restricts a recipe query to published vegan recipes.
func VeganFriendly(db *gorm.DB) *gorm.DB {
	return Published(db).Where("is_for_vegan = ?", true)
}

// VegetarianFriendly restricts a recipe query to published vegetarian recipes.
func VegetarianFriendly(db *gorm.DB) *gorm.DB {
	return Published(db).Where("is_for_vegetarian = ?", true)
}

// VegFriendly restricts a recipe query to published recipes that are vegan or vegetarian.
func VegFriendly(db *gorm.DB) *gorm.DB {
	return Published(db).Where("(is_for_vegan = ? OR is_for_vegetarian = ?)", true, true)
}

// DietScope resolves a diet filter name to its scope. Unknown names return
// Published and false.
func DietScope(name string) (func(*gorm.DB) *gorm.DB, bool) {
	switch name {
	case "vegan":
		return VeganFriendly, true
	case "vegetarian":
		return VegetarianFriendly, true
	case "veg":
		return VegFriendly, true
	default:
		return Published, false
	}
}

// AuthoredBy restricts a recipe query to one author.
func AuthoredBy(authorID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("author_id = ?", authorID)
	}
}

// ForksOf restricts a recipe query to direct forks of the given recipe.
func ForksOf(recipeID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("fork_origin_id = ?", recipeID)
	}
}
