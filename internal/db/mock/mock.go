package mock

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"cuisine/internal/db"
	applog "cuisine/internal/log"
	"cuisine/models"
)

// Password is the password of every seeded user.
const Password = "cuisine"

var sequence atomic.Int64

// New returns an in-memory sqlite database seeded with a small catalogue:
// two cooks, lookup data, wines and a handful of recipes including a fork.
// Each call opens a separate database.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	dsn := fmt.Sprintf("file:cuisine-mock-%d?mode=memory&cache=shared", sequence.Add(1))
	database, err := gorm.Open(sqlite.Open(dsn), db.GormConfig(logger.Silent))
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}

	if err := seed(ctx, database); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

func seed(ctx context.Context, database *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	password, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		luca := &models.User{Name: "Luca Rossi", Email: "luca@cuisine.app", PasswordHash: string(password)}
		marta := &models.User{Name: "Marta Bianchi", Email: "marta@cuisine.app", PasswordHash: string(password)}
		if err := create(tx, luca, marta); err != nil {
			return err
		}

		italy := &models.Country{Name: "Italy", Continent: "Europe"}
		france := &models.Country{Name: "France", Continent: "Europe"}
		if err := create(tx, italy, france); err != nil {
			return err
		}

		piedmont := &models.Region{Name: "Piedmont", CountryID: italy.ID}
		tuscany := &models.Region{Name: "Tuscany", CountryID: italy.ID}
		burgundy := &models.Region{Name: "Burgundy", CountryID: france.ID}
		if err := create(tx, piedmont, tuscany, burgundy); err != nil {
			return err
		}

		soups := &models.Category{Name: "Soups", Order: 1, IsPublished: true}
		mains := &models.Category{Name: "Main courses", Order: 2, IsPublished: true}
		tarts := &models.Category{Name: "Savoury tarts", Order: 3, IsPublished: true}
		if err := create(tx, soups, mains, tarts); err != nil {
			return err
		}

		vegetables := &models.FoodType{TypeName: "Vegetables", IsPublished: true}
		dairy := &models.FoodType{TypeName: "Dairy", IsPublished: true}
		grains := &models.FoodType{TypeName: "Grains", IsPublished: true}
		if err := create(tx, vegetables, dairy, grains); err != nil {
			return err
		}

		leek := &models.Food{Name: "Leek", FoodTypeID: vegetables.ID, IsPublished: true}
		potato := &models.Food{Name: "Potato", FoodTypeID: vegetables.ID, IsPublished: true}
		onion := &models.Food{Name: "Onion", FoodTypeID: vegetables.ID, IsPublished: true}
		parmesan := &models.Food{Name: "Parmesan", FoodTypeID: dairy.ID, IsPublished: true}
		rice := &models.Food{Name: "Arborio rice", FoodTypeID: grains.ID, IsPublished: true}
		if err := create(tx, leek, potato, onion, parmesan, rice); err != nil {
			return err
		}

		gram := &models.Unit{UnitName: "gram", Code: "g", Type: models.UnitTypeWeight}
		litre := &models.Unit{UnitName: "litre", Code: "l", Type: models.UnitTypeVolume}
		piece := &models.Unit{UnitName: "piece", Type: models.UnitTypeOther}
		if err := create(tx, gram, litre, piece); err != nil {
			return err
		}

		nebbiolo := &models.GrapeType{Name: "Nebbiolo", Origin: "Piedmont", IsPublished: true}
		sangiovese := &models.GrapeType{Name: "Sangiovese", Origin: "Tuscany", IsPublished: true}
		if err := create(tx, nebbiolo, sangiovese); err != nil {
			return err
		}

		barolo := &models.Wine{
			Name: "Barolo", Description: "Structured red with tar and roses.",
			TraditionalCode: models.TraditionalDOCG, EuropeanCode: models.EuropeanDOP,
			RegionID: &piedmont.ID, AlcoholPercentage: 14, Year: 2016, Rating: 5,
			Kind: models.WineKindRed, IsPublished: true,
		}
		chianti := &models.Wine{
			Name: "Chianti Classico", Description: "Bright cherry and herbs.",
			TraditionalCode: models.TraditionalDOCG, EuropeanCode: models.EuropeanDOP,
			RegionID: &tuscany.ID, AlcoholPercentage: 13.5, Year: 2019, Rating: 4,
			Kind: models.WineKindRed, IsPublished: true,
		}
		if err := create(tx, barolo, chianti); err != nil {
			return err
		}
		if err := tx.Table("wine_grape_types").Create([]map[string]any{
			{"wine_id": barolo.ID, "grape_type_id": nebbiolo.ID},
			{"wine_id": chianti.ID, "grape_type_id": sangiovese.ID},
		}).Error; err != nil {
			return err
		}

		soup := &models.Recipe{
			Title: "Leek and potato soup", Summary: "A silky winter soup.",
			PreparationTime: "45 minutes", Difficulty: models.DifficultyEasy,
			CategoryID: soups.ID, CountryID: france.ID, IsForVegan: true, IsForVegetarian: true,
			IsPublished: true, Tags: "winter, soup", AuthorID: luca.ID,
		}
		risotto := &models.Recipe{
			Title: "Risotto alla parmigiana", Summary: "Creamy rice finished with parmesan.",
			PreparationTime: "30 minutes", Difficulty: models.DifficultyMedium,
			CategoryID: mains.ID, CountryID: italy.ID, RegionID: &piedmont.ID, IsForVegetarian: true,
			IsPublished: true, Tags: "rice", AuthorID: marta.ID,
		}
		tart := &models.Recipe{
			Title: "Onion tart", Summary: "Still being tested.",
			Difficulty: models.DifficultyDifficult, CategoryID: tarts.ID, CountryID: france.ID,
			IsForVegetarian: true, AuthorID: luca.ID,
		}
		if err := create(tx, soup, risotto, tart); err != nil {
			return err
		}

		if err := tx.Table("recipe_suggested_wines").Create([]map[string]any{
			{"recipe_id": risotto.ID, "wine_id": barolo.ID},
		}).Error; err != nil {
			return err
		}

		ingredients := []models.Ingredient{
			{RecipeID: soup.ID, FoodID: leek.ID, UnitID: &piece.ID, Quantity: 2, Order: 1},
			{RecipeID: soup.ID, FoodID: potato.ID, UnitID: &gram.ID, Quantity: 400, Order: 2},
			{RecipeID: risotto.ID, FoodID: rice.ID, UnitID: &gram.ID, Quantity: 320, Order: 1},
			{RecipeID: risotto.ID, FoodID: onion.ID, UnitID: &piece.ID, Quantity: 1, Order: 2},
			{RecipeID: risotto.ID, FoodID: parmesan.ID, UnitID: &gram.ID, Quantity: 80, Order: 3},
			{RecipeID: tart.ID, FoodID: onion.ID, UnitID: &piece.ID, Quantity: 4, Order: 1},
		}
		if err := tx.Omit(clause.Associations).Create(&ingredients).Error; err != nil {
			return err
		}

		twenty := 20
		steps := []models.RecipeStep{
			{RecipeID: soup.ID, Order: 1, Text: "Slice the leeks and dice the potatoes."},
			{RecipeID: soup.ID, Order: 2, Text: "Simmer in salted water until tender, then blend.", Duration: &twenty},
			{RecipeID: risotto.ID, Order: 1, Text: "Soften the onion."},
			{RecipeID: risotto.ID, Order: 2, Text: "Toast the rice and add stock ladle by ladle.", Duration: &twenty},
			{RecipeID: risotto.ID, Order: 3, Text: "Stir in the parmesan off the heat."},
			{RecipeID: tart.ID, Order: 1, Text: "Caramelise the onions slowly."},
		}
		if err := tx.Omit(clause.Associations).Create(&steps).Error; err != nil {
			return err
		}

		fork := &models.Recipe{
			Title: soup.Title, Summary: "Marta's version with more pepper.",
			PreparationTime: soup.PreparationTime, Difficulty: soup.Difficulty,
			CategoryID: soup.CategoryID, CountryID: soup.CountryID, IsForVegan: true, IsForVegetarian: true,
			IsPublished: true, Tags: soup.Tags, AuthorID: marta.ID, ForkOriginID: &soup.ID,
		}
		if err := create(tx, fork); err != nil {
			return err
		}

		applog.Debug(ctx, "mock database seeded")
		return nil
	})
}

func create(tx *gorm.DB, records ...any) error {
	for _, record := range records {
		if err := tx.Omit(clause.Associations).Create(record).Error; err != nil {
			return err
		}
	}
	return nil
}
