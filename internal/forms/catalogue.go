package forms

import (
	"context"
	"net/url"

	"cuisine/internal/crud"
	"cuisine/models"
)

// Category validates recipe categories.
func (s Schemas) Category() crud.Form[models.Category] {
	return crud.Form[models.Category]{
		Name: "Category",
		Validate: func(ctx context.Context, form url.Values, record *models.Category) crud.FieldErrors {
			in := s.reader(ctx, form)
			record.Name = in.text("name", 60, true)
			record.ParentID = in.reference("parent", SourceCategory, false)
			record.Order = in.integer("order", false)
			record.IsPublished = in.flag("is_published")
			if record.ParentID != nil && record.ID != 0 && *record.ParentID == record.ID {
				in.errs.Add("parent", "A category cannot be its own parent.")
			}
			return in.errs
		},
		Describe: func(ctx context.Context, record *models.Category) ([]crud.Field, error) {
			parent, err := s.referenceField(ctx, "parent", "Parent", SourceCategory, record.ParentID, false)
			if err != nil {
				return nil, err
			}
			return []crud.Field{
				textField("name", "Name", record.Name, true),
				parent,
				numberField("order", "Order", formatInt(record.Order), false),
				checkboxField("is_published", "Published", publishedByDefault(record.ID, record.IsPublished)),
			}, nil
		},
		Title:    func(record *models.Category) string { return record.Name },
		Identify: func(record *models.Category) uint { return record.ID },
	}
}

// FoodType validates food types.
func (s Schemas) FoodType() crud.Form[models.FoodType] {
	return crud.Form[models.FoodType]{
		Name: "FoodType",
		Validate: func(ctx context.Context, form url.Values, record *models.FoodType) crud.FieldErrors {
			in := s.reader(ctx, form)
			record.TypeName = in.text("type_name", 60, true)
			record.IsPublished = in.flag("is_published")
			return in.errs
		},
		Describe: func(_ context.Context, record *models.FoodType) ([]crud.Field, error) {
			return []crud.Field{
				textField("type_name", "Type name", record.TypeName, true),
				checkboxField("is_published", "Published", publishedByDefault(record.ID, record.IsPublished)),
			}, nil
		},
		Title:    func(record *models.FoodType) string { return record.TypeName },
		Identify: func(record *models.FoodType) uint { return record.ID },
	}
}

// Food validates foods.
func (s Schemas) Food() crud.Form[models.Food] {
	return crud.Form[models.Food]{
		Name: "Food",
		Validate: func(ctx context.Context, form url.Values, record *models.Food) crud.FieldErrors {
			in := s.reader(ctx, form)
			record.Name = in.text("name", 60, true)
			record.FoodTypeID = in.requiredReference("food_type", SourceFoodType)
			record.IsPublished = in.flag("is_published")
			return in.errs
		},
		Describe: func(ctx context.Context, record *models.Food) ([]crud.Field, error) {
			foodType, err := s.referenceField(ctx, "food_type", "Food type", SourceFoodType, &record.FoodTypeID, true)
			if err != nil {
				return nil, err
			}
			return []crud.Field{
				textField("name", "Name", record.Name, true),
				foodType,
				checkboxField("is_published", "Published", publishedByDefault(record.ID, record.IsPublished)),
			}, nil
		},
		Title:    func(record *models.Food) string { return record.Name },
		Identify: func(record *models.Food) uint { return record.ID },
	}
}

var unitTypeChoices = labelled(models.UnitTypeLabel, models.UnitTypeWeight, models.UnitTypeVolume, models.UnitTypeOther)

// Unit validates measurement units.
func (s Schemas) Unit() crud.Form[models.Unit] {
	return crud.Form[models.Unit]{
		Name: "Unit",
		Validate: func(ctx context.Context, form url.Values, record *models.Unit) crud.FieldErrors {
			in := s.reader(ctx, form)
			record.UnitName = in.text("unit_name", 60, true)
			record.Code = in.text("code", 60, false)
			record.Type = in.option("type", unitTypeChoices, true)
			return in.errs
		},
		Describe: func(_ context.Context, record *models.Unit) ([]crud.Field, error) {
			return []crud.Field{
				textField("unit_name", "Unit name", record.UnitName, true),
				textField("code", "Code", record.Code, false),
				selectField("type", "Type", formatInt(record.Type), unitTypeChoices, true),
			}, nil
		},
		Title:    func(record *models.Unit) string { return record.UnitName },
		Identify: func(record *models.Unit) uint { return record.ID },
	}
}

// Country validates countries.
func (s Schemas) Country() crud.Form[models.Country] {
	return crud.Form[models.Country]{
		Name: "Country",
		Validate: func(ctx context.Context, form url.Values, record *models.Country) crud.FieldErrors {
			in := s.reader(ctx, form)
			record.Name = in.text("name", 100, true)
			record.Continent = in.text("continent", 60, false)
			return in.errs
		},
		Describe: func(_ context.Context, record *models.Country) ([]crud.Field, error) {
			return []crud.Field{
				textField("name", "Name", record.Name, true),
				textField("continent", "Continent", record.Continent, false),
			}, nil
		},
		Title:    func(record *models.Country) string { return record.Name },
		Identify: func(record *models.Country) uint { return record.ID },
	}
}

// Region validates regions.
func (s Schemas) Region() crud.Form[models.Region] {
	return crud.Form[models.Region]{
		Name: "Region",
		Validate: func(ctx context.Context, form url.Values, record *models.Region) crud.FieldErrors {
			in := s.reader(ctx, form)
			record.Name = in.text("name", 100, true)
			record.CountryID = in.requiredReference("country", SourceCountry)
			return in.errs
		},
		Describe: func(ctx context.Context, record *models.Region) ([]crud.Field, error) {
			country, err := s.referenceField(ctx, "country", "Country", SourceCountry, &record.CountryID, true)
			if err != nil {
				return nil, err
			}
			return []crud.Field{textField("name", "Name", record.Name, true), country}, nil
		},
		Title:    func(record *models.Region) string { return record.Name },
		Identify: func(record *models.Region) uint { return record.ID },
	}
}

// GrapeType validates grape varieties.
func (s Schemas) GrapeType() crud.Form[models.GrapeType] {
	return crud.Form[models.GrapeType]{
		Name: "GrapeType",
		Validate: func(ctx context.Context, form url.Values, record *models.GrapeType) crud.FieldErrors {
			in := s.reader(ctx, form)
			record.Name = in.text("name", 200, true)
			record.Origin = in.text("origin", 200, false)
			record.IsPublished = in.flag("is_published")
			return in.errs
		},
		Describe: func(_ context.Context, record *models.GrapeType) ([]crud.Field, error) {
			return []crud.Field{
				textField("name", "Name", record.Name, true),
				textField("origin", "Origin", record.Origin, false),
				checkboxField("is_published", "Published", publishedByDefault(record.ID, record.IsPublished)),
			}, nil
		},
		Title:    func(record *models.GrapeType) string { return record.Name },
		Identify: func(record *models.GrapeType) uint { return record.ID },
	}
}

// New records render as published.
func publishedByDefault(id uint, published bool) bool {
	return id == 0 || published
}
