package forms

import (
	"context"
	"net/url"
	"strconv"

	"cuisine/internal/crud"
	"cuisine/models"
)

var (
	wineKindChoices = labelled(models.WineKindLabel,
		models.WineKindRed, models.WineKindWhite, models.WineKindRose,
		models.WineKindSparkling, models.WineKindPassito, models.WineKindLiqueur)
	traditionalCodeChoices = labelled(models.TraditionalCodeLabel,
		models.TraditionalDOCG, models.TraditionalDOC, models.TraditionalIGT, models.TraditionalOther)
	europeanCodeChoices = labelled(models.EuropeanCodeLabel,
		models.EuropeanDOP, models.EuropeanIGP, models.EuropeanOther)
	ratingChoices = labelled(strconv.Itoa, 1, 2, 3, 4, 5)
)

// Wine validates wines.
func (s Schemas) Wine() crud.Form[models.Wine] {
	return crud.Form[models.Wine]{
		Name: "Wine",
		Validate: func(ctx context.Context, form url.Values, record *models.Wine) crud.FieldErrors {
			in := s.reader(ctx, form)
			record.Name = in.text("name", 200, true)
			record.Description = in.text("description", 0, false)
			record.Code = in.text("code", 20, false)
			record.TraditionalCode = in.option("traditional_code", traditionalCodeChoices, true)
			record.EuropeanCode = in.option("european_code", europeanCodeChoices, true)
			record.Cooperative = in.text("cooperative", 200, false)
			record.RegionID = in.reference("region", SourceRegion, false)
			record.SuggestTemperature = in.optionalInt("suggest_temperature")
			record.EstateBottled = in.flag("estate_bottled")
			record.AlcoholPercentage = in.decimal("alcohol_percentage", true)
			if record.AlcoholPercentage < 0 || record.AlcoholPercentage > 100 {
				in.errs.Add("alcohol_percentage", "Enter a percentage between 0 and 100.")
			}
			record.Year = in.integer("year", true)
			if record.Year != 0 {
				in.between("year", record.Year, 1800, 2100)
			}
			record.Rating = in.option("rating", ratingChoices, true)
			record.Kind = in.option("kind", wineKindChoices, true)
			record.Tags = in.text("tags", 0, false)
			record.IsPublished = in.flag("is_published")
			return in.errs
		},
		Describe: func(ctx context.Context, record *models.Wine) ([]crud.Field, error) {
			region, err := s.referenceField(ctx, "region", "Region", SourceRegion, record.RegionID, false)
			if err != nil {
				return nil, err
			}
			return []crud.Field{
				textField("name", "Name", record.Name, true),
				textAreaField("description", "Description", record.Description),
				textField("code", "Code", record.Code, false),
				selectField("traditional_code", "Traditional code", formatInt(record.TraditionalCode), traditionalCodeChoices, true),
				selectField("european_code", "European code", formatInt(record.EuropeanCode), europeanCodeChoices, true),
				textField("cooperative", "Cooperative", record.Cooperative, false),
				region,
				numberField("suggest_temperature", "Suggested temperature (°C)", formatOptionalInt(record.SuggestTemperature), false),
				checkboxField("estate_bottled", "Estate bottled", record.EstateBottled),
				numberField("alcohol_percentage", "Alcohol %", formatDecimal(record.AlcoholPercentage), true),
				numberField("year", "Year", formatInt(record.Year), true),
				selectField("rating", "Rating", formatInt(record.Rating), ratingChoices, true),
				selectField("kind", "Kind", formatInt(record.Kind), wineKindChoices, true),
				textField("tags", "Tags", record.Tags, false),
				checkboxField("is_published", "Published", publishedByDefault(record.ID, record.IsPublished)),
			}, nil
		},
		Title: func(record *models.Wine) string {
			if record.Year > 0 {
				return record.Name + " " + strconv.Itoa(record.Year)
			}
			return record.Name
		},
		Identify: func(record *models.Wine) uint { return record.ID },
	}
}
