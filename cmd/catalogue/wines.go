package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	applog "cuisine/internal/log"
	"cuisine/models"
)

var wineColumns = []string{"name", "kind", "year", "alcohol"}

// wineRow is one parsed line of the wines CSV.
type wineRow struct {
	line            int
	name            string
	description     string
	kind            int
	traditionalCode int
	europeanCode    int
	region          string
	year            int
	alcohol         float64
	rating          int
	grapes          []string
	tags            string
}

func newWinesCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "wines <file.csv>",
		Short: "Create or update wines from a CSV file with a header row",
		Long: `Create or update wines from a CSV file.

Required columns: name, kind, year, alcohol. Optional columns: description,
traditional_code, european_code, region, rating, grapes (separated by ";")
and tags. A wine is matched on name and year.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open csv: %w", err)
			}
			defer file.Close()

			rows, err := readWines(file)
			if err != nil {
				return err
			}
			if opts.dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d wines\n", args[0], len(rows))
				return nil
			}
			database, err := openDatabaseFunc()
			if err != nil {
				return err
			}
			res, err := loadWines(cmd.Context(), database, rows)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported wines from %s: %s\n", args[0], res)
			return nil
		},
	}
}

func readWines(r io.Reader) ([]wineRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, column := range header {
		index[strings.ToLower(strings.TrimSpace(column))] = i
	}
	for _, column := range wineColumns {
		if _, ok := index[column]; !ok {
			return nil, fmt.Errorf("csv is missing the %q column", column)
		}
	}

	var rows []wineRow
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		get := func(column string) string {
			if i, ok := index[column]; ok && i < len(record) {
				return strings.TrimSpace(record[i])
			}
			return ""
		}
		row, err := parseWine(line, get)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseWine(line int, get func(string) string) (wineRow, error) {
	row := wineRow{
		line:        line,
		name:        get("name"),
		description: get("description"),
		region:      get("region"),
		tags:        get("tags"),
	}
	if row.name == "" {
		return row, errors.New("name is required")
	}

	var err error
	if row.kind, err = labelCode(get("kind"), models.WineKindLabel, 0); err != nil {
		return row, fmt.Errorf("kind: %w", err)
	}
	if row.traditionalCode, err = labelCode(get("traditional_code"), models.TraditionalCodeLabel, models.TraditionalOther); err != nil {
		return row, fmt.Errorf("traditional_code: %w", err)
	}
	if row.europeanCode, err = labelCode(get("european_code"), models.EuropeanCodeLabel, models.EuropeanOther); err != nil {
		return row, fmt.Errorf("european_code: %w", err)
	}
	if row.year, err = strconv.Atoi(get("year")); err != nil || row.year < 1000 || row.year > 9999 {
		return row, fmt.Errorf("year %q is not a four digit year", get("year"))
	}
	if row.alcohol, err = strconv.ParseFloat(get("alcohol"), 64); err != nil || row.alcohol < 0 || row.alcohol > 100 {
		return row, fmt.Errorf("alcohol %q is not a percentage", get("alcohol"))
	}
	row.rating = 1
	if raw := get("rating"); raw != "" {
		if row.rating, err = strconv.Atoi(raw); err != nil || row.rating < 1 || row.rating > 5 {
			return row, fmt.Errorf("rating %q must be between 1 and 5", raw)
		}
	}
	for _, grape := range strings.Split(get("grapes"), ";") {
		if grape = strings.TrimSpace(grape); grape != "" {
			row.grapes = append(row.grapes, grape)
		}
	}
	return row, nil
}

// labelCode resolves a label such as "Red" or its numeric code. Empty
// values fall back to def, which must be non-zero for optional columns.
func labelCode(value string, label func(int) string, def int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		if def == 0 {
			return 0, errors.New("value is required")
		}
		return def, nil
	}
	if code, err := strconv.Atoi(value); err == nil && label(code) != "" {
		return code, nil
	}
	for code := 1; label(code) != ""; code++ {
		if strings.EqualFold(label(code), value) {
			return code, nil
		}
	}
	return 0, fmt.Errorf("unknown value %q", value)
}

// loadWines upserts each wine with its grapes in its own transaction.
func loadWines(ctx context.Context, database *gorm.DB, rows []wineRow) (result, error) {
	var res result
	for _, row := range rows {
		row := row
		err := database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var regionID *uint
			if row.region != "" {
				region := &models.Region{}
				if err := tx.Where("name = ?", row.region).First(region).Error; err != nil {
					return fmt.Errorf("region %q: %w", row.region, err)
				}
				regionID = &region.ID
			}

			grapes := make([]models.GrapeType, 0, len(row.grapes))
			for _, name := range row.grapes {
				grape := models.GrapeType{}
				err := tx.Where("name = ?", name).First(&grape).Error
				if errors.Is(err, gorm.ErrRecordNotFound) {
					grape = models.GrapeType{Name: name, IsPublished: true}
					err = tx.Create(&grape).Error
				}
				if err != nil {
					return fmt.Errorf("grape %q: %w", name, err)
				}
				grapes = append(grapes, grape)
			}

			wine := &models.Wine{}
			err := tx.Where("name = ? AND year = ?", row.name, row.year).First(wine).Error
			created := errors.Is(err, gorm.ErrRecordNotFound)
			if err != nil && !created {
				return err
			}

			wine.Name = row.name
			wine.Description = row.description
			wine.Kind = row.kind
			wine.TraditionalCode = row.traditionalCode
			wine.EuropeanCode = row.europeanCode
			wine.RegionID = regionID
			wine.Year = row.year
			wine.AlcoholPercentage = row.alcohol
			wine.Rating = row.rating
			wine.Tags = row.tags
			wine.IsPublished = true
			wine.Region, wine.GrapeTypes = nil, nil

			if created {
				err = tx.Create(wine).Error
			} else {
				err = tx.Save(wine).Error
			}
			if err != nil {
				return err
			}
			if err := tx.Model(wine).Association("GrapeTypes").Replace(grapes); err != nil {
				return fmt.Errorf("grapes: %w", err)
			}
			res.add(created)
			return nil
		})
		if err != nil {
			return res, fmt.Errorf("line %d (%s): %w", row.line, row.name, err)
		}
		applog.Debug(ctx, "wine loaded", "name", row.name, "year", row.year)
	}
	return res, nil
}
