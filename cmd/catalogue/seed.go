package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	applog "cuisine/internal/log"
	"cuisine/models"
)

// seedFile is the YAML document read by the seed command.
type seedFile struct {
	Countries []struct {
		Name      string   `yaml:"name"`
		Continent string   `yaml:"continent"`
		Regions   []string `yaml:"regions"`
	} `yaml:"countries"`
	Categories []struct {
		Name   string `yaml:"name"`
		Order  int    `yaml:"order"`
		Parent string `yaml:"parent"`
	} `yaml:"categories"`
	FoodTypes []struct {
		Name  string   `yaml:"name"`
		Foods []string `yaml:"foods"`
	} `yaml:"food_types"`
	Units []struct {
		Name string `yaml:"name"`
		Code string `yaml:"code"`
		Type string `yaml:"type"`
	} `yaml:"units"`
	GrapeTypes []struct {
		Name   string `yaml:"name"`
		Origin string `yaml:"origin"`
	} `yaml:"grape_types"`
}

func newSeedCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Create or update countries, regions, categories, foods, units and grapes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := readSeed(args[0])
			if err != nil {
				return err
			}
			if opts.dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d countries, %d categories, %d food types, %d units, %d grapes\n",
					args[0], len(seed.Countries), len(seed.Categories), len(seed.FoodTypes), len(seed.Units), len(seed.GrapeTypes))
				return nil
			}
			database, err := openDatabaseFunc()
			if err != nil {
				return err
			}
			res, err := applySeed(cmd.Context(), database, seed)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s: %s\n", args[0], res)
			return nil
		},
	}
}

func readSeed(path string) (*seedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	seed := &seedFile{}
	if err := yaml.Unmarshal(data, seed); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return seed, nil
}

// upsert loads the record matching column = value into record, creating it
// with fill applied when missing and updating it otherwise.
func upsert[T any](tx *gorm.DB, record *T, column, value string, fill func(*T)) (bool, error) {
	err := tx.Where(column+" = ?", value).First(record).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		fill(record)
		return true, tx.Create(record).Error
	case err != nil:
		return false, err
	}
	fill(record)
	return false, tx.Save(record).Error
}

// applySeed writes each top level record in its own transaction, so one bad
// entry stops the load without undoing the entries before it.
func applySeed(ctx context.Context, database *gorm.DB, seed *seedFile) (result, error) {
	var res result
	each := func(kind, name string, fn func(tx *gorm.DB) error) error {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%s without a name", kind)
		}
		if err := database.WithContext(ctx).Transaction(fn); err != nil {
			return fmt.Errorf("%s %q: %w", kind, name, err)
		}
		applog.Debug(ctx, "catalogue record loaded", "kind", kind, "name", name)
		return nil
	}

	for _, entry := range seed.Countries {
		err := each("country", entry.Name, func(tx *gorm.DB) error {
			country := &models.Country{}
			created, err := upsert(tx, country, "name", entry.Name, func(c *models.Country) {
				c.Name, c.Continent = entry.Name, entry.Continent
			})
			if err != nil {
				return err
			}
			res.add(created)
			for _, name := range entry.Regions {
				region := &models.Region{}
				err := tx.Where("name = ? AND country_id = ?", name, country.ID).First(region).Error
				if errors.Is(err, gorm.ErrRecordNotFound) {
					if err := tx.Create(&models.Region{Name: name, CountryID: country.ID}).Error; err != nil {
						return err
					}
					res.created++
					continue
				}
				if err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return res, err
		}
	}

	for _, entry := range seed.Categories {
		err := each("category", entry.Name, func(tx *gorm.DB) error {
			var parentID *uint
			if entry.Parent != "" {
				parent := &models.Category{}
				if err := tx.Where("name = ?", entry.Parent).First(parent).Error; err != nil {
					return fmt.Errorf("parent %q: %w", entry.Parent, err)
				}
				parentID = &parent.ID
			}
			created, err := upsert(tx, &models.Category{}, "name", entry.Name, func(c *models.Category) {
				c.Name, c.Order, c.ParentID, c.IsPublished = entry.Name, entry.Order, parentID, true
			})
			res.add(created)
			return err
		})
		if err != nil {
			return res, err
		}
	}

	for _, entry := range seed.FoodTypes {
		err := each("food type", entry.Name, func(tx *gorm.DB) error {
			foodType := &models.FoodType{}
			created, err := upsert(tx, foodType, "type_name", entry.Name, func(f *models.FoodType) {
				f.TypeName, f.IsPublished = entry.Name, true
			})
			if err != nil {
				return err
			}
			res.add(created)
			for _, name := range entry.Foods {
				created, err := upsert(tx, &models.Food{}, "name", name, func(f *models.Food) {
					f.Name, f.FoodTypeID, f.IsPublished = name, foodType.ID, true
				})
				if err != nil {
					return fmt.Errorf("food %q: %w", name, err)
				}
				res.add(created)
			}
			return nil
		})
		if err != nil {
			return res, err
		}
	}

	for _, entry := range seed.Units {
		err := each("unit", entry.Name, func(tx *gorm.DB) error {
			kind, err := unitType(entry.Type)
			if err != nil {
				return err
			}
			created, err := upsert(tx, &models.Unit{}, "unit_name", entry.Name, func(u *models.Unit) {
				u.UnitName, u.Code, u.Type = entry.Name, entry.Code, kind
			})
			res.add(created)
			return err
		})
		if err != nil {
			return res, err
		}
	}

	for _, entry := range seed.GrapeTypes {
		err := each("grape type", entry.Name, func(tx *gorm.DB) error {
			created, err := upsert(tx, &models.GrapeType{}, "name", entry.Name, func(g *models.GrapeType) {
				g.Name, g.Origin, g.IsPublished = entry.Name, entry.Origin, true
			})
			res.add(created)
			return err
		})
		if err != nil {
			return res, err
		}
	}

	return res, nil
}

func unitType(value string) (int, error) {
	if strings.TrimSpace(value) == "" {
		return models.UnitTypeOther, nil
	}
	for kind := models.UnitTypeWeight; kind <= models.UnitTypeOther; kind++ {
		if strings.EqualFold(models.UnitTypeLabel(kind), strings.TrimSpace(value)) {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown unit type %q", value)
}
