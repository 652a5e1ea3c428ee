package db

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cuisine/internal/crud"
	"cuisine/internal/forms"
	"cuisine/models"
)

// Store adapts a gorm handle to the generic CRUD views and to the lookup
// that fills reference fields.
type Store struct {
	db *gorm.DB
}

var (
	_ crud.Store   = (*Store)(nil)
	_ forms.Lookup = (*Store)(nil)
)

// NewStore wraps db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) List(ctx context.Context, list any) error {
	return s.db.WithContext(ctx).Order("id asc").Find(list).Error
}

func (s *Store) Get(ctx context.Context, record any, id uint) error {
	err := s.db.WithContext(ctx).First(record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return crud.ErrNotFound
	}
	return err
}

func (s *Store) Create(ctx context.Context, record any) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(record).Error
}

func (s *Store) Update(ctx context.Context, record any) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Save(record).Error
}

func (s *Store) Delete(ctx context.Context, record any) error {
	return s.db.WithContext(ctx).Delete(record).Error
}

type choiceRow struct {
	ID    uint
	Label string
}

// Choices lists the rows of a lookup table as select options ordered by label.
func (s *Store) Choices(ctx context.Context, source forms.Source) ([]crud.Choice, error) {
	var (
		model any
		label string
	)
	switch source {
	case forms.SourceCategory:
		model, label = &models.Category{}, "name"
	case forms.SourceCountry:
		model, label = &models.Country{}, "name"
	case forms.SourceRegion:
		model, label = &models.Region{}, "name"
	case forms.SourceFood:
		model, label = &models.Food{}, "name"
	case forms.SourceFoodType:
		model, label = &models.FoodType{}, "type_name"
	case forms.SourceUnit:
		model, label = &models.Unit{}, "unit_name"
	case forms.SourceGrapeType:
		model, label = &models.GrapeType{}, "name"
	default:
		return nil, fmt.Errorf("unknown lookup source %q", source)
	}

	var rows []choiceRow
	err := s.db.WithContext(ctx).
		Model(model).
		Select("id, " + label + " AS label").
		Order(label + " asc, id asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	choices := make([]crud.Choice, len(rows))
	for i, row := range rows {
		choices[i] = crud.Choice{Value: strconv.FormatUint(uint64(row.ID), 10), Label: row.Label}
	}
	return choices, nil
}
