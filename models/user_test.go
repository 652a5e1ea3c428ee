package models

import "testing"

func TestDifficultyLabel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		level int
		want  string
		valid bool
	}{
		{"very easy", DifficultyVeryEasy, "Very Easy", true},
		{"medium", DifficultyMedium, "Medium", true},
		{"very difficult", DifficultyVeryDifficult, "Very Difficult", true},
		{"zero", 0, "", false},
		{"out of range", 6, "", false},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DifficultyLabel(tt.level); got != tt.want {
				t.Fatalf("DifficultyLabel(%d) = %q, want %q", tt.level, got, tt.want)
			}
			if got := ValidDifficulty(tt.level); got != tt.valid {
				t.Fatalf("ValidDifficulty(%d) = %t, want %t", tt.level, got, tt.valid)
			}
		})
	}
}

func TestUserDisplayName(t *testing.T) {
	t.Parallel()

	if got := (User{Email: "cook@example.com"}).DisplayName(); got != "cook@example.com" {
		t.Fatalf("DisplayName without name = %q", got)
	}
	if got := (User{Email: "cook@example.com", Name: "Luca"}).DisplayName(); got != "Luca" {
		t.Fatalf("DisplayName with name = %q", got)
	}
}

func TestIngredientDescribe(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		ingredient Ingredient
		want       string
	}{
		{
			name:       "whole quantity with unit code",
			ingredient: Ingredient{Quantity: 2, Unit: &Unit{UnitName: "Gram", Code: "g"}, Food: &Food{Name: "Flour"}},
			want:       "2 g flour",
		},
		{
			name:       "fractional quantity falls back to unit name",
			ingredient: Ingredient{Quantity: 0.5, Unit: &Unit{UnitName: "cup"}, Food: &Food{Name: "Milk"}},
			want:       "0.5 cup milk",
		},
		{
			name:       "no unit",
			ingredient: Ingredient{Quantity: 3, Food: &Food{Name: "Eggs"}},
			want:       "3 eggs",
		},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.ingredient.Describe(); got != tt.want {
				t.Fatalf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWineKindLabel(t *testing.T) {
	t.Parallel()

	if got := WineKindLabel(WineKindRose); got != "Rosé" {
		t.Fatalf("WineKindLabel(rose) = %q", got)
	}
	if got := WineKindLabel(42); got != "" {
		t.Fatalf("WineKindLabel(unknown) = %q, want empty", got)
	}
}
