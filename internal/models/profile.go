package models

import "fmt"

// Sex is the category the strength standards table is keyed by.
type Sex string

const (
	Male   Sex = "male"
	Female Sex = "female"
)

// ParseSex validates and normalizes a sex string.
func ParseSex(s string) (Sex, error) {
	switch Sex(s) {
	case Male, Female:
		return Sex(s), nil
	}
	return "", fmt.Errorf("sex must be %q or %q, got %q", Male, Female, s)
}

// Profile is the user data scoring depends on. The current bodyweight is
// applied uniformly across all historical computations; there is no
// per-date bodyweight tracking.
type Profile struct {
	Sex      Sex     `json:"sex" yaml:"sex"`
	WeightKg float64 `json:"weight_kg" yaml:"weight_kg"`
}

// Validate checks the profile is usable for scoring.
func (p Profile) Validate() error {
	if _, err := ParseSex(string(p.Sex)); err != nil {
		return err
	}
	if p.WeightKg <= 0 {
		return fmt.Errorf("weight_kg must be positive, got %v", p.WeightKg)
	}
	return nil
}
