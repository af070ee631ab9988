package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the layout used for birth dates in configuration files
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date. Leading/trailing whitespace is ignored.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// AgeInYear returns the age attained in currentYear by someone born in birthYear.
// The projection is annual, so the age is the same for the whole calendar year.
func AgeInYear(birthYear, startYear, currentYear int) int {
	return (startYear - birthYear) + (currentYear - startYear)
}

// RMDBand maps a range of birth years to the age at which required minimum
// distributions begin. A zero MinBirthYear or MaxBirthYear leaves that side open.
type RMDBand struct {
	MinBirthYear int `yaml:"min_birth_year" json:"min_birth_year"`
	MaxBirthYear int `yaml:"max_birth_year" json:"max_birth_year"`
	Age          int `yaml:"age" json:"age"`
}

// RMDPolicy is an ordered set of birth-year bands. The first matching band wins.
type RMDPolicy struct {
	Bands      []RMDBand `yaml:"bands" json:"bands"`
	DefaultAge int       `yaml:"default_age" json:"default_age"`
}

// DefaultRMDPolicy is the SECURE 2.0 schedule:
// born 1960 or later -> 75, born 1951-1959 -> 73, earlier -> 72.
var DefaultRMDPolicy = RMDPolicy{
	Bands: []RMDBand{
		{MinBirthYear: 1960, Age: 75},
		{MinBirthYear: 1951, MaxBirthYear: 1959, Age: 73},
	},
	DefaultAge: 72,
}

// StartAge returns the RMD start age for a birth year under this policy
func (p RMDPolicy) StartAge(birthYear int) int {
	for _, b := range p.Bands {
		if b.MinBirthYear != 0 && birthYear < b.MinBirthYear {
			continue
		}
		if b.MaxBirthYear != 0 && birthYear > b.MaxBirthYear {
			continue
		}
		return b.Age
	}
	if p.DefaultAge == 0 {
		return DefaultRMDPolicy.DefaultAge
	}
	return p.DefaultAge
}

// RMDStartAge returns the age at which RMDs begin for someone born on birthDate
func RMDStartAge(birthDate time.Time) int {
	return DefaultRMDPolicy.StartAge(birthDate.Year())
}
