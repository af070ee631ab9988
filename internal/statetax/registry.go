package statetax

import (
	"sort"
	"strings"

	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/shopspring/decimal"
)

// Registry maps jurisdiction codes to calculators
type Registry struct {
	calculators map[string]Calculator
	rules       map[string]domain.JurisdictionRules
}

// NewRegistry builds calculators for every jurisdiction in the rule set
func NewRegistry(rules *domain.RegulatoryConfig) *Registry {
	r := &Registry{
		calculators: map[string]Calculator{},
		rules:       map[string]domain.JurisdictionRules{},
	}
	if rules == nil {
		return r
	}
	for code, j := range rules.Jurisdictions {
		r.Register(code, j)
	}
	return r
}

// Register adds or replaces a jurisdiction
func (r *Registry) Register(code string, j domain.JurisdictionRules) {
	code = normalizeCode(code)
	r.rules[code] = j
	switch j.Kind {
	case domain.JurisdictionData:
		r.calculators[code] = NewDataDriven(code, j)
	default:
		r.calculators[code] = NewFlatRate(code, j.StateRatePct, j.LocalRatePct)
	}
}

// Lookup returns the calculator registered for a code
func (r *Registry) Lookup(code string) (Calculator, bool) {
	c, ok := r.calculators[normalizeCode(code)]
	return c, ok
}

// Resolve returns the registered calculator, or a flat-rate calculator using
// the supplied fallback rates when the code is unknown. It never fails.
func (r *Registry) Resolve(code string, fallbackStatePct, fallbackLocalPct decimal.Decimal) Calculator {
	if c, ok := r.Lookup(code); ok {
		return c
	}
	return NewFlatRate(normalizeCode(code), fallbackStatePct, fallbackLocalPct)
}

// Jurisdiction describes a registered jurisdiction for listings
type Jurisdiction struct {
	Code         string                  `json:"code"`
	Name         string                  `json:"name"`
	Kind         domain.JurisdictionKind `json:"kind"`
	StateRatePct decimal.Decimal         `json:"state_rate_pct"`
	LocalRatePct decimal.Decimal         `json:"local_rate_pct"`
	Localities   []string                `json:"localities,omitempty"`
}

// Jurisdictions lists registered jurisdictions sorted by code
func (r *Registry) Jurisdictions() []Jurisdiction {
	out := make([]Jurisdiction, 0, len(r.rules))
	for code, j := range r.rules {
		locs := make([]string, 0, len(j.Localities))
		for name := range j.Localities {
			locs = append(locs, name)
		}
		sort.Strings(locs)
		kind := j.Kind
		if kind == "" {
			kind = domain.JurisdictionFlat
		}
		out = append(out, Jurisdiction{
			Code:         code,
			Name:         j.Name,
			Kind:         kind,
			StateRatePct: j.StateRatePct,
			LocalRatePct: j.LocalRatePct,
			Localities:   locs,
		})
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Code < out[k].Code })
	return out
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
