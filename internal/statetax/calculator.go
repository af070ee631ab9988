// Package statetax computes state and local income tax. Every jurisdiction is
// served through the same Calculator contract so the projection engine never
// needs to know which variant it is talking to.
package statetax

import (
	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/shopspring/decimal"
)

// SeniorAge is the age at which a filer counts as a senior for state purposes
const SeniorAge = 65

// Input is the uniform argument set passed to every state calculator
type Input struct {
	Year           int
	Ages           []int
	FilingStatus   domain.FilingStatus
	TaxableIncome  decimal.Decimal // federal taxable income
	AGI            decimal.Decimal
	County         string
	SeniorCreditOn bool
}

// Seniors counts the household members aged 65 or older
func (in Input) Seniors() int {
	n := 0
	for _, a := range in.Ages {
		if a >= SeniorAge {
			n++
		}
	}
	return n
}

// Result splits the liability into the state and local portions
type Result struct {
	StateTax decimal.Decimal `json:"state_tax"`
	LocalTax decimal.Decimal `json:"local_tax"`
}

// Total returns state plus local tax
func (r Result) Total() decimal.Decimal {
	return r.StateTax.Add(r.LocalTax)
}

// Calculator computes state and local tax for one jurisdiction
type Calculator interface {
	Name() string
	Compute(in Input) Result
}
