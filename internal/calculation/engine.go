package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/retireright/internal/config"
	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/rgehrsitz/retireright/internal/sequencing"
	"github.com/rgehrsitz/retireright/internal/statetax"
	"github.com/rgehrsitz/retireright/pkg/dateutil"
	"github.com/rgehrsitz/retireright/pkg/money"
	"github.com/shopspring/decimal"
)

var half = decimal.NewFromFloat(0.5)

// ProjectionEngine runs the annual projection loop
type ProjectionEngine struct {
	Rules       *domain.RegulatoryConfig
	TaxCalc     *FederalTaxCalculator
	RMDCalc     *RMDCalculator
	StateTax    *statetax.Registry
	Conversions ConversionPolicy
	Logger      Logger
}

// NewProjectionEngine creates an engine for a rule set. A nil rule set selects
// the embedded defaults and a nil registry is built from the rule set.
func NewProjectionEngine(rules *domain.RegulatoryConfig, registry *statetax.Registry) *ProjectionEngine {
	if rules == nil {
		rules = config.MustDefaultRegulatory()
	}
	if registry == nil {
		registry = statetax.NewRegistry(rules)
	}
	return &ProjectionEngine{
		Rules:       rules,
		TaxCalc:     NewFederalTaxCalculator(rules),
		RMDCalc:     NewRMDCalculator(rules.RMD),
		StateTax:    registry,
		Conversions: NoopConversionPolicy{},
		Logger:      NopLogger{},
	}
}

// SetLogger sets the logger for the engine. Passing nil installs a no-op logger.
func (pe *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

// SetConversionPolicy installs the Roth conversion hook. Passing nil restores the no-op policy.
func (pe *ProjectionEngine) SetConversionPolicy(p ConversionPolicy) {
	if p == nil {
		pe.Conversions = NoopConversionPolicy{}
		return
	}
	pe.Conversions = p
}

// person is a household member's fixed data for a run
type person struct {
	birthYear int
	claim     *Claimant
}

// runState is the mutable state carried between projection years
type runState struct {
	cfg      *domain.Configuration
	primary  person
	spouse   *person
	balances map[string]decimal.Decimal
	strategy sequencing.SequencingStrategy
	state    statetax.Calculator
}

// Run validates the configuration and projects every year from start to end.
// The configuration is never modified. Cancelling ctx stops the run between
// years and returns the context error without partial rows.
func (pe *ProjectionEngine) Run(ctx context.Context, cfg *domain.Configuration) (*domain.ProjectionTable, error) {
	prepared, err := config.Prepare(cfg, pe.Rules)
	if err != nil {
		return nil, err
	}

	st, err := pe.newRunState(prepared)
	if err != nil {
		return nil, err
	}

	in := prepared.Inputs
	table := &domain.ProjectionTable{
		RulesVersion: pe.Rules.Metadata.Version,
		AccountNames: prepared.AccountNames(),
		Rows:         make([]domain.ProjectionRow, 0, in.EndYear-in.StartYear+1),
	}

	pe.Logger.Infof("projection %d-%d: %d accounts, %s withdrawals, state %s via %s",
		in.StartYear, in.EndYear, len(in.Accounts), st.strategy.Name(), prepared.Household.State, st.state.Name())

	for year := in.StartYear; year <= in.EndYear; year++ {
		if err := ctx.Err(); err != nil {
			pe.Logger.Warnf("projection cancelled before %d: %v", year, err)
			return nil, fmt.Errorf("projection cancelled before %d: %w", year, err)
		}
		table.Rows = append(table.Rows, pe.projectYear(st, year))
	}
	return table, nil
}

func (pe *ProjectionEngine) newRunState(cfg *domain.Configuration) (*runState, error) {
	h := cfg.Household
	in := cfg.Inputs
	ss := in.SocialSecurity

	pdob, err := dateutil.ParseDate(h.PrimaryBirthDate)
	if err != nil {
		return nil, domain.NewValidationError("household.primary_dob", "must be a YYYY-MM-DD date")
	}
	primaryClaim := NewClaimant(ss.Primary.FRAMonthly, ss.Primary.ClaimAge, ss.Primary.StartMonth, pdob.Year(), in.StartYear)
	st := &runState{
		cfg:      cfg,
		primary:  person{birthYear: pdob.Year(), claim: &primaryClaim},
		balances: make(map[string]decimal.Decimal, len(in.Accounts)),
		strategy: sequencing.CreateStrategy(in.Withdrawals),
		state:    pe.StateTax.Resolve(h.State, in.StateRatePct, in.LocalRatePct),
	}

	if h.HasSpouse() {
		sdob, err := dateutil.ParseDate(h.SpouseBirthDate)
		if err != nil {
			return nil, domain.NewValidationError("household.spouse_dob", "must be a YYYY-MM-DD date")
		}
		sp := &person{birthYear: sdob.Year()}
		if ss.Spouse != nil {
			c := NewClaimant(ss.Spouse.FRAMonthly, ss.Spouse.ClaimAge, ss.Spouse.StartMonth, sdob.Year(), in.StartYear)
			sp.claim = &c
		}
		st.spouse = sp
	}

	if _, ok := pe.StateTax.Lookup(h.State); !ok {
		pe.Logger.Warnf("no tax table for jurisdiction %q; using flat %s%% state, %s%% local",
			h.State, in.StateRatePct.String(), in.LocalRatePct.String())
	}

	for _, a := range in.Accounts {
		st.balances[a.Name] = a.StartBalance
	}
	return st, nil
}

// projectYear runs the per-year pipeline and advances the carried balances
func (pe *ProjectionEngine) projectYear(st *runState, year int) domain.ProjectionRow {
	cfg := st.cfg
	in := cfg.Inputs
	status := cfg.Household.FilingStatus
	whole := cfg.Assumptions.RoundWhole

	// 1. Ages
	primaryAge := dateutil.AgeInYear(st.primary.birthYear, in.StartYear, year)
	ages := []int{primaryAge}
	var spouseAge *int
	if st.spouse != nil {
		a := dateutil.AgeInYear(st.spouse.birthYear, in.StartYear, year)
		spouseAge = &a
		ages = append(ages, a)
	}

	// 2. Social Security
	ssTotal := st.primary.claim.BenefitFor(year, in.SocialSecurity.COLA)
	if st.spouse != nil && st.spouse.claim != nil {
		ssTotal = ssTotal.Add(st.spouse.claim.BenefitFor(year, in.SocialSecurity.COLA))
	}

	// Conversion hook, before withdrawals
	conversionIncome := pe.applyConversions(st, year)

	// 3. Withdrawals
	pendingRMD, rmdTotal := pe.pendingRMDs(st, year)
	sources := sequencing.CreateWithdrawalSources(in.Accounts, st.balances, pendingRMD)
	plan := st.strategy.Plan(sources, sequencing.CreateStrategyContext(year, in.Withdrawals, in.EnforceRMD))
	for _, note := range plan.Notes {
		pe.Logger.Debugf("%d withdrawals: %s", year, note)
	}

	// 4. Withdraw, then grow and classify each account
	ordinary := conversionIncome.Add(plan.OrdinarySourced)
	dividends := decimal.Zero
	realized := decimal.Zero
	withdrawals := make(map[string]decimal.Decimal, len(in.Accounts))
	balances := make(map[string]decimal.Decimal, len(in.Accounts))
	for _, a := range in.Accounts {
		w := decimal.Min(plan.AmountFor(a.Name), st.balances[a.Name])
		post := money.NonNegative(st.balances[a.Name].Sub(w))
		growth := post.Mul(a.ReturnRate)
		ending := post.Add(growth)

		if a.TaxClass == domain.TaxClassBrokerage {
			dividends = dividends.Add(post.Mul(a.DividendYield))
			gain := money.NonNegative(growth).Mul(a.RealizeFraction)
			realized = realized.Add(gain)
			ending = ending.Sub(gain)
		}

		st.balances[a.Name] = money.NonNegative(ending)
		withdrawals[a.Name] = money.Round(w, whole)
		balances[a.Name] = money.Round(st.balances[a.Name], whole)
	}

	// 5. Income aggregation
	ordinary = ordinary.Add(dividends)
	totalIncome := money.Sum(ordinary, ssTotal, realized)

	// 6. Provisional income and taxable Social Security
	provisional := ordinary.Add(ssTotal.Mul(half))
	ssTaxable := pe.TaxCalc.SocialSecurityTaxable(ssTotal, provisional, status)

	// 7. Deduction and tax bases
	seniors := pe.TaxCalc.CountSeniors(ages...)
	deduction := pe.TaxCalc.StandardDeduction(status, seniors, in.StandardDeductionOverride)
	bases := SplitTaxBases(ordinary, realized, ssTaxable, deduction)

	// 8. Taxes
	fedOrdinary, bracket := pe.TaxCalc.OrdinaryTax(bases.Ordinary, status)
	fedGains := pe.TaxCalc.CapitalGainsTax(bases.Gains)
	stateRes := st.state.Compute(statetax.Input{
		Year:           year,
		Ages:           ages,
		FilingStatus:   status,
		TaxableIncome:  bases.Taxable,
		AGI:            bases.AGI,
		County:         cfg.Household.County,
		SeniorCreditOn: in.SeniorCredit(),
	})
	federal := fedOrdinary.Add(fedGains)
	totalTax := federal.Add(stateRes.Total())
	effective := decimal.Zero
	if totalIncome.IsPositive() {
		effective = totalTax.Div(totalIncome).Round(4)
	}

	pe.Logger.Debugf("%d: ss=%s ordinary=%s gains=%s taxable=%s federal=%s state=%s",
		year, ssTotal.StringFixed(2), ordinary.StringFixed(2), realized.StringFixed(2),
		bases.Taxable.StringFixed(2), federal.StringFixed(2), stateRes.Total().StringFixed(2))

	// 9. Row
	return domain.ProjectionRow{
		Year:              year,
		PrimaryAge:        primaryAge,
		SpouseAge:         spouseAge,
		SocialSecurity:    money.Round(ssTotal, whole),
		SSTaxable:         money.Round(ssTaxable, whole),
		OrdinaryIncome:    money.Round(ordinary, whole),
		Dividends:         money.Round(dividends, whole),
		RealizedGains:     money.Round(realized, whole),
		TotalIncome:       money.Round(totalIncome, whole),
		StandardDeduction: money.Round(deduction, whole),
		TaxableIncome:     money.Round(bases.Taxable, whole),
		MarginalBracket:   bracket,
		FederalOrdinary:   money.Round(fedOrdinary, whole),
		FederalGains:      money.Round(fedGains, whole),
		FederalTax:        money.Round(federal, whole),
		StateTax:          money.Round(stateRes.Total(), whole),
		LocalTax:          money.Round(stateRes.LocalTax, whole),
		TotalTax:          money.Round(totalTax, whole),
		EffectiveRate:     effective,
		RMDRequired:       money.Round(rmdTotal, whole),
		Withdrawals:       withdrawals,
		Balances:          balances,
	}
}

// pendingRMDs sizes this year's required distribution for each pre-tax account
// from its balance carried in from last year
func (pe *ProjectionEngine) pendingRMDs(st *runState, year int) (map[string]decimal.Decimal, decimal.Decimal) {
	in := st.cfg.Inputs
	if !in.EnforceRMD {
		return nil, decimal.Zero
	}
	out := map[string]decimal.Decimal{}
	total := decimal.Zero
	for _, a := range in.Accounts {
		if a.TaxClass != domain.TaxClassPreTax {
			continue
		}
		owner := st.primary
		if a.OwnedBySpouse() && st.spouse != nil {
			owner = *st.spouse
		}
		age := dateutil.AgeInYear(owner.birthYear, in.StartYear, year)
		rmd := pe.RMDCalc.RequiredMinimum(st.balances[a.Name], owner.birthYear, age)
		if rmd.IsPositive() {
			out[a.Name] = rmd
			total = total.Add(rmd)
		}
	}
	return out, total
}
