package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Balances grow at each account's stated return after the year's withdrawal",
	"Social Security COLA compounds from the first claim year",
	"Up to 85% of Social Security is taxable under provisional income thresholds",
	"Tax brackets and deductions are held at the rules version's levels (no indexing)",
	"Dividends are taxed as ordinary income; realized gains use the long-term rates",
	"Required minimum distributions use the Uniform Lifetime Table when enforced",
}
