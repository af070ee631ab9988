package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/retireright/internal/calculation"
	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/rgehrsitz/retireright/internal/transform"
	"golang.org/x/sync/errgroup"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.ProjectionEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.ProjectionEngine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewProjectionEngine(nil, nil)
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// Alternative is one named variation of the base configuration
type Alternative struct {
	Name        string
	Description string
	Transforms  []transform.ScenarioTransform
}

// ResolveAlternative turns a template name or a transform chain
// ("delay_ss:age=70+set_state:state=FL") into an Alternative
func (ce *CompareEngine) ResolveAlternative(spec string) (Alternative, error) {
	spec = strings.TrimSpace(spec)
	if tmpl, ok := ce.TemplateRegistry.Get(spec); ok {
		return Alternative{Name: tmpl.Name, Description: tmpl.Description, Transforms: tmpl.Transforms}, nil
	}
	if !strings.Contains(spec, ":") {
		return Alternative{}, fmt.Errorf("template %s not found", spec)
	}

	chain, err := ce.TransformRegistry.ParseTransformChain(spec)
	if err != nil {
		return Alternative{}, err
	}
	descs := make([]string, 0, len(chain))
	for _, t := range chain {
		descs = append(descs, t.Description())
	}
	return Alternative{Name: spec, Description: strings.Join(descs, "; "), Transforms: chain}, nil
}

// Compare resolves each spec and compares it against the base configuration
func (ce *CompareEngine) Compare(ctx context.Context, base *domain.Configuration, specs []string) (*ComparisonSet, error) {
	alternatives := make([]Alternative, 0, len(specs))
	for _, spec := range specs {
		alt, err := ce.ResolveAlternative(spec)
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, alt)
	}
	return ce.CompareAlternatives(ctx, base, alternatives)
}

// CompareAlternatives projects the base and every alternative concurrently.
// Result order follows the alternatives slice. The first failure cancels the
// remaining runs.
func (ce *CompareEngine) CompareAlternatives(ctx context.Context, base *domain.Configuration, alternatives []Alternative) (*ComparisonSet, error) {
	if base == nil {
		return nil, fmt.Errorf("base configuration cannot be nil")
	}

	// Transforms run up front so a bad alternative fails before any projection starts
	configs := make([]*domain.Configuration, len(alternatives))
	for i, alt := range alternatives {
		cfg, err := transform.ApplyTransforms(base, alt.Transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", alt.Name, err)
		}
		configs[i] = cfg
	}

	tables := make([]*domain.ProjectionTable, len(alternatives))
	var baseTable *domain.ProjectionTable

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := ce.CalcEngine.Run(gctx, base)
		if err != nil {
			return fmt.Errorf("failed to calculate base scenario: %w", err)
		}
		baseTable = t
		return nil
	})
	for i := range alternatives {
		g.Go(func() error {
			t, err := ce.CalcEngine.Run(gctx, configs[i])
			if err != nil {
				return fmt.Errorf("failed to calculate scenario %s: %w", alternatives[i].Name, err)
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	baseResult := ce.MetricsCalculator.CalculateMetrics("base", baseTable)
	baseResult.Description = "Configuration as loaded"

	results := make([]ComparisonResult, 0, len(alternatives))
	for i, alt := range alternatives {
		r := ce.MetricsCalculator.CalculateMetrics(alt.Name, tables[i])
		r.Description = alt.Description
		results = append(results, ce.MetricsCalculator.CalculateComparison(r, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseResult.ScenarioName,
		RulesVersion:       baseTable.RulesVersion,
		BaseResult:         &baseResult,
		AlternativeResults: results,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
