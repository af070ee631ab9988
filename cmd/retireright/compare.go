package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/retireright/internal/compare"
	"github.com/rgehrsitz/retireright/internal/transform"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare a household against alternative strategies",
		Long: `Compare the configuration as loaded against built-in templates or custom transforms.

Examples:
  retireright compare household.yaml --with delay_ss_70,weighted_even
  retireright compare household.yaml --transform "set_state:state=FL" --format csv
  retireright compare household.yaml --transform "delay_ss:person=spouse,age=70+set_return:rate=0.04"
  retireright compare --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			comparer := compare.NewCompareEngine(engine)

			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(comparer.TemplateRegistry))
				return nil
			}
			if len(args) == 0 {
				return errors.New("input file required for comparison (use --list-templates to see available templates)")
			}

			withStr, _ := cmd.Flags().GetString("with")
			transforms, _ := cmd.Flags().GetStringArray("transform")
			specs := append(transform.ParseTemplateList(withStr), transforms...)
			if len(specs) == 0 {
				return errors.New("--with or --transform is required to name at least one alternative")
			}

			cfg, err := loadConfig(engine, args[0])
			if err != nil {
				return err
			}
			compSet, err := comparer.Compare(cmd.Context(), cfg, specs)
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			compSet.ConfigPath = args[0]

			format, _ := cmd.Flags().GetString("format")
			out, err := compare.FormatComparison(compSet, format)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	cmd.Flags().StringArray("transform", nil, "Transform chain to compare, e.g. \"set_state:state=FL\" (repeatable)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	cmd.Flags().Bool("list-templates", false, "List all available scenario templates")
	return cmd
}
