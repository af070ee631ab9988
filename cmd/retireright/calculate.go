package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/rgehrsitz/retireright/internal/output"
	"github.com/rgehrsitz/retireright/internal/store"
)

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Run a projection and print the year-by-year table",
		Long: `Run a projection for a household configuration (.yaml, .json or .hjson).

Examples:
  retireright calculate household.yaml
  retireright calculate household.yaml --format csv > projection.csv
  retireright calculate household.yaml --format html --write
  retireright calculate household.yaml --save --name "baseline"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(engine, args[0])
			if err != nil {
				return err
			}
			table, err := engine.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("unsupported report format %q. Try one of: %s", format, strings.Join(output.AvailableFormatterNames(), ", "))
			}

			if write, _ := cmd.Flags().GetBool("write"); write {
				name, err := output.WriteFormatted(f, table, output.Extension(format))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", name)
			} else {
				data, err := f.Format(table)
				if err != nil {
					return err
				}
				cmd.OutOrStdout().Write(data)
			}

			if save, _ := cmd.Flags().GetBool("save"); save {
				name, _ := cmd.Flags().GetString("name")
				return saveRun(cmd, name, cfg, table)
			}
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().Bool("write", false, "Write the report to a timestamped file instead of stdout")
	cmd.Flags().Bool("save", false, "Store the run in the database ("+envDatabaseURL+" or "+envDB+")")
	cmd.Flags().String("name", "", "Name for a saved run")
	return cmd
}

func saveRun(cmd *cobra.Command, name string, cfg *domain.Configuration, table *domain.ProjectionTable) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	run := &store.SavedRun{Name: name, Config: cfg, Table: table}
	if err := st.SaveRun(cmd.Context(), run); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Saved run %s\n", run.ID)
	return nil
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(engine, args[0])
			if err != nil {
				var verr *domain.ValidationError
				if errors.As(err, &verr) {
					fmt.Fprintf(cmd.OutOrStdout(), "Invalid field %s: %s\n", verr.Field, verr.Constraint)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration is valid: %s, %d-%d, %d accounts\n",
				cfg.Household.FilingStatus, cfg.Inputs.StartYear, cfg.Inputs.EndYear, len(cfg.Inputs.Accounts))
			return nil
		},
	}
}
