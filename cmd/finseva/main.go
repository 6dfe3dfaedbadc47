package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finseva/finseva/internal/calculation"
	"github.com/finseva/finseva/internal/compare"
	"github.com/finseva/finseva/internal/config"
	"github.com/finseva/finseva/internal/domain"
	"github.com/finseva/finseva/internal/identity"
	"github.com/finseva/finseva/internal/money"
	"github.com/finseva/finseva/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "finseva %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" && verbose {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var (
	configPath string
	rulesPath  string
	verbose    bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "finseva",
		Short: "Indian income tax regime calculator",
		Long:  "Calculate income tax under the old and new regimes, compare them, and serve the FinSeva API",
		// main prints the error once
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the application config file")
	root.PersistentFlags().StringVar(&rulesPath, "rules", "", "Path to a tax rules file (overrides the config file's rules)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	root.AddCommand(compareCmd())
	root.AddCommand(calculateCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(rulesCmd())
	root.AddCommand(tokenCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())
	return root
}

// loadConfig reads the config file when given, then applies the environment
func loadConfig() (*config.AppConfig, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.NewInputParser().LoadFromFile(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

// loadRules picks the rules file, then the config's rules, then the built-in table
func loadRules(cfg *config.AppConfig) (domain.TaxRules, error) {
	if rulesPath != "" {
		return config.NewInputParser().LoadTaxRules(rulesPath)
	}
	return cfg.Rules(), nil
}

func buildComparator() (*compare.RegimeComparator, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	rules, err := loadRules(cfg)
	if err != nil {
		return nil, err
	}
	return compare.NewRegimeComparator(calculation.NewRegimeTaxCalculator(rules)), nil
}

func parseAmountFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	amount, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(raw), ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %q is not a number", name, raw)
	}
	return amount, nil
}

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the old and new tax regimes",
		Long:  "Compute tax under both regimes for the same income and recommend the cheaper one. Ties favour the new regime.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			income, err := parseAmountFlag(cmd, "income")
			if err != nil {
				return err
			}
			deductions, err := parseAmountFlag(cmd, "deductions")
			if err != nil {
				return err
			}
			if err := calculation.ValidateInput(domain.TaxInput{Income: income, Deductions: deductions, Regime: domain.RegimeOld}); err != nil {
				return err
			}

			comparator, err := buildComparator()
			if err != nil {
				return err
			}

			report := comparator.Report(income, deductions)

			format, _ := cmd.Flags().GetString("format")
			if format == "compact" {
				fmt.Fprintln(cmd.OutOrStdout(), (&compare.TableFormatter{}).FormatCompact(report))
				return nil
			}

			f := compare.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("unknown format %q (expected table, compact, json or csv)", format)
			}
			out, err := f.Format(report)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringP("income", "i", "0", "Annual gross income")
	cmd.Flags().StringP("deductions", "d", "0", "Total deductions claimed under the old regime")
	cmd.Flags().StringP("format", "f", "table", "Output format: table, compact, json, csv")
	_ = cmd.MarkFlagRequired("income")
	return cmd
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate tax under a single regime",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			income, err := parseAmountFlag(cmd, "income")
			if err != nil {
				return err
			}
			deductions, err := parseAmountFlag(cmd, "deductions")
			if err != nil {
				return err
			}
			regimeFlag, _ := cmd.Flags().GetString("regime")
			regime, err := domain.ParseRegime(regimeFlag)
			if err != nil {
				return err
			}

			input := domain.TaxInput{Income: income, Deductions: deductions, Regime: regime}
			if err := calculation.ValidateInput(input); err != nil {
				return err
			}

			comparator, err := buildComparator()
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			if format == "console" && verbose {
				format = "verbose"
			}
			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("unknown format %q (expected console, verbose, json, csv or html)", format)
			}
			data, err := f.Format(output.NewCalculation(comparator.Calculator, input))
			if err != nil {
				return err
			}
			_, _ = cmd.OutOrStdout().Write(data)
			return nil
		},
	}

	cmd.Flags().StringP("income", "i", "0", "Annual gross income")
	cmd.Flags().StringP("deductions", "d", "0", "Total deductions (ignored by the new regime)")
	cmd.Flags().StringP("regime", "r", "new", "Regime: old or new")
	cmd.Flags().StringP("format", "f", "console", "Output format: console, verbose, json, csv, html")
	_ = cmd.MarkFlagRequired("income")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Validate an application config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ %s is valid (FY %s, %d slabs)\n",
				args[0], cfg.Rules().FinancialYear, len(cfg.Rules().Slabs))
			return nil
		},
	}
}

func rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the slab table in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			comparator, err := buildComparator()
			if err != nil {
				return err
			}
			rules := comparator.Calculator.Rules()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Financial Year: %s\n", rules.FinancialYear)
			from := decimal.Zero
			for _, slab := range rules.Slabs {
				rate := output.FormatPercentage(slab.Rate)
				if slab.Unbounded() {
					fmt.Fprintf(out, "  above %-14s %s\n", money.Rupees(from), rate)
					break
				}
				fmt.Fprintf(out, "  %s - %-12s %s\n", money.Rupees(from), money.Rupees(*slab.UpTo), rate)
				from = *slab.UpTo
			}
			fmt.Fprintf(out, "Cess: %s\n", output.FormatPercentage(rules.CessRate))
			fmt.Fprintf(out, "New regime standard deduction: %s\n", money.Rupees(rules.NewRegimeStandardDeduction))
			return nil
		},
	}
}

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token [user-id]",
		Short: "Issue a development bearer token signed with JWT_SECRET",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			email, _ := cmd.Flags().GetString("email")
			ttl, _ := cmd.Flags().GetDuration("ttl")

			token, err := identity.NewVerifier(cfg.Auth.JWTSecret).Issue(args[0], email, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().String("email", "", "Email claim")
	cmd.Flags().Duration("ttl", 24*time.Hour, "Token lifetime")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
