package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/database"
	apperrors "github.com/ZanzyTHEbar/mbti-decision-sim/internal/errors"
	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/factors"
	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/mbti"
	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/monitoring"
	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/simulation"
)

// inputFlags binds one float flag per factor plus --preset
type inputFlags struct {
	preset string
	values map[factors.FactorKey]*float64
}

func flagName(k factors.FactorKey) string {
	return strings.ReplaceAll(string(k), "_", "-")
}

func addInputFlags(cmd *cobra.Command, keys []factors.FactorKey) *inputFlags {
	f := &inputFlags{values: make(map[factors.FactorKey]*float64, len(keys))}
	cmd.Flags().StringVar(&f.preset, "preset", "", "start from a named preset scenario")
	defaults := factors.Default()
	for _, k := range keys {
		info, _ := factors.InfoFor(k)
		v := new(float64)
		cmd.Flags().Float64Var(v, flagName(k), defaults.Value(k), info.Label+" in [0, 1]")
		f.values[k] = v
	}
	return f
}

// resolve starts from the preset (or the defaults) and applies explicitly set flags
func (f *inputFlags) resolve(cmd *cobra.Command) (factors.Inputs, error) {
	inputs := factors.Default()
	if f.preset != "" {
		scenario, err := factors.Preset(f.preset)
		if err != nil {
			return factors.Inputs{}, err
		}
		inputs = scenario.Inputs
	}
	for k, v := range f.values {
		if cmd.Flags().Changed(flagName(k)) {
			inputs = inputs.With(k, *v)
		}
	}
	if err := inputs.ValidateInputs(); err != nil {
		return factors.Inputs{}, apperrors.NewValidationError("invalid factor inputs", err)
	}
	return inputs, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "mbtisim",
		Short:         "Score decision scenarios against the sixteen MBTI archetypes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger := monitoring.NewLoggerWithWriter(cmd.ErrOrStderr(), monitoring.ParseLevel(logLevel))
			slog.SetDefault(logger.Logger)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newSimulateCmd(),
		newPublicCmd(),
		newTeamCmd(),
		newTypesCmd(),
		newDescribeCmd(),
		newPresetsCmd(),
	)
	return root
}

func newSimulateCmd() *cobra.Command {
	var (
		asJSON  bool
		save    bool
		dataDir string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run every archetype against a scenario",
	}
	flags := addInputFlags(cmd, factors.Keys())
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&save, "save", false, "record the run in the history database")
	cmd.Flags().StringVar(&dataDir, "data-dir", "./data", "directory holding the history database")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		inputs, err := flags.resolve(cmd)
		if err != nil {
			return err
		}
		report := simulation.Run(inputs)

		if save {
			run, err := saveRun(cmd.Context(), dataDir, flags.preset, report)
			if err != nil {
				return err
			}
			slog.Info("Run saved", "id", run.ID, "duration_ms", time.Since(start).Milliseconds())
			if !asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), styleGray.Render("saved run "+run.ID))
			}
		}

		if asJSON {
			return writeJSON(cmd.OutOrStdout(), report)
		}
		printReport(cmd.OutOrStdout(), report)
		return nil
	}
	return cmd
}

func saveRun(ctx context.Context, dataDir, preset string, report simulation.Report) (*database.Run, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	db, err := database.NewDB(ctx, dataDir)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open run history", err)
	}
	defer apperrors.SafeClose(db, "database")

	history := database.NewHistoryService(database.NewRepository(db))
	run, err := history.Record(ctx, database.SourceCLI, preset, report)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to save run", err)
	}
	return run, nil
}

func printResults(w io.Writer, results []simulation.Result) {
	for _, r := range results {
		fmt.Fprintf(w, "  %-5s %s  %s\n", r.Name, formatScore(r.Score), colored(r.Decision, r.Color))
	}
}

func printMajority(w io.Writer, m simulation.Majority) {
	labels := make([]string, 0, len(m.Counts))
	for label := range m.Counts {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if m.Counts[labels[i]] != m.Counts[labels[j]] {
			return m.Counts[labels[i]] > m.Counts[labels[j]]
		}
		return labels[i] < labels[j]
	})

	fmt.Fprintf(w, "%s %s\n", styleBold.Render("Majority:"), colored(m.Decision, m.Color))
	for _, label := range labels {
		fmt.Fprintf(w, "  %s %d\n", styleGray.Render(label+":"), m.Counts[label])
	}
}

func printPublic(w io.Writer, p simulation.PublicOpinion) {
	fmt.Fprintf(w, "%s score %s, most likely %s\n",
		styleBold.Render("Public opinion:"), formatScore(p.Score), colored(p.MostLikely, p.Color))
	for _, c := range simulation.Categories() {
		d := c.Decision()
		fmt.Fprintf(w, "  %-26s %5.1f%%\n", d.Text, p.Probabilities.Of(c)*100)
	}
}

func printReport(w io.Writer, report simulation.Report) {
	fmt.Fprintln(w, styleHeader.Render("Archetypes"))
	printResults(w, report.Results)
	fmt.Fprintln(w)
	printMajority(w, report.Majority)
	fmt.Fprintln(w)
	printPublic(w, report.PublicOpinion)
}

func newPublicCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "public",
		Short: "Show the public opinion distribution for a scenario",
	}
	flags := addInputFlags(cmd, factors.Keys())
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		inputs, err := flags.resolve(cmd)
		if err != nil {
			return err
		}
		opinion := simulation.CalculatePublicOpinion(inputs)
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), opinion)
		}
		printPublic(cmd.OutOrStdout(), opinion)
		return nil
	}
	return cmd
}

func newTeamCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "team",
		Short: "Run the four-type team roster on the five legacy factors",
	}
	flags := addInputFlags(cmd, factors.LegacyKeys())
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		inputs, err := flags.resolve(cmd)
		if err != nil {
			return err
		}
		report := simulation.RunTeam(inputs.Legacy())
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), report)
		}
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, styleHeader.Render("Team"))
		printResults(w, report.Results)
		fmt.Fprintln(w)
		printMajority(w, report.Majority)
		return nil
	}
	return cmd
}

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the archetype codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			descriptions := mbti.Descriptions()
			for _, typ := range mbti.AllTypes() {
				d := descriptions[typ]
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", colored(typ, d.Color), d.Name)
			}
			return nil
		},
	}
}

func newDescribeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "describe TYPE",
		Short: "Show an archetype's weights and description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := mbti.Create(strings.ToUpper(args[0]))
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), a)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s  %s\n", colored(a.Type, a.Description.Color), styleBold.Render(a.Description.Name))
			fmt.Fprintln(w, a.Description.Description)
			fmt.Fprintln(w)
			fmt.Fprintln(w, styleHeader.Render("Weights"))
			for _, k := range factors.Keys() {
				info, _ := factors.InfoFor(k)
				fmt.Fprintf(w, "  %-22s %+.2f\n", info.Label, a.Weights.Value(k))
			}
			sf := a.Description.ScientificFactors
			fmt.Fprintln(w)
			fmt.Fprintf(w, "%s %s / %s\n", styleGray.Render("functions:"), sf.DominantFunction, sf.AuxiliaryFunction)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the archetype as JSON")
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the preset scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range factors.Presets() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n  %s\n",
					styleBold.Render(p.Name), p.Title, styleGray.Render(p.Description))
			}
			return nil
		},
	}
}
