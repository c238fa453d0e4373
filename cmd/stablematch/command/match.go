package command

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/limaJavier/stablematching/pkg/matcher"
	"github.com/limaJavier/stablematching/pkg/model"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var validFormats = []string{"text", "json"}

func NewMatchCmd(options *GlobalOptions) *cobra.Command {
	const (
		matchUse   = "match [--file path]"
		matchShort = "compute the hospital-optimal stable matching."
		matchLong  = "compute the hospital-optimal stable matching with hospital-proposing Gale-Shapley. Preferences are read from --file or the standard input; the matching is written to the standard output as one \"<hospital> <student>\" line per hospital."
	)

	cmd := &cobra.Command{
		Use:   matchUse,
		Short: matchShort,
		Long:  matchLong,
		Args:  cobra.NoArgs,
	}

	var opts matchOptions
	opts.AddFlags(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := options.Config()
		if err != nil {
			return err
		}
		log := options.Logger(cmd, cfg)

		strategy, err := matcher.ParseStrategy(lo.Ternary(opts.Strategy != "", opts.Strategy, cfg.Strategy))
		if err != nil {
			return err
		}
		format := strings.ToLower(lo.Ternary(opts.Format != "", opts.Format, cfg.Format))
		if !slices.Contains(validFormats, format) {
			return fmt.Errorf("%v is not a valid format: allowed values are %v", format, validFormats)
		}

		preferences, err := readPreferences(cmd.InOrStdin(), opts.File, format)
		if err != nil {
			return reportInvalidInput(cmd, err)
		}

		matching, statistics, err := matcher.NewGaleShapleyMatcher(strategy, matcher.WithLogger(log)).Match(preferences)
		if err != nil {
			return reportInvalidInput(cmd, err)
		}

		if opts.Stats {
			fmt.Fprintf(cmd.ErrOrStderr(), "Proposals: %v\nRejections: %v\nDisplacements: %v\n", statistics.Proposals, statistics.Rejections, statistics.Displacements)
		}
		return model.WriteMatching(cmd.OutOrStdout(), matching)
	}

	return cmd
}

type matchOptions struct {
	File     string
	Format   string
	Strategy string
	Stats    bool
}

func (o *matchOptions) AddFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.File, "file", o.File, "Path to the preferences file; if empty, they are read from the standard input")
	flags.StringVar(&o.Format, "format", o.Format, `Preferences format: "text" or "json"; defaults to the config's format`)
	flags.StringVar(&o.Strategy, "strategy", o.Strategy, `Free-hospital worklist: "queue" or "stack"; defaults to the config's strategy`)
	flags.BoolVar(&o.Stats, "stats", o.Stats, "Write proposal statistics to the standard error")
}

func readPreferences(in io.Reader, file, format string) (model.Preferences, error) {
	if file != "" {
		fd, err := os.Open(file)
		if err != nil {
			return model.Preferences{}, fmt.Errorf("cannot open preferences file: %w", err)
		}
		defer fd.Close()
		in = fd
	}

	if format == "json" {
		return model.ParsePreferencesJson(in)
	}
	return model.ParsePreferences(in)
}

// reportInvalidInput marks malformed preferences on the error stream before handing the error to cobra
func reportInvalidInput(cmd *cobra.Command, err error) error {
	if errors.Is(err, model.ErrInvalidInput) {
		fmt.Fprintln(cmd.ErrOrStderr(), "INVALID INPUT")
	}
	return err
}
