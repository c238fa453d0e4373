package command

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/limaJavier/stablematching/pkg/model"
	"github.com/limaJavier/stablematching/pkg/verifier"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func NewVerifyCmd(options *GlobalOptions) *cobra.Command {
	const (
		verifyUse   = "verify preferences-file [--matching path]"
		verifyShort = "certify a candidate matching."
		verifyLong  = "certify that a candidate matching, read from the standard input (or --matching), is a perfect matching with no blocking pair under the preferences in preferences-file. Prints exactly one verdict line: VALID STABLE, INVALID (<reason>) or UNSTABLE (Blocking pair: Hospital <h>, Student <s>)."
	)

	cmd := &cobra.Command{
		Use:   verifyUse,
		Short: verifyShort,
		Long:  verifyLong,
		Args:  cobra.ExactArgs(1),
	}

	var opts verifyOptions
	opts.AddFlags(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := options.Config()
		if err != nil {
			return err
		}
		log := options.Logger(cmd, cfg)

		file := args[0]
		if file == "" {
			return errors.New("'preferences-file' must not be empty")
		}
		format := strings.ToLower(lo.Ternary(opts.Format != "", opts.Format, cfg.Format))
		if !slices.Contains(validFormats, format) {
			return fmt.Errorf("%v is not a valid format: allowed values are %v", format, validFormats)
		}

		preferences, err := loadPreferences(file, format)
		if errors.Is(err, model.ErrTruncatedInput) {
			// A preference file shorter than its declared size is read as an empty instance
			log.V(1).Info("truncated preferences file read as n = 0", "file", file)
			preferences, err = model.Preferences{}, nil
		}
		if err != nil {
			return fmt.Errorf("cannot load preferences: %w", err)
		}

		matching := cmd.InOrStdin()
		if opts.Matching != "" {
			fd, err := os.Open(opts.Matching)
			if err != nil {
				return fmt.Errorf("cannot open matching file: %w", err)
			}
			defer fd.Close()
			matching = fd
		}

		verdict, err := verifier.VerifyReader(preferences, matching)
		if err != nil {
			return err
		}
		log.V(1).Info("matching verified", "n", preferences.N, "kind", verdict.Kind.String())

		_, err = fmt.Fprintln(cmd.OutOrStdout(), verdict.String())
		return err
	}

	return cmd
}

type verifyOptions struct {
	Format   string
	Matching string
}

func (o *verifyOptions) AddFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.Format, "format", o.Format, `Preferences format: "text" or "json"; defaults to the config's format`)
	flags.StringVar(&o.Matching, "matching", o.Matching, "Path to the candidate matching; if empty, it is read from the standard input")
}

func loadPreferences(file, format string) (model.Preferences, error) {
	if format == "json" {
		return model.PreferencesFromJson(file)
	}
	return model.PreferencesFromFile(file)
}
