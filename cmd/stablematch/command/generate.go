package command

import (
	"errors"
	"os"

	"github.com/limaJavier/stablematching/pkg/generator"
	"github.com/limaJavier/stablematching/pkg/model"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func NewGenerateCmd(options *GlobalOptions) *cobra.Command {
	const (
		generateUse   = "generate --n size [--seed s] [--out path]"
		generateShort = "generate a random preferences instance."
		generateLong  = "generate a random preferences instance of the given size in the textual format, each preference list being a uniformly random permutation. Equal seeds produce equal instances."
	)

	cmd := &cobra.Command{
		Use:   generateUse,
		Short: generateShort,
		Long:  generateLong,
		Args:  cobra.NoArgs,
	}

	var opts generateOptions
	opts.AddFlags(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := options.Config()
		if err != nil {
			return err
		}
		log := options.Logger(cmd, cfg)

		if opts.N < 0 {
			return errors.New("size must not be negative")
		}
		seed := cfg.Seed
		if cmd.Flags().Changed("seed") {
			seed = opts.Seed
		}

		preferences := generator.Generate(opts.N, seed)
		log.V(1).Info("instance generated", "n", opts.N, "seed", seed)

		if opts.Out == "" {
			return model.WritePreferences(cmd.OutOrStdout(), preferences)
		}

		file, err := os.Create(opts.Out)
		if err != nil {
			return err
		}
		defer file.Close()
		if err := model.WritePreferences(file, preferences); err != nil {
			return err
		}
		return file.Close()
	}

	return cmd
}

type generateOptions struct {
	N    int
	Seed uint64
	Out  string
}

func (o *generateOptions) AddFlags(flags *pflag.FlagSet) {
	flags.IntVar(&o.N, "n", o.N, "Number of hospitals (and students)")
	flags.Uint64Var(&o.Seed, "seed", o.Seed, "Seed of the random source; defaults to the config's seed")
	flags.StringVar(&o.Out, "out", o.Out, "Path to the file where the instance will be written; if empty, it'll be written into the Standard Output")
}
