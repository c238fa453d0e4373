package command

import (
	"github.com/go-logr/logr"
	"github.com/limaJavier/stablematching/internal/config"
	"github.com/limaJavier/stablematching/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/dig"
)

const subCommandsGroup = "rootSubCommands"

type Params struct {
	dig.In

	Streams     IOStreams
	Args        Args
	Options     *GlobalOptions
	SubCommands []*cobra.Command `group:"rootSubCommands"`
}

func ProvideRootCmd(params Params) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "stablematch",
		Short:        "Compute and certify stable one-to-one matchings between hospitals and students",
		SilenceUsage: true,
	}
	cmd.SetIn(params.Streams.In)
	cmd.SetOut(params.Streams.Out)
	cmd.SetErr(params.Streams.ErrOut)
	cmd.SetArgs(params.Args)

	params.Options.AddFlags(cmd.PersistentFlags())

	for _, sub := range params.SubCommands {
		cmd.AddCommand(sub)
	}

	return cmd
}

// GlobalOptions are shared by every subcommand through the root's persistent flags
type GlobalOptions struct {
	ConfigPath string
	Verbosity  int
}

func ProvideGlobalOptions() *GlobalOptions {
	return &GlobalOptions{Verbosity: -1}
}

func (o *GlobalOptions) AddFlags(flags *pflag.FlagSet) {
	flags.StringVar(
		&o.ConfigPath,
		"config",
		o.ConfigPath,
		"Path to a config.json file; by default config.json next to the executable is used when present",
	)
	flags.IntVar(
		&o.Verbosity,
		"v",
		o.Verbosity,
		"Log verbosity written to the standard error; a negative value uses the config's logLevel",
	)
}

func (o *GlobalOptions) Config() (config.Config, error) {
	return config.Load(o.ConfigPath)
}

// Logger writes to the command's error stream so that standard output only carries results
func (o *GlobalOptions) Logger(cmd *cobra.Command, cfg config.Config) logr.Logger {
	verbosity := o.Verbosity
	if verbosity < 0 {
		verbosity = cfg.LogLevel
	}
	return logging.NewZapFactory(cmd.ErrOrStderr(), verbosity).Logger()
}
