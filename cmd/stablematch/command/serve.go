package command

import (
	"github.com/limaJavier/stablematching/internal/metrics"
	"github.com/limaJavier/stablematching/internal/server"
	"github.com/limaJavier/stablematching/pkg/matcher"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func NewServeCmd(options *GlobalOptions) *cobra.Command {
	const (
		serveUse   = "serve [--address addr]"
		serveShort = "serve the matcher and the verifier over HTTP."
	)

	cmd := &cobra.Command{
		Use:   serveUse,
		Short: serveShort,
		Args:  cobra.NoArgs,
	}

	var opts serveOptions
	opts.AddFlags(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := options.Config()
		if err != nil {
			return err
		}
		log := options.Logger(cmd, cfg)

		strategy, err := matcher.ParseStrategy(cfg.Strategy)
		if err != nil {
			return err
		}
		address := cfg.Address
		if opts.Address != "" {
			address = opts.Address
		}

		router := server.NewRouter(server.Dependencies{
			Logger:          log,
			Recorder:        metrics.NewRecorder(),
			DefaultStrategy: strategy,
			MaxRequestBytes: cfg.MaxRequestBytes,
		})

		log.Info("serving", "address", address)
		return server.Run(cmd.Context(), address, router)
	}

	return cmd
}

type serveOptions struct {
	Address string
}

func (o *serveOptions) AddFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.Address, "address", o.Address, "Address to listen on; defaults to the config's address")
}
