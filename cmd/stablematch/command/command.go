package command

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/dig"
)

const (
	// ReturnCodeSuccess is passed to os.Exit() when no error is reported.
	ReturnCodeSuccess = 0
	// ReturnCodeError is passed to os.Exit() if a command report an error.
	ReturnCodeError = 1
)

type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// Args are the command line arguments without the program name
type Args []string

func Run(ctx context.Context, inReader io.Reader, outWriter, errWriter io.Writer, args []string) int {
	container, err := Build(IOStreams{In: inReader, Out: outWriter, ErrOut: errWriter}, args)
	if err != nil {
		fmt.Fprintf(errWriter, "cannot build commands: %v\n", err)
		return ReturnCodeError
	}

	err = container.Invoke(func(cmd *cobra.Command) error {
		return cmd.ExecuteContext(ctx)
	})
	if err != nil {
		return ReturnCodeError
	}

	return ReturnCodeSuccess
}

func Build(streams IOStreams, args []string) (*dig.Container, error) {
	container := dig.New()

	if err := container.Provide(func() IOStreams { return streams }); err != nil {
		return nil, err
	}
	if err := container.Provide(func() Args { return args }); err != nil {
		return nil, err
	}

	for _, c := range constructors() {
		if err := container.Provide(c); err != nil {
			return nil, err
		}
	}

	for _, c := range subCommands() {
		if err := container.Provide(c, dig.Group(subCommandsGroup)); err != nil {
			return nil, err
		}
	}

	return container, nil
}

func constructors() []any {
	return []any{
		ProvideRootCmd,
		ProvideGlobalOptions,
	}
}

func subCommands() []any {
	return []any{
		NewMatchCmd,
		NewVerifyCmd,
		NewGenerateCmd,
		NewServeCmd,
		NewVersionCmd,
	}
}
