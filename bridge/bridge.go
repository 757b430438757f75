// Package bridge mounts an argv.Parser inside cobra and urfave/cli command
// trees. The host framework routes to the command; argv parses everything
// after it.
package bridge

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/urfave/cli/v2"

	"github.com/dzonerzy/go-argv/argv"
)

// Run parses args and folds the outcome into a single error: nil on
// success, the parse failure otherwise.
func Run(p *argv.Parser, args []string) error {
	res, err := p.Run(args)
	if err != nil {
		return err
	}
	if !res.OK {
		return res.Err
	}
	return nil
}

// Cobra returns a command that hands its raw arguments to p. Cobra's own
// flag parsing is disabled so dashes reach the argv registry untouched.
func Cobra(use, short string, p *argv.Parser) *cobra.Command {
	return &cobra.Command{
		Use:                use,
		Short:              short,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		RunE: func(_ *cobra.Command, args []string) error {
			return Run(p, args)
		},
		ValidArgsFunction: func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return complete(p, toComplete), cobra.ShellCompDirectiveNoFileComp
		},
	}
}

// Urfave returns a cli.Command that hands its raw arguments to p. A failed
// parse becomes a cli.ExitCoder carrying argv.ExitCode of the failure.
func Urfave(name, usage string, p *argv.Parser) *cli.Command {
	return &cli.Command{
		Name:            name,
		Usage:           usage,
		SkipFlagParsing: true,
		Action: func(c *cli.Context) error {
			if err := Run(p, c.Args().Slice()); err != nil {
				return cli.Exit(err.Error(), argv.ExitCode(err))
			}
			return nil
		},
		BashComplete: func(c *cli.Context) {
			for _, flag := range complete(p, "") {
				fmt.Fprintln(c.App.Writer, flag)
			}
		},
	}
}

func complete(p *argv.Parser, prefix string) []string {
	names := p.Registry().Names()
	out := make([]string, 0, len(names))
	for _, name := range names {
		flag := "--" + name
		if strings.HasPrefix(flag, prefix) || strings.HasPrefix(name, prefix) {
			out = append(out, flag)
		}
	}
	return out
}
