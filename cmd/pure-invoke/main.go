// Command pure-invoke loads a shared library, resolves one exported
// zero-argument function and calls it, printing "before" and "after" around
// the call.
package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/amikos-tech/pure-invoke/invoke"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("pure-invoke: ")

	app := cli.NewApp()
	app.Name = "pure-invoke"
	app.Usage = "call an exported function from a shared library"
	app.Description = "pure-invoke opens a shared library at runtime, resolves a zero-argument, void-returning export by its exact name and calls it once"
	app.HideHelpCommand = true
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "library",
			Aliases: []string{"l"},
			Usage:   "path of the shared library, relative to the working directory",
			Value:   invoke.DefaultLibraryPath(),
			EnvVars: []string{invoke.EnvLibraryPath},
		},
		&cli.StringFlag{
			Name:    "symbol",
			Aliases: []string{"s"},
			Usage:   "exact, case-sensitive name of the export to call",
			Value:   invoke.DefaultSymbolName,
			EnvVars: []string{invoke.EnvSymbolName},
		},
	}
	app.Action = action

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("failure %s", err)
	}
}

func action(ctx *cli.Context) error {
	if ctx.NArg() > 0 {
		return cli.Exit("unexpected arguments: "+ctx.Args().First(), invoke.ExitUsage)
	}

	outcome := invoke.Run(
		invoke.WithLibraryPath(ctx.String("library")),
		invoke.WithSymbolName(ctx.String("symbol")),
		invoke.WithOutput(ctx.App.Writer),
	)
	if !outcome.Failed() {
		return nil
	}

	// Load and lookup failures already printed their diagnostic line.
	if outcome.State == invoke.StateFailed {
		return cli.Exit("", outcome.ExitCode())
	}
	return cli.Exit(outcome.Err.Error(), outcome.ExitCode())
}
