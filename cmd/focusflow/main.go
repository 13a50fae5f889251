package main

import (
	"fmt"
	"os"

	"focusflow/internal/cli"

	"github.com/alecthomas/kong"
)

var CLI struct {
	cli.Root `embed:""`

	Version kong.VersionFlag `help:"Print the version and exit."`
	GUI     GUICmd           `cmd:"" help:"Launch the desktop app." default:"1"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("focusflow"),
		kong.Description("Focus sessions with a countdown, Pomodoro cycles and music."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v0.3.0"},
	)

	appCtx, err := CLI.NewContext(os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	err = ctx.Run(appCtx)
	_ = appCtx.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
