package cli

import (
	"fmt"
	"strconv"

	"focusflow/internal/core/model"
	"focusflow/internal/playback"
)

type SourcesCmd struct {
	Parse SourcesParseCmd `cmd:"" help:"Validate a music link and print its player URL."`
}

type SourcesParseCmd struct {
	Kind string `arg:"" enum:"youtube,spotify,apple,manual" help:"Music platform."`
	URL  string `arg:"" optional:"" help:"Music link."`
}

func (c *SourcesParseCmd) Run(ctx *Context) error {
	source, err := playback.ParseSource(model.SourceKind(c.Kind), c.URL)
	if err != nil {
		return err
	}
	embed := source.EmbedURL
	if embed == "" {
		embed = "(play music on your device)"
	}
	fmt.Fprintln(ctx.Out, row("Platform", string(source.Kind)))
	fmt.Fprintln(ctx.Out, row("Player URL", embed))
	fmt.Fprintln(ctx.Out, row("Remote control", strconv.FormatBool(source.Controllable())))
	return nil
}
