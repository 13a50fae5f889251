package cli

import (
	"fmt"
	"strings"

	"focusflow/internal/templates"
)

type TemplatesCmd struct {
	ID    string `arg:"" optional:"" help:"Show one template in detail."`
	Apply bool   `help:"Save the template and its suggested session length to preferences."`
}

func (c *TemplatesCmd) Run(ctx *Context) error {
	if c.ID == "" {
		if c.Apply {
			return fmt.Errorf("--apply needs a template id")
		}
		all, err := templates.All()
		if err != nil {
			return err
		}
		for _, template := range all {
			fmt.Fprintln(ctx.Out, row(template.ID, fmt.Sprintf("%s · %d min · %s",
				template.Title, template.SuggestedMinutes, template.Intensity.Label())))
		}
		return nil
	}

	template, err := templates.ByID(c.ID)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, headingStyle.Render(template.Title))
	fmt.Fprintln(ctx.Out, template.Description)
	fmt.Fprintln(ctx.Out, row("Intensity", template.Intensity.Label()))
	fmt.Fprintln(ctx.Out, row("Suggested", fmt.Sprintf("%d min session", template.SuggestedMinutes)))
	for _, tip := range template.Tips {
		fmt.Fprintln(ctx.Out, "  • "+strings.TrimSpace(tip))
	}

	if !c.Apply {
		return nil
	}
	settings, err := ctx.Store.Load()
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}
	if err := ctx.Store.Save(template.Apply(settings)); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	fmt.Fprintln(ctx.Out, successStyle.Render("Template applied."))
	return nil
}
