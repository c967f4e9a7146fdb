package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-risk-dashboard/components/dashboard"
)

type cli struct {
	Personas personasCmd `cmd:"" help:"List the dashboard personas."`
	Render   renderCmd   `cmd:"" help:"Render a persona dashboard as JSON or HTML."`
	Check    checkCmd    `cmd:"" help:"Validate fixture and layout documents."`
	Export   exportCmd   `cmd:"" help:"Export a fixture table as CSV."`
}

type personasCmd struct {
	Format string `default:"text" enum:"text,json,yaml" help:"Output format (text, json, yaml)."`
}

type renderCmd struct {
	Persona  string   `default:"reporting-analyst" help:"Persona to render (kebab, snake or camel case)."`
	Format   string   `default:"json" enum:"json,html" help:"Output format (json, html)."`
	Set      []string `help:"Extra view state controls as key=value (e.g. --set market_drop=30)."`
	BasePath string   `default:"/" help:"Base path used for generated links."`
	Fixtures string   `type:"path" help:"Fixture YAML (defaults to the embedded data set)."`
	Layouts  string   `type:"path" help:"Layout manifest YAML (defaults to the embedded layouts)."`
}

type checkCmd struct {
	Fixtures string `type:"path" help:"Fixture YAML to validate (defaults to the embedded data set)."`
	Layouts  string `type:"path" help:"Layout manifest YAML to validate (defaults to the embedded layouts)."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Name("riskctl"),
		kong.Description("Inspection utility for the risk dashboard fixtures and layouts."),
		kong.UsageOnError(),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
		kong.BindTo(os.Stdout, (*io.Writer)(nil)),
	)
	ctx.FatalIfErrorf(ctx.Run())
}

func (cmd *personasCmd) Run(out io.Writer) error {
	catalog := dashboard.PersonaCatalog()
	switch cmd.Format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(catalog)
	case "yaml":
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(catalog)
	default:
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tROLE")
		for _, p := range catalog {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Name, p.Role)
		}
		return tw.Flush()
	}
}

func (cmd *renderCmd) Run(ctx context.Context, out io.Writer) error {
	persona, err := dashboard.ParsePersona(cmd.Persona)
	if err != nil {
		return err
	}
	values := url.Values{}
	for _, kv := range cmd.Set {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("riskctl: --set expects key=value, got %q", kv)
		}
		values.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	values.Set(dashboard.ParamPersona, string(persona))
	state, err := dashboard.ParseViewState(values)
	if err != nil {
		return err
	}
	service, err := dashboard.Bootstrap(dashboard.BootstrapOptions{
		FixturesPath: cmd.Fixtures,
		LayoutsPath:  cmd.Layouts,
		BasePath:     cmd.BasePath,
	})
	if err != nil {
		return err
	}
	controller := dashboard.NewController(service)
	if cmd.Format == "html" {
		return controller.RenderTemplate(ctx, state, out)
	}
	page, err := controller.Payload(ctx, state)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(page)
}

func (cmd *checkCmd) Run(out io.Writer) error {
	fixtures, err := dashboard.LoadFixturesFile(cmd.Fixtures)
	if err != nil {
		return fmt.Errorf("riskctl: fixtures: %w", err)
	}
	manifest, err := dashboard.ReadManifest(cmd.Layouts)
	if err != nil {
		return fmt.Errorf("riskctl: layouts: %w", err)
	}
	if err := manifest.Check(dashboard.NewRegistry(), nil); err != nil {
		return fmt.Errorf("riskctl: layouts: %w", err)
	}
	widgets := 0
	for _, dash := range manifest.Dashboards {
		widgets += len(dash.Widgets)
	}
	counts := fixtures.ComplianceCounts()
	fmt.Fprintf(out, "fixtures: %d portfolios, %d compliance rules (%d fail, %d warning, %d pass)\n",
		len(fixtures.Portfolios), len(fixtures.ComplianceRules), counts.Failed, counts.Warnings, counts.Passed)
	fmt.Fprintf(out, "layouts: %d dashboards, %d widgets (%s)\n", len(manifest.Dashboards), widgets, manifest.Source)
	return nil
}
