package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/shibukawa/parsekit/diagnostic"
	"github.com/shibukawa/parsekit/explang"
)

// PathCmd represents the path command
type PathCmd struct {
	Expr   string `arg:"" help:"Access path such as users[0].name or order?.items?[1]"`
	Data   string `help:"YAML document to resolve the path against (default: path.data)" type:"path"`
	Schema string `help:"YAML schema to validate the path against (default: path.schema)" type:"path"`
	Line   int    `help:"Line of the expression in its source document" default:"1"`
	Column int    `help:"Column of the expression in its source document" default:"1"`
}

type stepView struct {
	Kind   string `yaml:"kind"`
	Name   string `yaml:"name,omitempty"`
	Index  *int   `yaml:"index,omitempty"`
	Safe   bool   `yaml:"safe,omitempty"`
	Line   int    `yaml:"line"`
	Column int    `yaml:"column"`
	Length int    `yaml:"length"`
}

// Run executes the path command
func (cmd *PathCmd) Run(ctx *Context) error {
	steps, err := explang.ParseSteps(cmd.Expr, cmd.Line, cmd.Column)
	if err != nil {
		if rerr := diagnostic.Render(ctx.Stderr, "path", cmd.Expr, err, ctx.Settings.DiagnosticOptions()); rerr != nil {
			return rerr
		}

		return err
	}

	schemaPath := firstNonEmpty(cmd.Schema, ctx.Settings.Path.Schema)
	if schemaPath != "" {
		schema, err := readYAMLDocument(schemaPath)
		if err != nil {
			return err
		}

		problems := explang.Validate(steps, schema, nil)
		for _, p := range problems {
			fmt.Fprintf(ctx.Stderr, "%s: %s %s\n",
				locationFmt(fmt.Sprintf("path:%d:%d", p.Step.Pos.Line, p.Step.Pos.Column)), errorFmt("error:"), p.Message)
		}

		if len(problems) > 0 {
			return fmt.Errorf("%w: %d problem(s) in %s", ErrPathInvalid, len(problems), explang.Format(steps))
		}

		if ctx.Verbose {
			fmt.Fprintf(ctx.Stderr, "%s %s matches %s\n", successFmt("ok:"), explang.Format(steps), schemaPath)
		}
	}

	dataPath := firstNonEmpty(cmd.Data, ctx.Settings.Path.Data)
	if dataPath == "" {
		return writeYAML(ctx, stepViews(steps))
	}

	doc, err := readYAMLDocument(dataPath)
	if err != nil {
		return err
	}

	value, err := explang.Resolve(steps, doc)
	if err != nil {
		return err
	}

	return writeYAML(ctx, value)
}

func stepViews(steps []explang.Step) []stepView {
	views := make([]stepView, len(steps))

	for i, s := range steps {
		v := stepView{
			Kind:   s.Kind.String(),
			Safe:   s.Safe,
			Line:   s.Pos.Line,
			Column: s.Pos.Column,
			Length: s.Pos.Length,
		}

		switch s.Kind {
		case explang.StepIdentifier:
			v.Name = s.Identifier
		case explang.StepMember:
			v.Name = s.Property
		case explang.StepIndex:
			v.Index = &s.Index
		}

		views[i] = v
	}

	return views
}

func readYAMLDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return doc, nil
}

func writeYAML(ctx *Context, v any) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	_, err = ctx.Stdout.Write(out)

	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
