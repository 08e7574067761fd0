package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/shibukawa/parsekit"
	"github.com/shibukawa/parsekit/combinator"
)

const defaultConfigPath = "parsekit.yaml"

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool
	Trace   bool
	NoColor bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Settings is the loaded configuration
	Settings *parsekit.Config
}

// CLI represents the command-line interface
type CLI struct {
	Config  string     `help:"Configuration file path (default: parsekit.yaml when present)" type:"path"`
	Verbose bool       `help:"Enable verbose output" short:"v"`
	Quiet   bool       `help:"Suppress output" short:"q"`
	Trace   bool       `help:"Print a parser trace to stderr"`
	NoColor bool       `help:"Disable colored output"`
	Eval    EvalCmd    `cmd:"" help:"Evaluate arithmetic expressions"`
	Lex     LexCmd     `cmd:"" help:"Show the tokens of an arithmetic expression"`
	Stream  StreamCmd  `cmd:"" help:"Evaluate a stream of statements from a file or stdin"`
	Path    PathCmd    `cmd:"" help:"Parse, validate and resolve an access path"`
	Doc     DocCmd     `cmd:"" help:"Run the arith and path code blocks of a markdown document"`
	Range   RangeCmd   `cmd:"" help:"Explain a repetition range"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Fprintln(ctx.Stdout, "parsekit v0.1.0")
	return nil
}

var (
	errorFmt    = color.New(color.FgRed, color.Bold).SprintFunc()
	warningFmt  = color.New(color.FgYellow).SprintFunc()
	successFmt  = color.New(color.FgGreen).SprintFunc()
	locationFmt = color.New(color.Bold).SprintFunc()
)

// loadConfig reads the configuration file. A path given on the command line
// must exist; the default path is optional.
func (c *Context) loadConfig() error {
	var (
		config *parsekit.Config
		err    error
	)

	if c.Config == "" {
		config, err = parsekit.LoadConfig(defaultConfigPath)
	} else {
		config, err = parsekit.LoadRequiredConfig(c.Config)
	}

	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	c.Settings = config

	return nil
}

// apply installs the color and trace settings and returns a function that
// restores the previous state.
func (c *Context) apply() func() {
	prevNoColor := color.NoColor

	color.NoColor = c.NoColor || !c.Settings.UseColor(isTerminal(c.Stdout))

	if c.Trace || c.Settings.Trace {
		combinator.SetTraceOutput(c.Stderr)
	}

	return func() {
		combinator.SetTraceOutput(nil)
		color.NoColor = prevNoColor
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// run parses args and executes the selected command. It returns the process
// exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cli CLI

	parser, err := kong.New(&cli,
		kong.Name("parsekit"),
		kong.Description("Parser combinator toolkit: arithmetic evaluation, streaming statements and access paths."),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	appCtx := &Context{
		Config:  cli.Config,
		Verbose: cli.Verbose,
		Quiet:   cli.Quiet,
		Trace:   cli.Trace,
		NoColor: cli.NoColor,
		Stdin:   stdin,
		Stdout:  stdout,
		Stderr:  stderr,
	}

	if cli.Quiet {
		appCtx.Stdout = io.Discard
	}

	if err := appCtx.loadConfig(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	restore := appCtx.apply()
	defer restore()

	if err := kctx.Run(appCtx); err != nil {
		fmt.Fprintf(stderr, "%s %v\n", errorFmt("Error:"), err)
		return 1
	}

	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
