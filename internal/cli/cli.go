// Package cli provides the command-line interface for casemock.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/AndreyAkinshin/casemock/internal/catalog"
	"github.com/AndreyAkinshin/casemock/internal/config"
	"github.com/AndreyAkinshin/casemock/internal/errors"
	"github.com/AndreyAkinshin/casemock/internal/output"
)

// Version is set at build time.
var Version = "dev"

var (
	// out is the shared output writer for CLI commands.
	out = output.New()
	// stdin is read by commands given "-" as their input argument.
	stdin io.Reader = os.Stdin
)

// Help text alignment widths for consistent formatting.
const (
	helpFlagWidthShort  = 10 // Width for short flags like "-h, --help"
	helpFlagWidthGlobal = 20 // Width for global flags like "--catalog=<path>"
	helpCommandWidth    = 18
)

// wantsHelp returns true if args contain -h or --help before any -- separator.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
		if arg == "--" {
			return false
		}
	}
	return false
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return run(ctx, args)
}

// fail reports err on stderr and returns its exit code.
func fail(err error) int {
	out.ErrorPrefix("%v", err)
	return errors.GetExitCode(err)
}

func run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		printUsage()
		return 0
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return 0
	case "--version", "version":
		out.Println("casemock %s", Version)
		return 0
	}

	opts, remaining, err := parseGlobalFlags(args)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}

	if len(remaining) == 0 {
		printUsage()
		return 0
	}
	cmd := remaining[0]
	cmdArgs := remaining[1:]

	switch cmd {
	case "lookup":
		return cmdLookup(ctx, cmdArgs, opts)
	case "batch":
		return cmdBatch(ctx, cmdArgs, opts)
	case "explain":
		return cmdExplain(ctx, cmdArgs, opts)
	case "check":
		return cmdCheck(ctx, cmdArgs, opts)
	case "config":
		return cmdConfig(cmdArgs)
	case "init":
		return cmdInit(cmdArgs, opts)
	case "completion":
		return cmdCompletion(cmdArgs)
	case "help":
		printUsage()
		return 0
	case "version":
		out.Println("casemock %s", Version)
		return 0
	default:
		out.ErrorPrefix("unknown command %q", cmd)
		out.Errorln("Run 'casemock help' for usage.")
		return errors.ExitConfigError
	}
}

// GlobalOptions holds parsed global flags.
type GlobalOptions struct {
	Quiet        bool
	Verbose      bool
	Catalog      string
	Format       string
	Tolerance    float64
	ToleranceSet bool
}

// parseGlobalFlags manually parses global flags from arguments.
//
// Flags may appear anywhere before a -- separator, so the stdlib flag
// package, which stops at the first positional argument, is not used.
func parseGlobalFlags(args []string) (*GlobalOptions, []string, error) {
	opts := &GlobalOptions{}
	var remaining []string

	i := 0
	for i < len(args) {
		arg := args[i]
		name, val, hasVal := strings.Cut(arg, "=")

		switch {
		case arg == "-q" || arg == "--quiet":
			opts.Quiet = true
			i++
		case arg == "-v" || arg == "--verbose":
			opts.Verbose = true
			i++
		case name == "--catalog" || name == "--format" || name == "--tolerance":
			if !hasVal {
				if i+1 >= len(args) {
					return nil, nil, fmt.Errorf("%s requires a value", name)
				}
				val = args[i+1]
				i++
			}
			if err := setValueFlag(opts, name, val); err != nil {
				return nil, nil, err
			}
			i++
		case arg == "--":
			remaining = append(remaining, args[i:]...)
			i = len(args)
		default:
			remaining = append(remaining, arg)
			i++
		}
	}

	if err := validateGlobalOptions(opts); err != nil {
		return nil, nil, err
	}

	applyVerbosityToOutput(opts)
	return opts, remaining, nil
}

func setValueFlag(opts *GlobalOptions, name, val string) error {
	switch name {
	case "--catalog":
		if val == "" {
			return fmt.Errorf("--catalog requires a non-empty path")
		}
		opts.Catalog = val
	case "--format":
		opts.Format = val
	case "--tolerance":
		eps, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("invalid --tolerance value %q: not a number", val)
		}
		opts.Tolerance = eps
		opts.ToleranceSet = true
	}
	return nil
}

// validateGlobalOptions checks that global options are valid.
func validateGlobalOptions(opts *GlobalOptions) error {
	if opts.Quiet && opts.Verbose {
		return fmt.Errorf("--quiet and --verbose are mutually exclusive")
	}

	if opts.Format != "" {
		if _, ok := catalog.ParseFormat(opts.Format); !ok {
			return fmt.Errorf("invalid --format value %q\n  valid values: %s",
				opts.Format, strings.Join(catalog.ValidFormats(), ", "))
		}
	}

	if opts.ToleranceSet {
		if err := config.ValidateTolerance(opts.Tolerance); err != nil {
			return fmt.Errorf("invalid --tolerance value %v: must be a finite number greater than 0", opts.Tolerance)
		}
	}

	return nil
}

// applyVerbosityToOutput configures the output writer based on verbosity settings.
func applyVerbosityToOutput(opts *GlobalOptions) {
	out.SetQuiet(opts.Quiet)
	out.SetVerbose(opts.Verbose)
}

func printUsage() {
	w := out

	w.HelpTitle("casemock - replay recorded test cases as a deterministic mock")

	w.HelpSection("Usage:")
	w.HelpUsage("casemock [flags] <command> [args]")

	w.HelpSection("Lookup Commands:")
	w.HelpCommand("lookup <json|->", "Print the expected output recorded for an input", helpCommandWidth)
	w.HelpCommand("batch <file|->", "Look up every JSON line of a file, concurrently", helpCommandWidth)
	w.HelpCommand("explain <json|->", "Show the matching record or why nothing matched", helpCommandWidth)

	w.HelpSection("Catalog Commands:")
	w.HelpCommand("check", "Load the catalog and summarize its records", helpCommandWidth)
	w.HelpCommand("check --all", "Check every test_cases/test_cases.json below the root", helpCommandWidth)

	w.HelpSection("Utility Commands:")
	w.HelpCommand("init", "Create .casemock/config.json in the current directory", helpCommandWidth)
	w.HelpCommand("config validate", "Validate project configuration", helpCommandWidth)
	w.HelpCommand("completion <shell>", "Generate shell completion (bash, zsh, fish)", helpCommandWidth)
	w.HelpCommand("version", "Show version information", helpCommandWidth)

	printGlobalFlags(w)

	w.HelpSection("Exit Codes:")
	w.HelpCommand("0", "Success", 2)
	w.HelpCommand("1", "Runtime error", 2)
	w.HelpCommand("2", "Configuration error, malformed catalog or bad input", 2)
	w.HelpCommand("3", "Catalog missing or unreadable", 2)
	w.HelpCommand("4", "No recorded case matched", 2)

	w.HelpSection("Examples:")
	w.HelpExample(`casemock lookup '{"x": 1, "y": [1, 2]}'`, "Print the recorded output for this input")
	w.HelpExample("casemock --catalog=cases.yaml batch inputs.jsonl", "Answer one lookup per line")
	w.HelpExample(`casemock --tolerance=1e-3 explain '{"x": 2}'`, "Explain a miss with a looser tolerance")
	w.Println("")
}

func printGlobalFlags(w *output.Writer) {
	w.HelpSection("Global Flags:")
	w.HelpFlag("-q, --quiet", "Minimal output (errors only)", helpFlagWidthGlobal)
	w.HelpFlag("-v, --verbose", "Debug logging to stderr", helpFlagWidthGlobal)
	w.HelpFlag("--catalog=<path>", "Catalog file (skips project discovery)", helpFlagWidthGlobal)
	w.HelpFlag("--format=<format>", "Catalog format: auto, json, yaml", helpFlagWidthGlobal)
	w.HelpFlag("--tolerance=<eps>", "Numeric tolerance (default 1e-6)", helpFlagWidthGlobal)
	w.HelpFlag("-h, --help", "Show this help", helpFlagWidthGlobal)
	w.HelpFlag("--version", "Show version", helpFlagWidthGlobal)

	w.HelpSection("Environment:")
	w.HelpEnvVar("CASEMOCK_LOG_LEVEL", "Log level, overrides log.level in the config", 18)
}
