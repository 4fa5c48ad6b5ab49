package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/AndreyAkinshin/casemock/internal/catalog"
	"github.com/AndreyAkinshin/casemock/internal/config"
	"github.com/AndreyAkinshin/casemock/internal/errors"
	"github.com/AndreyAkinshin/casemock/internal/log"
	"github.com/AndreyAkinshin/casemock/internal/mock"
	"github.com/AndreyAkinshin/casemock/internal/project"
	"github.com/AndreyAkinshin/casemock/internal/schema"
)

// session is the resolved catalog, configuration and mock for one command.
type session struct {
	Root        string
	CatalogPath string
	Config      *config.Config
	Mock        *mock.Mock
}

// openSession resolves the catalog to use: --catalog when given, otherwise
// the enclosing project (or defaults relative to the working directory).
// Flags override configuration. Returns nil and an exit code on failure.
func openSession(opts *GlobalOptions) (*session, int) {
	s := &session{Config: config.Default()}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fail(errors.Wrap(err, "cannot determine working directory"))
	}
	s.Root = cwd

	if opts.Catalog != "" {
		s.CatalogPath = opts.Catalog
	} else {
		proj, err := project.LoadProjectOrDefault(cwd)
		if err != nil {
			return nil, fail(err)
		}
		for _, w := range proj.Warnings {
			out.WarningSimple("%s", w)
		}
		s.Root = proj.Root
		s.Config = proj.Config
		s.CatalogPath = proj.CatalogPath()
	}

	formatName := s.Config.Format
	if opts.Format != "" {
		formatName = opts.Format
	}
	format, ok := catalog.ParseFormat(formatName)
	if !ok {
		return nil, fail(errors.Configf("unknown catalog format %q", formatName))
	}

	tolerance := s.Config.ToleranceValue()
	if opts.ToleranceSet {
		tolerance = opts.Tolerance
	}

	configureLogging(s.Config, opts)

	logger := log.Derive(func(c *zerolog.Context) {
		*c = c.Str(log.FieldComponent, "mock").Str(log.FieldRoot, s.Root)
	})
	s.Mock = mock.New(catalog.NewFileLoader(s.CatalogPath, format),
		mock.WithTolerance(tolerance), mock.WithLogger(logger))
	out.Debug("catalog: %s (format %s, tolerance %g)", s.CatalogPath, format.Resolve(s.CatalogPath), s.Mock.Tolerance())
	return s, 0
}

// configureLogging applies the log level. Precedence: -v (debug) and
// -q (error), then CASEMOCK_LOG_LEVEL, then log.level from the config.
func configureLogging(cfg *config.Config, opts *GlobalOptions) {
	lc := log.Config{}
	if cfg.Log != nil {
		lc.Level = cfg.Log.Level
		lc.Pretty = cfg.Log.Pretty
	}
	if env := os.Getenv(log.EnvLevel); env != "" {
		lc.Level = env
	}
	switch {
	case opts.Verbose:
		lc.Level = "debug"
	case opts.Quiet:
		lc.Level = "error"
	}
	log.Configure(lc)
}

// cmdConfig handles configuration utilities.
func cmdConfig(args []string) int {
	if len(args) == 0 {
		out.ErrorPrefix("config: subcommand required (validate)")
		return errors.ExitConfigError
	}

	switch args[0] {
	case "validate":
		if wantsHelp(args[1:]) {
			printConfigUsage()
			return 0
		}
		return cmdConfigValidate()
	case "-h", "--help":
		printConfigUsage()
		return 0
	default:
		out.ErrorPrefix("config: unknown subcommand %q", args[0])
		return errors.ExitConfigError
	}
}

func cmdConfigValidate() int {
	root, err := project.FindRoot()
	if err != nil {
		out.ErrorPrefix("%v", err)
		out.Hint("Run 'casemock init' to create a configuration.")
		return errors.ExitConfigError
	}

	configPath := (&project.Project{Root: root}).ConfigPath()
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fail(errors.Environment("cannot read configuration", err))
	}
	if err := schema.ValidateConfig(data); err != nil {
		return fail(errors.Validation(configPath, err))
	}

	proj, err := project.LoadProjectFrom(root)
	if err != nil {
		return fail(err)
	}

	for _, w := range proj.Warnings {
		out.WarningSimple("%s", w)
	}
	if _, err := os.Stat(proj.CatalogPath()); err != nil {
		out.WarningSimple("catalog %s is not readable: %v", proj.CatalogPath(), err)
	}

	cfg := proj.Config
	out.ValidationSuccess("Configuration is valid.")
	if cfg.Project != nil && cfg.Project.Name != "" {
		out.SummaryItem("Project", cfg.Project.Name)
	}
	out.SummaryItem("Catalog", proj.CatalogPath())
	out.SummaryItem("Format", cfg.Format)
	out.SummaryItem("Tolerance", strconv.FormatFloat(cfg.ToleranceValue(), 'g', -1, 64))
	out.SummaryItem("Log level", cfg.Log.Level)
	if len(proj.Warnings) > 0 {
		out.SummaryItem("Warnings", fmt.Sprintf("%d", len(proj.Warnings)))
	}
	return 0
}

// printConfigUsage prints the help text for the config command.
func printConfigUsage() {
	w := out

	w.HelpTitle("casemock config - configuration utilities")

	w.HelpSection("Usage:")
	w.HelpUsage("casemock config <subcommand>")

	w.HelpSection("Subcommands:")
	w.HelpCommand("validate", "Check .casemock/config.json against its schema and rules", helpFlagWidthShort)

	w.HelpSection("Options:")
	w.HelpFlag("-h, --help", "Show this help", helpFlagWidthShort)

	w.HelpSection("Examples:")
	w.HelpExample("casemock config validate", "Validate project configuration")
	w.Println("")
}
