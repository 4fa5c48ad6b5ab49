package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/AndreyAkinshin/casemock/internal/config"
	"github.com/AndreyAkinshin/casemock/internal/errors"
	"github.com/AndreyAkinshin/casemock/internal/output"
	"github.com/AndreyAkinshin/casemock/internal/project"
)

// cmdInit creates .casemock/config.json in the current directory.
// This command is idempotent: an existing configuration is validated and
// left untouched.
func cmdInit(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printInitUsage()
		return 0
	}
	if len(args) > 0 {
		out.ErrorPrefix("init: unexpected argument %q", args[0])
		return errors.ExitConfigError
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fail(errors.Wrap(err, "cannot determine working directory"))
	}

	configDir := filepath.Join(cwd, project.ConfigDirName)
	configPath := filepath.Join(configDir, project.ConfigFileName)
	rel := filepath.Join(project.ConfigDirName, project.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil {
		cfg, warnings, err := config.LoadAndValidate(configPath)
		for _, w := range warnings {
			out.WarningSimple("%s", w)
		}
		if err != nil {
			return fail(errors.Validation(rel, err))
		}
		out.Info("Project already initialized (nothing to do)")
		out.SummaryItem("Catalog", cfg.Catalog)
		return 0
	}

	cfg := &config.Config{
		Project: &config.ProjectConfig{Name: sanitizeProjectName(filepath.Base(cwd))},
		Catalog: config.DefaultCatalog,
	}
	if opts.Catalog != "" {
		cfg.Catalog = filepath.ToSlash(opts.Catalog)
	}
	if opts.Format != "" {
		cfg.Format = opts.Format
	}
	if opts.ToleranceSet {
		eps := opts.Tolerance
		cfg.Tolerance = &eps
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fail(errors.Wrap(err, "cannot encode configuration"))
	}
	data = append(data, '\n')

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fail(errors.Environment("cannot create configuration directory", err))
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fail(errors.Environment("cannot write configuration", err))
	}

	out.ValidationSuccess("Initialized casemock project: %s", cfg.Project.Name)
	out.HelpSection("Created:")
	out.Println("  - %s", filepath.ToSlash(rel))

	catalogPath := project.ResolvePath(cwd, cfg.Catalog)
	if _, err := os.Stat(catalogPath); err != nil {
		out.Hint("No catalog at %s yet; record test cases there before running lookups.", cfg.Catalog)
	}
	printNextSteps(out)
	return 0
}

// sanitizeProjectName converts a directory name to a valid project name.
func sanitizeProjectName(name string) string {
	name = strings.ToLower(name)

	var result strings.Builder
	prevHyphen := false
	for _, c := range name {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			result.WriteRune(c)
			prevHyphen = false
		} else if !prevHyphen && result.Len() > 0 {
			result.WriteRune('-')
			prevHyphen = true
		}
	}

	s := strings.TrimSuffix(result.String(), "-")

	// Must start with a letter.
	if len(s) > 0 && s[0] >= '0' && s[0] <= '9' {
		s = "project-" + s
	}
	if s == "" {
		s = "my-project"
	}
	return s
}

func printNextSteps(w *output.Writer) {
	if w.Quiet() {
		return
	}
	w.HelpSection("Next steps:")
	w.Println("  1. Edit .casemock/config.json to point at your catalog")
	w.Println("  2. Run 'casemock check' to load and summarize it")
	w.Println("  3. Run 'casemock lookup <json>' to replay a recorded case")
	w.Println("")
}

func printInitUsage() {
	w := out

	w.HelpTitle("casemock init - create a project configuration")

	w.HelpSection("Usage:")
	w.HelpUsage("casemock [--catalog=<path>] [--format=<format>] [--tolerance=<eps>] init")

	w.HelpSection("Description:")
	w.Println("  Writes .casemock/config.json in the current directory. Global flags")
	w.Println("  given before init are stored in the new configuration. An existing")
	w.Println("  configuration is validated and left unchanged.")

	w.HelpSection("Options:")
	w.HelpFlag("-h, --help", "Show this help", helpFlagWidthShort)
	w.Println("")
}
