package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AndreyAkinshin/casemock/internal/catalog"
	"github.com/AndreyAkinshin/casemock/internal/errors"
	"github.com/AndreyAkinshin/casemock/internal/mock"
	"github.com/AndreyAkinshin/casemock/internal/project"
	"github.com/AndreyAkinshin/casemock/internal/value"
)

// defaultDiscoverDepth bounds check --all when --depth is not given.
const defaultDiscoverDepth = 4

// checkOptions holds parsed check command options.
type checkOptions struct {
	All   bool
	Depth int
}

func parseCheckArgs(args []string) (checkOptions, error) {
	opts := checkOptions{Depth: defaultDiscoverDepth}
	for _, arg := range args {
		switch {
		case arg == "--all":
			opts.All = true
		case strings.HasPrefix(arg, "--depth="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "--depth="))
			if err != nil || n < 1 {
				return opts, fmt.Errorf("invalid --depth value %q: must be a positive integer", strings.TrimPrefix(arg, "--depth="))
			}
			opts.Depth = n
		default:
			return opts, fmt.Errorf("unknown argument: %s", arg)
		}
	}
	return opts, nil
}

// cmdCheck loads the catalog and reports what it contains.
func cmdCheck(ctx context.Context, args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printCheckUsage()
		return 0
	}
	copts, err := parseCheckArgs(args)
	if err != nil {
		out.ErrorPrefix("check: %v", err)
		return errors.ExitConfigError
	}

	s, code := openSession(opts)
	if s == nil {
		return code
	}
	if copts.All {
		return checkAll(ctx, s, copts.Depth)
	}

	cat, err := s.Mock.Load(ctx)
	if err != nil {
		return fail(err)
	}

	out.ValidationSuccess("catalog is valid")
	out.SummaryItem("Catalog", s.CatalogPath)
	out.SummaryItem("Records", strconv.Itoa(cat.Len()))
	out.SummaryItem("Tolerance", strconv.FormatFloat(s.Mock.Tolerance(), 'g', -1, 64))
	printKindBreakdown(cat)
	return 0
}

// printKindBreakdown lists how many records have inputs of each kind.
func printKindBreakdown(cat *catalog.Catalog) {
	if cat.Len() == 0 {
		return
	}
	title := cases.Title(language.English)
	summary := cat.Summary()
	for _, k := range value.AllKinds() {
		if n := summary[k]; n > 0 {
			out.SummaryItem(title.String(k.String())+" inputs", strconv.Itoa(n))
		}
	}
}

// checkAll loads every discovered catalog below the session root. The exit
// code is that of the first failing catalog.
func checkAll(ctx context.Context, s *session, depth int) int {
	paths, err := project.DiscoverCatalogs(s.Root, depth)
	if err != nil {
		return fail(errors.Environment("check: cannot scan project", err))
	}
	if len(paths) == 0 {
		out.Notice("no test_cases/test_cases.json found below %s", s.Root)
		return 0
	}

	exit := 0
	rows := make([][]string, 0, len(paths))
	for _, rel := range paths {
		if ctx.Err() != nil {
			out.ErrorPrefix("%v", ctx.Err())
			return errors.ExitRuntimeError
		}
		path := filepath.Join(s.Root, rel)
		m := mock.New(catalog.NewFileLoader(path, catalog.FormatAuto), mock.WithTolerance(s.Mock.Tolerance()))
		cat, err := m.Load(ctx)
		if err != nil {
			rows = append(rows, []string{rel, "-", err.Error()})
			if exit == 0 {
				exit = errors.GetExitCode(err)
			}
			continue
		}
		rows = append(rows, []string{rel, strconv.Itoa(cat.Len()), "ok"})
	}

	out.Table([]string{"CATALOG", "RECORDS", "STATUS"}, rows)
	if exit != 0 {
		out.ErrorPrefix("%d catalog(s) checked, at least one failed", len(paths))
	}
	return exit
}

func printCheckUsage() {
	w := out

	w.HelpTitle("casemock check - load the catalog and summarize it")

	w.HelpSection("Usage:")
	w.HelpUsage("casemock check [--all] [--depth=<n>]")

	w.HelpSection("Description:")
	w.Println("  Loads the configured catalog and reports the record count and the")
	w.Println("  kinds of recorded inputs. With --all, every test_cases/test_cases.json")
	w.Println("  below the project root is loaded and listed in a table.")

	w.HelpSection("Options:")
	w.HelpFlag("--all", "Check every discovered catalog", helpFlagWidthGlobal)
	w.HelpFlag("--depth=<n>", "Directory depth for --all (default 4)", helpFlagWidthGlobal)
	w.HelpFlag("-h, --help", "Show this help", helpFlagWidthGlobal)
	w.Println("")
}
