package cli

import (
	"fmt"
	"strings"

	"github.com/AndreyAkinshin/casemock/internal/catalog"
	"github.com/AndreyAkinshin/casemock/internal/errors"
)

// cmdCompletion generates shell completion scripts.
func cmdCompletion(args []string) int {
	shell := ""
	alias := ""

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help":
			printCompletionUsage()
			return 0
		case strings.HasPrefix(arg, "--alias="):
			alias = strings.TrimPrefix(arg, "--alias=")
		case arg == "--alias":
			out.ErrorPrefix("completion: --alias requires a value (--alias=<name>)")
			return errors.ExitConfigError
		case strings.HasPrefix(arg, "-"):
			out.ErrorPrefix("completion: unknown flag: %s", arg)
			printCompletionUsage()
			return errors.ExitConfigError
		default:
			if shell != "" {
				out.ErrorPrefix("completion: unexpected argument: %s", arg)
				return errors.ExitConfigError
			}
			shell = arg
		}
	}

	if shell == "" {
		out.ErrorPrefix("completion: shell required (bash, zsh, fish)")
		printCompletionUsage()
		return errors.ExitConfigError
	}

	cmdName := "casemock"
	if alias != "" {
		cmdName = alias
	}

	switch shell {
	case "bash":
		out.Print("%s", generateBashCompletion(cmdName))
	case "zsh":
		out.Print("%s", generateZshCompletion(cmdName))
	case "fish":
		out.Print("%s", generateFishCompletion(cmdName))
	default:
		out.ErrorPrefix("completion: unsupported shell %q (use bash, zsh, or fish)", shell)
		return errors.ExitConfigError
	}
	return 0
}

func printCompletionUsage() {
	w := out

	w.HelpTitle("casemock completion - generate shell completion scripts")

	w.HelpSection("Usage:")
	w.HelpUsage("casemock completion <shell> [--alias=<name>]")

	w.HelpSection("Arguments:")
	w.HelpFlag("<shell>", "Shell type: bash, zsh, or fish", 10)

	w.HelpSection("Options:")
	w.HelpFlag("--alias=<name>", "Generate completion for command alias", 14)
	w.HelpFlag("-h, --help", "Show this help", 14)

	w.HelpSection("Examples:")
	w.HelpExample("casemock completion bash", "Generate bash completion")
	w.HelpExample("casemock completion fish", "Generate fish completion")
	w.HelpExample("casemock completion zsh --alias=cm", "Generate zsh completion for alias 'cm'")

	w.HelpSection("Installation:")
	w.Println("  Bash:  eval \"$(casemock completion bash)\"")
	w.Println("  Zsh:   eval \"$(casemock completion zsh)\"")
	w.Println("  Fish:  casemock completion fish | source")
	w.Println("")
}

// completionItem is a command or flag with its description.
type completionItem struct {
	Name string
	Desc string
}

func builtinCommands() []completionItem {
	return []completionItem{
		{"lookup", "Print the recorded output for an input"},
		{"batch", "Look up every JSON line of a file"},
		{"explain", "Show why an input matches or not"},
		{"check", "Load and summarize the catalog"},
		{"init", "Create .casemock/config.json"},
		{"config", "Configuration utilities"},
		{"completion", "Generate shell completion"},
		{"version", "Show version information"},
		{"help", "Show help"},
	}
}

func globalFlags() []completionItem {
	return []completionItem{
		{"--quiet", "Minimal output"},
		{"--verbose", "Debug logging"},
		{"--catalog", "Catalog file"},
		{"--format", "Catalog format"},
		{"--tolerance", "Numeric tolerance"},
		{"--help", "Show help"},
		{"--version", "Show version"},
	}
}

func names(items []completionItem) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.Name
	}
	return strings.Join(parts, " ")
}

func aliasNote(cmdName string) string {
	if cmdName == "casemock" {
		return ""
	}
	return fmt.Sprintf("# Generated for the alias %q (alias %s=\"casemock\")\n", cmdName, cmdName)
}

func generateBashCompletion(cmdName string) string {
	funcName := "_" + strings.ReplaceAll(cmdName, "-", "_") + "_completions"
	formats := strings.Join(catalog.ValidFormats(), " ")

	return fmt.Sprintf(`# casemock bash completion
# Add to ~/.bashrc: eval "$(casemock completion bash)"
%s
%s() {
    local cur prev words cword
    _init_completion || return

    local commands="%s"
    local flags="%s"

    case "${prev}" in
        %s)
            COMPREPLY=($(compgen -W "${commands} ${flags}" -- "${cur}"))
            return
            ;;
        config)
            COMPREPLY=($(compgen -W "validate" -- "${cur}"))
            return
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "${cur}"))
            return
            ;;
        --format)
            COMPREPLY=($(compgen -W "%s" -- "${cur}"))
            return
            ;;
        --catalog|batch)
            _filedir
            return
            ;;
        check)
            COMPREPLY=($(compgen -W "--all --depth=" -- "${cur}"))
            return
            ;;
    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=($(compgen -W "${flags}" -- "${cur}"))
        return
    fi
    COMPREPLY=($(compgen -W "${commands}" -- "${cur}"))
}

complete -F %s %s
`, aliasNote(cmdName), funcName, names(builtinCommands()), names(globalFlags()), cmdName, formats, funcName, cmdName)
}

func generateZshCompletion(cmdName string) string {
	funcName := "_" + strings.ReplaceAll(cmdName, "-", "_")

	var cmds strings.Builder
	for _, c := range builtinCommands() {
		fmt.Fprintf(&cmds, "        '%s:%s'\n", c.Name, c.Desc)
	}
	var flags strings.Builder
	for _, f := range globalFlags() {
		fmt.Fprintf(&flags, "        '%s[%s]'\n", f.Name, f.Desc)
	}

	return fmt.Sprintf(`#compdef %s
# casemock zsh completion
# Add to ~/.zshrc: eval "$(casemock completion zsh)"
%s
%s() {
    local -a commands flags

    commands=(
%s    )

    flags=(
%s    )

    if (( CURRENT == 2 )); then
        _describe -t commands 'command' commands
        _arguments -s $flags[@]
        return
    fi

    case "${words[2]}" in
        config)
            _values 'config subcommand' validate
            ;;
        completion)
            _values 'shell' bash zsh fish
            ;;
        batch)
            _files
            ;;
        check)
            _values 'option' --all --depth=
            ;;
        *)
            _arguments -s $flags[@]
            ;;
    esac
}

compdef %s %s
`, cmdName, aliasNote(cmdName), funcName, cmds.String(), flags.String(), funcName, cmdName)
}

func generateFishCompletion(cmdName string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `# casemock fish completion
# Add to config: casemock completion fish | source
%s
complete -c %s -f

`, aliasNote(cmdName), cmdName)

	for _, c := range builtinCommands() {
		fmt.Fprintf(&sb, "complete -c %s -n '__fish_use_subcommand' -a '%s' -d '%s'\n", cmdName, c.Name, c.Desc)
	}

	sb.WriteString("\n# Global flags\n")
	for _, f := range globalFlags() {
		long := strings.TrimPrefix(f.Name, "--")
		switch long {
		case "catalog":
			fmt.Fprintf(&sb, "complete -c %s -l %s -d '%s' -rF\n", cmdName, long, f.Desc)
		case "format":
			fmt.Fprintf(&sb, "complete -c %s -l %s -d '%s' -xa '%s'\n", cmdName, long, f.Desc, strings.Join(catalog.ValidFormats(), " "))
		default:
			fmt.Fprintf(&sb, "complete -c %s -l %s -d '%s'\n", cmdName, long, f.Desc)
		}
	}

	sb.WriteString("\n# Subcommands\n")
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from config' -a 'validate' -d 'Validate configuration'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from check' -l all -d 'Check every discovered catalog'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from batch' -F\n", cmdName)

	return sb.String()
}
