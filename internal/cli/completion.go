package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a command-line flag for completion scripts.
// Every generator reads flagRegistry, so a new flag only needs an entry
// there.
type FlagCompletion struct {
	Long      string   // long name without "--"
	Short     string   // short name without "-"
	Help      string   // description text
	Values    []string // suggested values (nil = boolean or free-form)
	ValueName string   // label of the value in zsh; empty for booleans
	IsFile    bool     // the flag takes a file path
	IsAlgo    bool     // values come from the multiplier registry
}

// ShellNames lists the shells accepted by GenerateCompletion.
var ShellNames = []string{"bash", "zsh", "fish"}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Help: "Show version information"},
	{Short: "x", Help: "First operand", ValueName: "integer"},
	{Short: "y", Help: "Second operand", ValueName: "integer"},
	{Long: "base", Help: "Input base of the operands", Values: []string{"0", "2", "8", "10", "16"}, ValueName: "base"},
	{Long: "x-bits", Help: "Random first operand of this many bits", Values: []string{"1024", "65536", "1048576"}, ValueName: "bits"},
	{Long: "y-bits", Help: "Random second operand of this many bits", Values: []string{"1024", "65536", "1048576"}, ValueName: "bits"},
	{Long: "seed", Help: "Seed of the random operands", ValueName: "seed"},
	{Long: "algo", Help: "Multiplier to use", IsAlgo: true, ValueName: "algorithm"},
	{Long: "threshold", Help: "Parallel threshold in bits", Values: []string{"0", "1024", "4096", "16384", "65536"}, ValueName: "bits"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"10s", "1m", "5m", "30m"}, ValueName: "duration"},
	{Long: "trace", Help: "Print the recursion trace"},
	{Long: "tui", Help: "Explore the recursion trace"},
	{Long: "verbose", Short: "v", Help: "Verbose output"},
	{Long: "details", Short: "d", Help: "Show recursion statistics"},
	{Long: "quiet", Short: "q", Help: "Print only the product"},
	{Long: "calculate", Short: "c", Help: "Show the product value"},
	{Long: "output", Short: "o", Help: "Write the product to a file", IsFile: true, ValueName: "file"},
	{Long: "metrics-out", Help: "Write Prometheus metrics to a file", IsFile: true, ValueName: "file"},
	{Long: "calibrate", Help: "Run calibration mode"},
	{Long: "auto-calibrate", Help: "Calibrate before multiplying"},
	{Long: "calibration-profile", Help: "Calibration profile file", IsFile: true, ValueName: "file"},
	{Long: "memory-limit", Help: "Maximum estimated memory", Values: []string{"256M", "1G", "4G"}, ValueName: "size"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "interactive", Short: "i", Help: "Start the interactive session"},
	{Long: "completion", Help: "Generate completion script", Values: ShellNames, ValueName: "shell"},
}

// GenerateCompletion writes a completion script for shell to out.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: One of ShellNames.
//   - algorithms: Registered multiplier names offered for --algo.
//
// Returns:
//   - error: An error if the shell is not supported or the write fails.
func GenerateCompletion(out io.Writer, shell string, algorithms []string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(algorithms)
	case "zsh":
		script = zshCompletion(algorithms)
	case "fish":
		script = fishCompletion(algorithms)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: %s)", shell, strings.Join(ShellNames, ", "))
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

// flagNames returns the dashed spellings of f.
func flagNames(f FlagCompletion) []string {
	var names []string
	if f.Long != "" {
		names = append(names, "--"+f.Long)
	}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

func bashCompletion(algorithms []string) string {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		names := flagNames(f)
		opts = append(opts, names...)

		var body string
		switch {
		case f.IsAlgo:
			body = `COMPREPLY=( $(compgen -W "${algorithms}" -- "${cur}") )`
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(f.Values) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		default:
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n", strings.Join(names, "|"), body)
	}

	return fmt.Sprintf(`# Bash completion script for karatsuba
# Add this to your ~/.bashrc or ~/.bash_completion

_karatsuba_completions() {
    local cur prev opts algorithms
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"
    algorithms="%s all"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _karatsuba_completions karatsuba
`, strings.Join(opts, " "), strings.Join(algorithms, " "), cases.String())
}

func zshCompletion(algorithms []string) string {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}
	return fmt.Sprintf(`#compdef karatsuba

# Zsh completion script for karatsuba
# Place this file in $fpath as _karatsuba

_karatsuba() {
    local -a algorithms
    algorithms=(%s all)

    _arguments -s \
%s
}

_karatsuba "$@"
`, strings.Join(algorithms, " "), strings.Join(args, " \\\n"))
}

// zshArgEntry formats f as an _arguments spec.
func zshArgEntry(f FlagCompletion) string {
	var value string
	switch {
	case f.IsFile:
		value = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsAlgo:
		value = fmt.Sprintf(":%s:($algorithms)", f.ValueName)
	case len(f.Values) > 0:
		value = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		value = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, f.Help, value)
	}
	return fmt.Sprintf("        '%s[%s]%s'", flagNames(f)[0], f.Help, value)
}

func fishCompletion(algorithms []string) string {
	lines := []string{
		"# Fish completion script for karatsuba",
		"# Add this to ~/.config/fish/completions/karatsuba.fish",
		"",
		"complete -c karatsuba -f",
	}
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f, algorithms))
	}
	return strings.Join(lines, "\n") + "\n"
}

func fishCompleteLine(f FlagCompletion, algorithms []string) string {
	parts := []string{"complete -c karatsuba"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	if f.Long != "" {
		parts = append(parts, "-l "+f.Long)
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case f.IsAlgo:
		parts = append(parts, fmt.Sprintf("-xa '%s all'", strings.Join(algorithms, " ")))
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}
