package secretsweep

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
)

// completionShells maps a shell name to its script generator.
var completionShells = map[string]func(w io.Writer) error{
	"bash":       func(w io.Writer) error { return rootCmd.GenBashCompletionV2(w, true) },
	"zsh":        func(w io.Writer) error { return rootCmd.GenZshCompletion(w) },
	"fish":       func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) },
	"powershell": func(w io.Writer) error { return rootCmd.GenPowerShellCompletionWithDesc(w) },
}

func shellNames() []string {
	names := make([]string, 0, len(completionShells))
	for n := range completionShells {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func init() {
	cmd := &cobra.Command{
		Use:   "completion <shell>",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for secretsweep to stdout.

The script completes subcommands, flags such as --profile and --fail-on, and
the provider names accepted by "ci init". Source it from your shell profile or
install it where your shell looks for completions.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: shellNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, ok := completionShells[args[0]]
			if !ok {
				return fmt.Errorf("unsupported shell %q (want one of %v)", args[0], shellNames())
			}
			return gen(cmd.OutOrStdout())
		},
		Example: `  source <(secretsweep completion bash)
  secretsweep completion zsh > "${fpath[1]}/_secretsweep"
  secretsweep completion fish > ~/.config/fish/completions/secretsweep.fish`,
	}
	rootCmd.AddCommand(cmd)
}
