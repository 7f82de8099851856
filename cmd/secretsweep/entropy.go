package secretsweep

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/secretsweep/secretsweep/internal/detectors"
)

func init() {
	var threshold float64
	cmd := &cobra.Command{
		Use:   "entropy <string>...",
		Short: "Print the Shannon entropy of each argument",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, s := range args {
				e := detectors.Entropy(s)
				mark := ""
				if e > threshold {
					mark = "  (above threshold)"
				}
				_, _ = fmt.Fprintf(w, "%.4f\t%d\t%s%s\n", e, len([]rune(s)), s, mark)
			}
			return nil
		},
		Example: `  secretsweep entropy 'aB3$kL9!qZ7&mN2@pR5^tY8'
  secretsweep entropy --threshold 4.4 hello world`,
	}
	cmd.Flags().Float64Var(&threshold, "threshold", 4.5, "mark values scoring above this")
	rootCmd.AddCommand(cmd)
}
