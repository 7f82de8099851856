package secretsweep

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/secretsweep/secretsweep/internal/audit"
	"github.com/secretsweep/secretsweep/internal/types"
)

func init() {
	var limit int
	cmd := &cobra.Command{
		Use:   "history [path]",
		Short: "List scans recorded in the audit log",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			abs, err := filepath.Abs(root)
			if err != nil {
				return err
			}
			a := audit.NewAuditLog(abs)
			records, err := a.LoadHistory()
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("no audit log at %s (run scan --audit first)", a.Path())
				}
				return err
			}
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}
			w := cmd.OutOrStdout()
			if flagJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}
			table := tablewriter.NewWriter(w)
			table.Header("When", "Scan", "Findings", "Keyword", "Entropy", "Files", "Errors", "Duration")
			for _, r := range records {
				_ = table.Append([]string{
					r.Timestamp.Local().Format("2006-01-02 15:04:05"),
					r.ScanID,
					strconv.Itoa(r.TotalFindings),
					strconv.Itoa(r.KindCounts[string(types.KindKeyword)]),
					strconv.Itoa(r.KindCounts[string(types.KindEntropy)]),
					strconv.Itoa(r.FilesScanned),
					strconv.Itoa(r.FileErrors),
					r.Duration,
				})
			}
			return table.Render()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "show at most this many records (0 = all)")
	rootCmd.AddCommand(cmd)
}
