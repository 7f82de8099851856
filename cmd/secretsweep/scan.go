package secretsweep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/secretsweep/secretsweep/internal/audit"
	"github.com/secretsweep/secretsweep/internal/config"
	"github.com/secretsweep/secretsweep/internal/engine"
	"github.com/secretsweep/secretsweep/internal/ignore"
	"github.com/secretsweep/secretsweep/internal/report"
	"github.com/secretsweep/secretsweep/internal/types"
	"github.com/secretsweep/secretsweep/pkg/core"
)

var (
	flagPath            string
	flagProfile         string
	flagNoKeyword       bool
	flagNoEntropy       bool
	flagThreshold       float64
	flagMinLength       int
	flagMaxLength       int
	flagInclude         string
	flagExclude         string
	flagMaxBytes        int64
	flagDefaultExcludes bool
	flagGitignore       bool
	flagIgnoreFile      string
	flagTable           bool
	flagText            bool
	flagLog             bool
	flagHighlight       bool
	flagAudit           bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a directory tree for leaked credentials",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScan,
		Example: `  secretsweep scan .
  secretsweep scan ./repo --threshold 4.4 --max_length 40
  secretsweep scan --disable-entropy-search --fail-on keyword
  secretsweep scan --profile classic --sarif > results.sarif`,
	}
	rootCmd.AddCommand(cmd)

	def, _ := config.LookupProfile(config.ProfileDefault)
	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "path to scan")
	cmd.Flags().StringVar(&flagProfile, "profile", config.ProfileDefault, "detection profile: default (4.5, 8-128) | classic (4.4, 8-40)")
	cmd.Flags().BoolVar(&flagNoKeyword, "disable-keyword-search", false, "disable keyword-based secret search")
	cmd.Flags().BoolVar(&flagNoEntropy, "disable-entropy-search", false, "disable entropy-based secret search")
	cmd.Flags().Float64Var(&flagThreshold, "threshold", def.Threshold, "entropy threshold; tokens scoring above it are reported")
	cmd.Flags().IntVar(&flagMinLength, "min-length", def.MinLength, "minimum token length for entropy scoring")
	cmd.Flags().IntVar(&flagMaxLength, "max-length", def.MaxLength, "maximum token length for entropy scoring")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 0, "skip files larger than this (0 = no limit)")
	cmd.Flags().BoolVar(&flagDefaultExcludes, "default-excludes", false, "skip VCS and dependency dirs, images, archives and lockfiles")
	cmd.Flags().BoolVar(&flagGitignore, "gitignore", false, "skip paths ignored by .gitignore files")
	cmd.Flags().StringVar(&flagIgnoreFile, "ignore-file", "", "skip paths matched by this pattern file, relative to the scan root (e.g. "+ignore.FileName+")")
	cmd.Flags().BoolVar(&flagTable, "table", false, "output in table format with borders")
	cmd.Flags().BoolVar(&flagText, "text", false, "output in plain text columnar format (default)")
	cmd.Flags().BoolVar(&flagLog, "log", false, "output one log line per finding")
	cmd.Flags().BoolVar(&flagHighlight, "highlight", false, "syntax-highlight keyword lines in text output")
	cmd.Flags().BoolVar(&flagAudit, "audit", false, "append a summary record to the local audit log")
	_ = cmd.RegisterFlagCompletionFunc("profile", cobra.FixedCompletions(config.ProfileNames(), cobra.ShellCompDirectiveNoFileComp))
}

func runScan(cmd *cobra.Command, args []string) error {
	target := flagPath
	if len(args) == 1 {
		target = args[0]
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return err
	}

	// Load configs: CLI > local > global
	gcfg, err := loadOptionalConfig(config.LoadGlobal())
	if err != nil {
		return err
	}
	lcfg, err := loadOptionalConfig(config.LoadLocal(abs))
	if err != nil {
		return err
	}
	fc := config.Merge(lcfg, gcfg)

	det, err := resolveDetection(fc, detectionOverrides(cmd))
	if err != nil {
		return err
	}
	failOn, err := report.ParseFailOn(pickString(changedString(cmd, "fail-on", flagFailOn), fc.FailOn, nil))
	if err != nil {
		return err
	}

	cfg := engine.Config{
		Root:             abs,
		EnableKeyword:    det.Keyword,
		EnableEntropy:    det.Entropy,
		EntropyThreshold: det.Threshold,
		MinTokenLength:   det.MinLength,
		MaxTokenLength:   det.MaxLength,
		IncludeGlobs:     pickString(flagInclude, fc.Include, nil),
		ExcludeGlobs:     pickString(flagExclude, fc.Exclude, nil),
		MaxBytes:         pickInt64(flagMaxBytes, fc.MaxBytes, nil),
		Threads:          pickInt(flagThreads, fc.Threads, nil),
		DefaultExcludes:  pickChangedBool(cmd, "default-excludes", flagDefaultExcludes, fc.DefaultExcludes),
		RespectGitignore: pickChangedBool(cmd, "gitignore", flagGitignore, fc.Gitignore),
		IgnoreFile:       resolveIgnoreFile(abs, pickString(flagIgnoreFile, fc.IgnoreFile, nil)),
		OnFileError: func(fe engine.FileError) {
			log.WithFields(logrus.Fields{"path": fe.Path}).WithError(fe.Err).Warn("error reading file")
		},
	}
	noColor := flagNoColor || pickBool(false, fc.NoColor, nil) || os.Getenv("NO_COLOR") != "" || !isTerminal(os.Stdout)

	machine := flagJSON || flagSARIF || flagLog
	log.WithFields(logrus.Fields{
		"root":      abs,
		"keyword":   cfg.EnableKeyword,
		"entropy":   cfg.EnableEntropy,
		"threshold": cfg.EntropyThreshold,
		"min":       cfg.MinTokenLength,
		"max":       cfg.MaxTokenLength,
	}).Info("scan started")

	// Optional progress counter on an interactive stderr
	if !machine && isTerminal(os.Stderr) {
		if total, err := engine.CountTargets(cfg); err == nil && total > 0 {
			progressed := 0
			cfg.Progress = func() {
				progressed++
				if progressed%10 == 0 || progressed == total {
					pct := float64(progressed) / float64(total) * 100
					_, _ = fmt.Fprintf(os.Stderr, "\r[%d/%d] %.0f%%", progressed, total, pct)
				}
			}
			defer fmt.Fprintln(os.Stderr)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	res, err := engine.ScanWithStats(ctx, cfg)
	if err != nil {
		var te *engine.TraversalError
		if errors.As(err, &te) {
			return err
		}
		if !errors.Is(err, context.Canceled) {
			return fmt.Errorf("scan error: %w", err)
		}
		log.Warn("scan interrupted; reporting findings from completed files")
	}
	findings := res.Findings
	if findings == nil {
		findings = []types.Finding{}
	}
	log.WithFields(logrus.Fields{
		"findings":      len(findings),
		"files_scanned": res.FilesScanned,
		"file_errors":   len(res.FileErrors),
		"duration":      res.Duration.String(),
	}).Info("scan finished")

	opts := report.PrintOptions{
		NoColor:      noColor,
		Highlight:    flagHighlight,
		Duration:     res.Duration,
		FilesScanned: res.FilesScanned,
		FileErrors:   len(res.FileErrors),
	}
	if err := writeReport(cmd.OutOrStdout(), findings, res, opts); err != nil {
		return err
	}

	if flagAudit {
		a := audit.NewAuditLog(abs)
		rec := audit.CreateScanRecord(abs, findings, res.FilesScanned, len(res.FileErrors), res.Duration)
		if err := a.LogScan(rec); err != nil {
			log.WithError(err).Warn("audit log not written")
		} else if rel, ok := withinRoot(abs, a.Path()); ok && cfg.IgnoreFile != "" {
			// keep later scans from reading the log
			if err := ignore.Append(cfg.IgnoreFile, "/"+filepath.ToSlash(rel)); err != nil {
				log.WithError(err).Warn("could not add audit log to " + cfg.IgnoreFile)
			}
		}
	}

	if err != nil {
		return err
	}
	if report.ShouldFail(findings, failOn) {
		os.Exit(exitFindings)
	}
	return nil
}

func writeReport(w io.Writer, findings []types.Finding, res engine.Result, opts report.PrintOptions) error {
	switch {
	case flagSARIF:
		stats := map[string]int{"filesScanned": res.FilesScanned, "fileErrors": len(res.FileErrors)}
		if err := report.WriteSARIFWithStats(w, findings, stats); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
	case flagJSON:
		return core.MarshalFindings(w, findings)
	case flagLog:
		fl := logrus.New()
		fl.SetOutput(w)
		fl.SetFormatter(log.Formatter)
		fl.SetLevel(logrus.InfoLevel)
		report.PrintLog(fl, findings)
	case flagTable:
		report.PrintTable(w, findings, opts)
	default:
		report.PrintText(w, findings, opts)
	}
	return nil
}

// detectionFlags carries the detection flags the user actually set.
type detectionFlags struct {
	Profile   *string
	NoKeyword *bool
	NoEntropy *bool
	Threshold *float64
	MinLength *int
	MaxLength *int
}

func detectionOverrides(cmd *cobra.Command) detectionFlags {
	var o detectionFlags
	fl := cmd.Flags()
	if fl.Changed("profile") {
		o.Profile = &flagProfile
	}
	if fl.Changed("disable-keyword-search") {
		o.NoKeyword = &flagNoKeyword
	}
	if fl.Changed("disable-entropy-search") {
		o.NoEntropy = &flagNoEntropy
	}
	if fl.Changed("threshold") {
		o.Threshold = &flagThreshold
	}
	if fl.Changed("min-length") {
		o.MinLength = &flagMinLength
	}
	if fl.Changed("max-length") {
		o.MaxLength = &flagMaxLength
	}
	return o
}

// resolveDetection applies CLI overrides on top of the file config. A
// profile named on the command line replaces the file's profile and the
// file's explicit detection values.
func resolveDetection(fc config.FileConfig, o detectionFlags) (config.Detection, error) {
	if o.Profile != nil {
		fc = config.FileConfig{Profile: o.Profile}
	}
	if o.NoKeyword != nil {
		on := !*o.NoKeyword
		fc.Keyword = &on
	}
	if o.NoEntropy != nil {
		on := !*o.NoEntropy
		fc.Entropy = &on
	}
	if o.Threshold != nil {
		fc.Threshold = o.Threshold
	}
	if o.MinLength != nil {
		fc.MinLength = o.MinLength
	}
	if o.MaxLength != nil {
		fc.MaxLength = o.MaxLength
	}
	return fc.Detection()
}

// loadOptionalConfig treats a missing config file as empty and passes
// every other error through.
func loadOptionalConfig(fc config.FileConfig, err error) (config.FileConfig, error) {
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config.FileConfig{}, nil
		}
		return config.FileConfig{}, fmt.Errorf("config: %w", err)
	}
	return fc, nil
}

// resolveIgnoreFile anchors a relative ignore file path at the scan root.
func resolveIgnoreFile(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// withinRoot returns p relative to root when p lies inside root.
func withinRoot(root, p string) (string, bool) {
	rel, err := filepath.Rel(root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
