package secretsweep

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/secretsweep/secretsweep/internal/config"
)

var (
	cfgProfile         string
	cfgOutput          string
	cfgThreads         int
	cfgMaxBytes        int64
	cfgNoColor         bool
	cfgDefaultExcludes bool
	cfgGitignore       bool
	cfgFailOn          string
	cfgForce           bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .secretsweep.yml for a detection profile",
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgProfile, "profile", config.ProfileDefault, "detection profile: "+strings.Join(config.ProfileNames(), " | "))
	initCmd.Flags().StringVar(&cfgOutput, "output", ".secretsweep.yml", "output file path")
	initCmd.Flags().IntVar(&cfgThreads, "threads", 0, "worker threads (0=GOMAXPROCS)")
	initCmd.Flags().Int64Var(&cfgMaxBytes, "max-bytes", 0, "skip files larger than this (0 = no limit)")
	initCmd.Flags().BoolVar(&cfgNoColor, "no-color", false, "disable color output by default")
	initCmd.Flags().BoolVar(&cfgDefaultExcludes, "default-excludes", false, "skip VCS and dependency dirs, images, archives and lockfiles by default")
	initCmd.Flags().BoolVar(&cfgGitignore, "gitignore", false, "honour .gitignore files")
	initCmd.Flags().StringVar(&cfgFailOn, "fail-on", "any", "exit 1 when findings match: any|keyword|entropy|never")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	fc, err := newFileConfig(cfgProfile)
	if err != nil {
		return err
	}
	if !cfgForce {
		if _, err := os.Stat(cfgOutput); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", cfgOutput)
		}
	}
	b, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfgOutput, b, 0644); err != nil {
		return err
	}
	fmt.Println("Wrote", cfgOutput)
	return nil
}

// newFileConfig spells out the profile's detection values so the file
// documents what the scan will use.
func newFileConfig(profile string) (config.FileConfig, error) {
	d, err := config.LookupProfile(profile)
	if err != nil {
		return config.FileConfig{}, err
	}
	failOn := strings.ToLower(strings.TrimSpace(cfgFailOn))
	return config.FileConfig{
		Profile:         strPtr(strings.ToLower(strings.TrimSpace(profile))),
		Keyword:         boolPtr(d.Keyword),
		Entropy:         boolPtr(d.Entropy),
		Threshold:       floatPtr(d.Threshold),
		MinLength:       intPtr(d.MinLength),
		MaxLength:       intPtr(d.MaxLength),
		MaxBytes:        optInt64Ptr(cfgMaxBytes),
		Threads:         intPtr(cfgThreads),
		DefaultExcludes: boolPtr(cfgDefaultExcludes),
		Gitignore:       boolPtr(cfgGitignore),
		NoColor:         boolPtr(cfgNoColor),
		FailOn:          optStrPtr(failOn),
	}, nil
}

func strPtr(s string) *string { return &s }
func optStrPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
func intPtr(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
func optInt64Ptr(v int64) *int64 {
	if v == 0 {
		return nil
	}
	return &v
}
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }
