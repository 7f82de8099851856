package secretsweep

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// ciTemplate returns where a provider's template goes and what it holds.
func ciTemplate(provider string) (path, content string, mode os.FileMode, err error) {
	switch provider {
	case "gitlab":
		return ".gitlab-ci.yml", `stages: [scan]
secretsweep:
  stage: scan
  image: golang:1.25
  script:
    - go install github.com/secretsweep/secretsweep@latest
    - secretsweep scan --json --fail-on any | tee secretsweep-findings.json
  artifacts:
    when: always
    paths:
      - secretsweep-findings.json
`, 0644, nil
	case "bitbucket":
		return "bitbucket-pipelines.yml", `pipelines:
  default:
    - step:
        name: secretsweep
        image: golang:1.25
        caches:
          - go
        script:
          - go install github.com/secretsweep/secretsweep@latest
          - secretsweep scan --json --fail-on any | tee secretsweep-findings.json
        artifacts:
          - secretsweep-findings.json
`, 0644, nil
	case "azure":
		return "azure-pipelines.yml", `trigger:
- main

pool:
  vmImage: 'ubuntu-latest'

steps:
- task: GoTool@0
  inputs:
    version: '1.25.x'
- script: |
    go install github.com/secretsweep/secretsweep@latest
    $(go env GOPATH)/bin/secretsweep scan --sarif --fail-on any > secretsweep.sarif
  displayName: 'secretsweep'
- publish: secretsweep.sarif
  artifact: secretsweep-sarif
  condition: succeededOrFailed()
`, 0644, nil
	case "pre-commit":
		return filepath.Join(".git", "hooks", "pre-commit"), `#!/bin/sh
# Block commits that add leaked credentials.
exec secretsweep scan --text --fail-on any .
`, 0755, nil
	default:
		return "", "", 0, fmt.Errorf("unknown --provider %q. Supported: gitlab, bitbucket, azure, pre-commit", provider)
	}
}

func init() {
	ci := &cobra.Command{Use: "ci", Short: "CI template helpers for multiple providers"}
	rootCmd.AddCommand(ci)

	var provider string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a CI pipeline template or a git pre-commit hook",
		RunE: func(_ *cobra.Command, _ []string) error {
			path, content, mode, err := ciTemplate(provider)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(content), mode); err != nil {
				return err
			}
			fmt.Println("Wrote", path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&provider, "provider", "", "CI provider: gitlab | bitbucket | azure | pre-commit")
	_ = initCmd.RegisterFlagCompletionFunc("provider", cobra.FixedCompletions(
		[]string{"gitlab", "bitbucket", "azure", "pre-commit"}, cobra.ShellCompDirectiveNoFileComp))
	if err := initCmd.MarkFlagRequired("provider"); err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not mark --provider as required:", err)
	}
	ci.AddCommand(initCmd)
}
