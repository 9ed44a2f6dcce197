package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"arcstream/cmcd/pkg/cli"
	"arcstream/cmcd/pkg/policy"
)

var lintFlags struct {
	file   string
	dir    string
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate policy files",
	Long: `Validate CMCD policy files for syntax and semantic errors.

The lint command parses policy documents and performs the same validation
the library applies before activating a policy:
  - YAML syntax and UTF-8 encoding
  - Key syntax in denied_keys
  - Custom data groups, key collisions, and value formatting
  - Throughput cap settings

Examples:
  # Lint single file
  cmcdctl lint --file policy.yaml

  # Lint directory
  cmcdctl lint --dir policies/

  # JSON output for CI/CD
  cmcdctl lint --file policy.yaml --format json`,
	RunE: lintPolicies,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "policy file to validate")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of policy files")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

func lintPolicies(cmd *cobra.Command, args []string) error {
	if lintFlags.file == "" && lintFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}

	var files []string

	if lintFlags.file != "" {
		files = append(files, lintFlags.file)
	}

	if lintFlags.dir != "" {
		matches, err := filepath.Glob(filepath.Join(lintFlags.dir, "*.yaml"))
		if err != nil {
			return fmt.Errorf("failed to list policy files: %w", err)
		}
		ymlMatches, err := filepath.Glob(filepath.Join(lintFlags.dir, "*.yml"))
		if err != nil {
			return fmt.Errorf("failed to list policy files: %w", err)
		}
		files = append(files, matches...)
		files = append(files, ymlMatches...)
	}

	if len(files) == 0 {
		return fmt.Errorf("no policy files found")
	}

	results := make([]ValidationResult, 0, len(files))

	for _, file := range files {
		results = append(results, validatePolicyFile(file))
	}

	if lintFlags.format == "json" {
		return outputJSON(results)
	}
	return outputText(results)
}

// ValidationResult represents the validation result for a single policy file.
type ValidationResult struct {
	File   string        `json:"file"`
	Valid  bool          `json:"valid"`
	Issues []PolicyIssue `json:"issues,omitempty"`
}

// PolicyIssue represents a single validation error.
type PolicyIssue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func validatePolicyFile(path string) ValidationResult {
	result := ValidationResult{
		File:  path,
		Valid: true,
	}

	_, err := policy.Load(path)
	if err == nil {
		return result
	}
	result.Valid = false

	var verr policy.ValidationError
	if errors.As(err, &verr) {
		for _, fieldErr := range verr.Errors {
			result.Issues = append(result.Issues, PolicyIssue{
				Field:   fieldErr.Field,
				Message: fieldErr.Message,
			})
		}
		return result
	}

	// Load and parse failures carry no field position.
	result.Issues = append(result.Issues, PolicyIssue{Message: err.Error()})
	return result
}

func outputText(results []ValidationResult) error {
	totalIssues := 0

	for _, result := range results {
		fmt.Printf("Validating %s...\n", result.File)

		if result.Valid {
			fmt.Println("✓ Document parses")
			fmt.Println("✓ Policy is activatable")
		}

		for _, issue := range result.Issues {
			fmt.Printf("✗ Error: %s", issue.Message)
			if issue.Field != "" {
				fmt.Printf(" [%s]", issue.Field)
			}
			fmt.Println()
			totalIssues++
		}

		fmt.Println()
	}

	fmt.Println("Summary:")
	fmt.Printf("  %d file(s), %d error(s)\n", len(results), totalIssues)

	if totalIssues > 0 {
		return cli.NewCommandError("lint", fmt.Errorf("validation failed"))
	}

	return nil
}

func outputJSON(results []ValidationResult) error {
	formatter := &cli.JSONFormatter{Indent: true}
	if err := formatter.FormatTo(os.Stdout, results); err != nil {
		return err
	}

	for _, result := range results {
		if !result.Valid {
			return cli.NewCommandError("lint", fmt.Errorf("validation failed"))
		}
	}
	return nil
}
