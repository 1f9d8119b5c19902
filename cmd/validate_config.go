package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zoe5466/Gudiee-sub001/config"
)

var strict bool

var validateConfigCmd = &cobra.Command{
	Use:   "validate-config",
	Short: "Validate guidee.yaml",
	RunE:  runValidateConfig,
}

func init() {
	validateConfigCmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")
}

func runValidateConfig(cmd *cobra.Command, args []string) error {
	out, errOut := stdStreams(cmd)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	result := config.Validate(cfg)

	for _, w := range result.Warnings {
		fmt.Fprintf(errOut, "WARNING: %s\n", w)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(errOut, "ERROR: %s\n", e)
	}

	if strict && len(result.Warnings) > 0 {
		return fmt.Errorf("validation failed: %d warning(s) treated as errors in strict mode", len(result.Warnings))
	}
	if !result.IsValid() {
		return fmt.Errorf("validation failed: %d error(s)", len(result.Errors))
	}

	fmt.Fprintln(out, "Validation passed.")
	return nil
}
