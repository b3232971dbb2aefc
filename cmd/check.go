package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/cmmoran/wsdlphpgen/internal/errors"
	"github.com/cmmoran/wsdlphpgen/pkg/action/check"
)

func init() {
	rootCmd.AddCommand(NewCheckCommand())
}

func NewCheckCommand() *cobra.Command {
	var showDiff bool

	// checkCmd represents the wsdlphpgen check command
	var checkCmd = &cobra.Command{
		Use:   "check <schema>",
		Short: "verify generated files are up to date",
		Long:  "Regenerate in memory and compare with the files in the output directory; exits non-zero on drift",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			options, err := loadOptions(c)
			if err != nil {
				return err
			}
			drifts, err := check.Check(options, args[0])
			if err != nil {
				return err
			}
			if len(drifts) == 0 {
				pterm.Success.Println("Generated files are up to date")
				return nil
			}

			for _, d := range drifts {
				note := ""
				if d.Edited {
					note = pterm.Red(" (edited since last generate)")
				}
				pterm.Printf("  %s %s%s\n", pterm.Yellow(string(d.State)), d.File, note)
				if showDiff && d.Diff != "" {
					pterm.Println(d.Diff)
				}
			}
			return errors.WithHint(
				errors.Newf("%d generated files are out of date", len(drifts)),
				"run wsdlphpgen generate with the same options")
		},
	}
	addGeneratorFlags(checkCmd)
	checkCmd.Flags().BoolVarP(&showDiff, "diff", "d", false, "print a diff for changed files")

	return checkCmd
}
