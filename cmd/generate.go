package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/cmmoran/wsdlphpgen/pkg/action/generate"
)

func init() {
	rootCmd.AddCommand(NewGenerateCommand())
}

func NewGenerateCommand() *cobra.Command {
	// generateCmd represents the wsdlphpgen generate command
	var generateCmd = &cobra.Command{
		Use:   "generate <schema>",
		Short: "generate PHP classes",
		Long:  "Generate one PHP class per schema type plus the shared behavior trait",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			options, err := loadOptions(c)
			if err != nil {
				return err
			}
			res, err := generate.Generate(options, args[0])
			if err != nil {
				return err
			}

			updated := make(map[string]bool, len(res.Updated))
			for _, f := range res.Updated {
				updated[f] = true
			}
			for _, f := range res.Files {
				mark := pterm.Gray("=")
				if updated[f] {
					mark = pterm.LightGreen("✓")
				}
				pterm.Printf("  %s %s\n", mark, f)
			}
			for _, name := range res.Unresolved {
				pterm.Warning.Printf("%s is referenced but not declared in %s\n", name, args[0])
			}
			pterm.Success.Printf("Generated %s files (%s updated) into namespace %s\n",
				pterm.Green(len(res.Files)), pterm.Green(len(res.Updated)), pterm.Yellow(res.Namespace))
			return nil
		},
	}
	addGeneratorFlags(generateCmd)

	return generateCmd
}
