package cmd

import (
	"log/slog"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cmmoran/wsdlphpgen/internal/errors"
	"github.com/cmmoran/wsdlphpgen/pkg/generator"
)

// flagKeys maps config keys of generator.Options to command line flags.
var flagKeys = map[string]string{
	"out_dir":         "output-directory",
	"root_namespace":  "namespace",
	"types_namespace": "types-namespace",
	"php_version":     "php",
	"trait_name":      "trait",
	"base_trait":      "base-trait",
	"array_adders":    "array-adders",
	"pattern_file":    "pattern",
	"pattern_class":   "pattern-class",
	"indent_width":    "indent",
	"detect_indent":   "detect-indent",
	"file_comment":    "file-comment",
}

// addGeneratorFlags registers the generator options on c.
func addGeneratorFlags(c *cobra.Command) {
	defaults := generator.NewOptions()
	flags := c.Flags()
	flags.StringP("output-directory", "o", defaults.OutDir, "root directory of generated files")
	flags.StringP("namespace", "n", "", "root PHP namespace (default: the schema document's namespace)")
	flags.String("types-namespace", defaults.TypesNamespace, "sub-namespace holding generated types")
	flags.StringP("php", "p", "", "target PHP version; 7.4 and later use native property types (default "+defaults.PhpVersion+")")
	flags.String("trait", defaults.TraitName, "name of the shared behavior trait")
	flags.Bool("base-trait", defaults.BaseTrait, "generate the shared trait and use it from every class")
	flags.Bool("array-adders", defaults.ArrayAdders, "add an add<Item>() method for every array property")
	flags.String("pattern", "", "PHP file holding a custom pattern class")
	flags.String("pattern-class", "", "class to reflect inside --pattern (default: file name)")
	flags.Int("indent", defaults.IndentWidth, "body indentation stripped beyond the method declaration")
	flags.Bool("detect-indent", defaults.DetectIndent, "strip the first body line's indentation instead of --indent")
	flags.String("file-comment", defaults.FileComment, "header comment of generated files")
}

// loadOptions merges defaults, config files, environment and the flags of
// the running command c.
func loadOptions(c *cobra.Command) (*generator.Options, error) {
	for key, flag := range flagKeys {
		if err := viper.BindPFlag(key, c.Flags().Lookup(flag)); err != nil {
			return nil, errors.InvalidConfig(err, "binding --"+flag)
		}
	}
	o := generator.NewOptions()
	if err := viper.Unmarshal(o); err != nil {
		return nil, errors.InvalidConfig(err, "decoding configuration")
	}
	o.Logger = slog.Default()
	return o, nil
}

// printError renders err and its hints for the terminal.
func printError(err error) {
	pterm.Error.Println(err.Error())
	for _, hint := range errors.GetAllHints(err) {
		pterm.Printf("  %s %s\n", pterm.LightCyan("hint:"), hint)
	}
}
