package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/cmmoran/wsdlphpgen/internal/errors"
	"github.com/cmmoran/wsdlphpgen/pkg/generator"
	"github.com/cmmoran/wsdlphpgen/pkg/model"
	"github.com/cmmoran/wsdlphpgen/pkg/pattern"
)

func init() {
	rootCmd.AddCommand(NewPatternCommand())
}

func NewPatternCommand() *cobra.Command {
	// patternCmd represents the wsdlphpgen pattern command
	var patternCmd = &cobra.Command{
		Use:   "pattern",
		Short: "inspect the pattern class",
		Long:  "Inspect or export the pattern class the shared behavior trait is built from",
	}
	patternCmd.AddCommand(newPatternShowCommand(), newPatternExportCommand())

	return patternCmd
}

func reflectPattern(c *cobra.Command) (*model.Pattern, error) {
	options, err := loadOptions(c)
	if err != nil {
		return nil, err
	}
	g, err := generator.NewWithOpts(options)
	if err != nil {
		return nil, err
	}
	return g.PatternSource().Reflect()
}

func newPatternShowCommand() *cobra.Command {
	var bodies bool

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "list the reflected methods",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			p, err := reflectPattern(c)
			if err != nil {
				return err
			}

			data := pterm.TableData{{"Method", "Visibility", "Static", "Parameters", "Returns"}}
			for _, m := range p.Methods {
				data = append(data, []string{
					m.Name,
					m.Visibility.String(),
					fmt.Sprint(m.Static),
					parameterList(m.Parameters),
					typeText(m.ReturnType, m.ReturnNullable),
				})
			}
			pterm.DefaultSection.Println(p.Name)
			if err = pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
				return err
			}
			if bodies {
				for _, m := range p.Methods {
					pterm.DefaultSection.WithLevel(2).Println(m.Name)
					pterm.Println(m.Body)
				}
			}
			return nil
		},
	}
	addGeneratorFlags(showCmd)
	showCmd.Flags().BoolVarP(&bodies, "bodies", "b", false, "also print the transplanted bodies")

	return showCmd
}

func newPatternExportCommand() *cobra.Command {
	var (
		out     string
		pkgName string
		varName string
	)

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "export the reflected pattern as a Go table",
		Long:  "Render the reflected pattern as Go source declaring a static method table",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			p, err := reflectPattern(c)
			if err != nil {
				return err
			}

			if out == "" {
				if pkgName == "" {
					pkgName = "patterns"
				}
				f, err := pattern.Export(p, "", pkgName, varName)
				if err != nil {
					return err
				}
				return f.Render(os.Stdout)
			}
			dir := filepath.Dir(out)
			if pkgName == "" {
				pkgName = filepath.Base(dir)
			}
			pkgPath, err := pattern.PackagePath(dir)
			if err != nil {
				return err
			}
			f, err := pattern.Export(p, pkgPath, pkgName, varName)
			if err != nil {
				return err
			}
			if err = os.MkdirAll(dir, 0o755); err != nil {
				return errors.DirectoryCreation(err, dir)
			}
			ff, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
			if err != nil {
				return errors.Write(err, out)
			}
			defer func() { _ = ff.Close() }()
			if err = f.Render(ff); err != nil {
				return errors.Write(err, out)
			}
			pterm.Success.Printf("Exported %s to %s\n", p.Name, out)
			return nil
		},
	}
	addGeneratorFlags(exportCmd)
	exportCmd.Flags().StringVar(&out, "out", "", "Go file to write (default: stdout)")
	exportCmd.Flags().StringVar(&pkgName, "package", "", "Go package name of the exported table (default: directory of --out)")
	exportCmd.Flags().StringVar(&varName, "var", "BaseTypePattern", "Go variable name of the exported table")

	return exportCmd
}

func parameterList(params []model.Parameter) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		s := "$" + p.Name
		if t := typeText(p.Type, p.Nullable); t != "" {
			s = t + " " + s
		}
		if p.HasDefault {
			s += " = " + p.Default
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

func typeText(t string, nullable bool) string {
	switch {
	case t == "" || !nullable:
		return t
	case strings.Contains(t, "|"):
		return t + "|null"
	default:
		return "?" + t
	}
}
