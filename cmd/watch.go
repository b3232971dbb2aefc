package cmd

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/cmmoran/wsdlphpgen/pkg/action/generate"
	"github.com/cmmoran/wsdlphpgen/pkg/action/watch"
)

func init() {
	rootCmd.AddCommand(NewWatchCommand())
}

func NewWatchCommand() *cobra.Command {
	var debounce time.Duration

	// watchCmd represents the wsdlphpgen watch command
	var watchCmd = &cobra.Command{
		Use:   "watch <schema>",
		Short: "regenerate on change",
		Long:  "Generate, then regenerate whenever the schema document or the custom pattern file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			options, err := loadOptions(c)
			if err != nil {
				return err
			}
			w, err := watch.New(args[0], options, func(res *generate.Result, err error) {
				if err != nil {
					printError(err)
					return
				}
				pterm.Success.Printf("Generated %s files\n", pterm.Green(len(res.Files)))
			})
			if err != nil {
				return err
			}
			w.SetDebounce(debounce)

			ctx, stop := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			pterm.Info.Printf("Watching %s (ctrl-c to stop)\n", args[0])
			return w.Run(ctx)
		},
	}
	addGeneratorFlags(watchCmd)
	watchCmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before regenerating")

	return watchCmd
}
