// Command gosheet is a thin line-oriented CLI driving a sheet.Sheet: it has
// no state of its own beyond the sheet and the flags that configure it.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		logger.Error("command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	app := &application{}

	root := &cobra.Command{
		Use:   "gosheet",
		Short: "A small spreadsheet engine driven from the command line",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init()
		},
	}

	root.PersistentFlags().IntVar(&app.maxRows, "max-rows", 0, "override the sheet's row bound (0 = engine default)")
	root.PersistentFlags().IntVar(&app.maxCols, "max-cols", 0, "override the sheet's column bound (0 = engine default)")
	root.PersistentFlags().StringVar(&app.seedPath, "seed", "", "path to a file of set/clear commands to replay before running")

	root.AddCommand(
		newSetCommand(app),
		newGetCommand(app),
		newClearCommand(app),
		newPrintCommand(app),
		newStatusCommand(app),
	)
	return root
}
