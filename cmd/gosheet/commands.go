package main

import (
	"fmt"
	"log/slog"

	"github.com/mharlow/gosheet/cellref"
	"github.com/spf13/cobra"
)

func parseAddressArg(s string) (cellref.Position, error) {
	pos, err := cellref.ParseAddress(s)
	if err != nil {
		return cellref.Position{}, fmt.Errorf("invalid cell address %q: %w", s, err)
	}
	return pos, nil
}

func newSetCommand(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "set ADDRESS TEXT",
		Short: "Set a cell's text (empty -> Empty, leading '=' -> formula, anything else -> Text)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parseAddressArg(args[0])
			if err != nil {
				return err
			}
			if err := app.sheet.SetCell(pos, args[1]); err != nil {
				slog.Warn("rejected set", slog.String("address", args[0]), slog.String("error", err.Error()))
				return err
			}
			return nil
		},
	}
}

func newGetCommand(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "get ADDRESS",
		Short: "Print a cell's evaluated value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parseAddressArg(args[0])
			if err != nil {
				return err
			}
			cell, err := app.sheet.GetCell(pos)
			if err != nil {
				return err
			}
			if cell == nil {
				fmt.Fprintln(cmd.OutOrStdout())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), cell.GetValue().String())
			return nil
		},
	}
}

func newClearCommand(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "clear ADDRESS",
		Short: "Remove the cell entry at an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parseAddressArg(args[0])
			if err != nil {
				return err
			}
			return app.sheet.ClearCell(pos)
		},
	}
}

func newPrintCommand(app *application) *cobra.Command {
	var asText bool
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the printable rectangle of values (or texts, with --text)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asText {
				return app.sheet.PrintTexts(cmd.OutOrStdout())
			}
			return app.sheet.PrintValues(cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&asText, "text", false, "print literal cell texts instead of evaluated values")
	return cmd
}

func newStatusCommand(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the sheet's printable size and revision",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			size := app.sheet.GetPrintableSize()
			fmt.Fprintf(cmd.OutOrStdout(), "size=%dx%d revision=%s\n", size.Rows, size.Cols, app.sheet.Revision())
			return nil
		},
	}
}
