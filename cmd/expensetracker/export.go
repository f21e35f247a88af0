package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"expensetracker/internal/cli"
	"expensetracker/internal/export"
)

func exportCmd() *cobra.Command {
	var (
		formatName string
		outPath    string
		target     string
		dir        string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all expenses",
		Long: `Export all expenses without modifying them.

By default the JSON document is written to stdout. Use --out to write a file,
--dir to write a timestamped file into a directory, or --target to deliver to
a configured destination (amqp, sheets).`,
		Example: `  expensetracker export > backup.json
  expensetracker export --format xlsx --out expenses.xlsx
  expensetracker export --format csv --dir ./exports
  expensetracker export --target amqp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := export.ParseFormat(formatName)
			if err != nil {
				return err
			}
			if target != "" && (outPath != "" || dir != "") {
				return errors.New("--target cannot be combined with --out or --dir")
			}
			if outPath != "" && dir != "" {
				return errors.New("--out and --dir are mutually exclusive")
			}

			return withApp(cmd, func(app *cli.App) error {
				ctx := cmd.Context()
				out := cmd.ErrOrStderr()

				if target != "" {
					doc, err := app.Exports.Export(ctx, target)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Exported %d expenses to %s\n", len(doc.Expenses), target)
					return nil
				}

				if outPath != "" || dir != "" {
					sink := export.FileSink{Path: outPath, Format: format}
					var written string
					_, err := app.Exports.ExportTo(ctx, "file", export.SinkFunc(func(ctx context.Context, doc export.Document) error {
						if sink.Path == "" {
							sink.Path = filepath.Join(dir, doc.Filename(format))
						}
						written = sink.Path
						return sink.Send(ctx, doc)
					}))
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Wrote %s\n", written)
					return nil
				}

				_, err := app.Exports.ExportTo(ctx, "stdout", export.SinkFunc(func(_ context.Context, doc export.Document) error {
					return export.Write(cmd.OutOrStdout(), format, doc)
				}))
				return err
			})
		},
	}

	cmd.Flags().StringVar(&formatName, "format", "json", "output format: json, xlsx or csv")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write to this file instead of stdout")
	cmd.Flags().StringVar(&dir, "dir", "", "write a timestamped file into this directory")
	cmd.Flags().StringVar(&target, "target", "", "deliver to a configured target (amqp, sheets)")
	return cmd
}
