package main

import (
	"context"
	"fmt"
	"os"

	"cv-builder/internal/domain"
	"cv-builder/internal/model"
	"cv-builder/internal/render"
	"cv-builder/internal/tui"
	"cv-builder/internal/usecase"
	infra "cv-builder/pkg/infrastructure"

	"github.com/spf13/cobra"
)

func readDocument(path string) (model.Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return model.Document{}, err
	}
	d, err := model.DecodeDocument(b)
	if err != nil {
		return model.Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func writeOutput(path string, b []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(b)
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	return nil
}

var renderCmd = &cobra.Command{
	Use:   "render <file.json>",
	Short: "Render a CV document to printable HTML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := readDocument(args[0])
		if err != nil {
			return err
		}
		html, err := render.Printable(d)
		if err != nil {
			return err
		}
		return writeOutput(outPath, []byte(html))
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview <file.json>",
	Short: "Print the text preview of a CV document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := readDocument(args[0])
		if err != nil {
			return err
		}
		fmt.Print(tui.PlainPreview(render.Build(d)))
		return nil
	},
}

var pdfCmd = &cobra.Command{
	Use:   "pdf <file.json>",
	Short: "Export a CV document to PDF with a local Chrome",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := readDocument(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		exp := usecase.NewExporter(infra.NewChromedpRenderer(chrome, timeout), nil, 1, 0)
		res, err := exp.Export(ctx, ownerID, d, domain.DefaultTemplate)
		if err != nil {
			return err
		}
		out := outPath
		if out == "" {
			out = res.FileName
		}
		return writeOutput(out, res.PDF)
	},
}

func init() {
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	pdfCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <name>.pdf)")
	pdfCmd.Flags().StringVar(&chrome, "chrome-path", os.Getenv("CHROME_PATH"), "Chrome executable")
}
