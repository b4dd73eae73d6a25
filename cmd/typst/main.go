// Command typst lays out grid documents described in TOML and renders
// them to PNG pages.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/01mf02/typst/pkg/doc"
	"github.com/01mf02/typst/pkg/geom"
	"github.com/01mf02/typst/pkg/render"
)

func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}

func execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:           "typst",
		Short:         "Lay out grid documents and render them to PNG pages",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(renderCmd(&verbose))

	if err := root.Execute(); err != nil {
		log.Error(err)
		return err
	}
	return nil
}

func newLogger(verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func renderCmd(verbose *bool) *cobra.Command {
	var outDir string
	var fontPath string
	var strokes bool

	cmd := &cobra.Command{
		Use:   "render <document.toml>",
		Short: "Render a grid document to one PNG per page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(*verbose)

			d, err := doc.Load(args[0])
			if err != nil {
				return err
			}
			logger.Debug("document loaded",
				"cells", len(d.Cells),
				"columns", len(d.Grid.Columns),
				"rows", len(d.Grid.Rows))

			gl, err := d.Layout()
			if err != nil {
				return fmt.Errorf("layout failed: %w", err)
			}
			logger.Debug("layout finished",
				"pages", len(gl.Fragment),
				"columns", gl.Cols)

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}

			margin := geom.Point{X: d.Page.Margin, Y: d.Page.Margin}
			for i, page := range gl.Fragment {
				r := render.New(int(d.Page.Width), int(d.Page.Height))
				if fontPath != "" {
					if err := r.LoadFontFace(fontPath, d.Page.TextSize); err != nil {
						return fmt.Errorf("loading font: %w", err)
					}
				}
				r.DrawFrame(page, margin)
				if strokes {
					r.DrawFrame(doc.StrokeFrame(gl, i, 0.5), margin)
				}

				out := filepath.Join(outDir, fmt.Sprintf("page-%d.png", i+1))
				if err := r.SavePNG(out); err != nil {
					return err
				}
				logger.Info("page rendered", "file", out,
					"width", page.Width(), "height", page.Height())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().StringVar(&fontPath, "font", "", "TTF font for text rendering")
	cmd.Flags().BoolVar(&strokes, "strokes", true, "draw grid lines between tracks")

	return cmd
}
