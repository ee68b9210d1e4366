package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/gochartkick/chartkick"
	"github.com/gochartkick/chartkick/data"
	"github.com/gochartkick/chartkick/idgen"
	"github.com/gochartkick/chartkick/msgs/pomsg"
)

type renderOptions struct {
	dataPath  string
	outPath   string
	staticURL string
	globals   string
	messages  string
	locale    string
}

func newRenderCmd() *cobra.Command {
	var opts renderOptions
	cmd := &cobra.Command{
		Use:   "render [page.html]",
		Short: "Render a page to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(args[0], opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&opts.dataPath, "data", "d", "", "JSON file holding the render context")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "output file path (default: stdout)")
	cmd.Flags().StringVar(&opts.staticURL, "static-url", "/static", "base URL of chartkick.js")
	cmd.Flags().StringVar(&opts.globals, "globals", "", "file of name = value globals")
	cmd.Flags().StringVar(&opts.messages, "messages", "", "directory of <locale>.po translations")
	cmd.Flags().StringVar(&opts.locale, "locale", "", "locale of the placeholder text")
	return cmd
}

func runRender(page string, opts renderOptions, stdout io.Writer) error {
	var bundle = chartkick.NewBundle().
		AddTemplateFile(page).
		StaticURL(opts.staticURL)
	if opts.globals != "" {
		bundle.AddGlobalsFile(opts.globals)
	}
	var tofu, err = bundle.CompileToTofu()
	if err != nil {
		return err
	}

	ctx, err := readContext(opts.dataPath)
	if err != nil {
		return err
	}

	// Ids restart for every file, so output is reproducible.
	var renderer = tofu.NewRenderer(page).WithIDs(&idgen.Sequence{})
	if opts.messages != "" {
		var provider, err = pomsg.Dir(opts.messages)
		if err != nil {
			return fmt.Errorf("loading messages: %w", err)
		}
		renderer.WithMessages(provider.Bundle(opts.locale))
	}

	var buf bytes.Buffer
	if err = renderer.Execute(&buf, ctx); err != nil {
		return err
	}

	if opts.outPath == "" {
		_, err = buf.WriteTo(stdout)
		return err
	}
	if err = atomic.WriteFile(opts.outPath, &buf); err != nil {
		return fmt.Errorf("writing %s: %w", opts.outPath, err)
	}
	log.Info().Str("page", page).Str("out", opts.outPath).Msg("rendered")
	return nil
}

// readContext reads a JSON object from filename.  No filename means an empty
// context.
func readContext(filename string) (data.Map, error) {
	if filename == "" {
		return data.Map{}, nil
	}
	var content, err = os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	val, err := data.Unmarshal(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	m, ok := val.(data.Map)
	if !ok {
		return nil, fmt.Errorf("%s: expected a JSON object, got %T", filename, val)
	}
	return m, nil
}
