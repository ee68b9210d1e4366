/*
Command chartkick renders pages containing chart tags.

Serve a page while editing it; query parameters become the render context:

  chartkick serve dashboard.html --static-dir ./static --watch
  open 'http://localhost:9813/?sales=[1,2,3]'

Render a page to a file, with the context read from JSON:

  chartkick render dashboard.html --data ctx.json --out dashboard.out.html

Write the message template for translators:

  chartkick xgettext > chartkick.pot
*/
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gochartkick/chartkick"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

func main() {
	chartkick.Logger = log
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "chartkick",
		Short:        "Render pages containing Chartkick chart tags",
		Version:      chartkick.Version,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newServeCmd(), newRenderCmd(), newXgettextCmd())
	return rootCmd
}
