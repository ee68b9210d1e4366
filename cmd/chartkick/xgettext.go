package main

import (
	"github.com/spf13/cobra"

	"github.com/gochartkick/chartkick/msgs/pomsg"
)

func newXgettextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "xgettext",
		Short: "Write a PO template of the messages charts display",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return pomsg.WriteTemplate(cmd.OutOrStdout())
		},
	}
}
