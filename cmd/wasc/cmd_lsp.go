package main

import (
	"github.com/dhamidi/wasc/script/lsp"
	"github.com/spf13/cobra"
)

func newLSPCmd() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewLSPServer(version)
			if address != "" {
				return server.RunTCP(address)
			}
			return server.RunStdio()
		},
	}

	cmd.Flags().StringVar(&address, "tcp", "", "listen on this address instead of stdio")

	return cmd
}
