package main

import (
	"github.com/spf13/cobra"

	"github.com/hailam/nutsort/internal/server"
)

var serveAddr string

// serveCmd starts the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the puzzle API over HTTP",
	Long: `Starts the HTTP API used by browser frontends. Generated instances are
deduplicated against the persistent database unless --no-db is given.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	srv := server.New(seenStoreOf(store), logger)
	return srv.Run(serveAddr)
}
