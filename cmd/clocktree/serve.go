package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/sarchlab/clocktree/monitoring"
)

var (
	servePort int
	serveOpen bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the clock tree for inspection over HTTP.",
	Run: func(cmd *cobra.Command, args []string) {
		tree, space, closer, err := openTree()
		if err != nil {
			log.Fatalf("Error opening registers: %v", err)
		}
		if closer != nil {
			defer closer.Close()
		}

		m := monitoring.NewMonitor()
		if servePort > 0 {
			m.WithPortNumber(servePort)
		}
		if serveOpen {
			m.WithBrowser()
		}
		m.RegisterTree(tree, space)

		m.StartServer()
		select {}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false,
		"open the server address in a browser")
}
