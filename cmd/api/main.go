// Command api serves the NymbleAI marketing site and its contact form API.
package main

import (
	"os"

	_ "nymble-website/docs" // Important for Swagger

	"github.com/spf13/cobra"
)

// @title           NymbleAI Website API
// @version         1.0
// @description     Contact form sessions for the NymbleAI marketing site.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "api",
		Short:        "NymbleAI website server",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newValidateCmd())
	return root
}
