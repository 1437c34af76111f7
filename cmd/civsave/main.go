// civsave reads, checks and catalogues save games.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/openciv1/civsave/internal/core"
)

var ConfigFlag string

func main() {
	rootCmd := &cobra.Command{
		Use:   "civsave",
		Short: "Tools for civilization save games",
	}
	rootCmd.PersistentFlags().StringVarP(&ConfigFlag, "config", "c", "", "Path to the directory containing config.yaml")

	inspectCmd.Flags().BoolVar(&RawFlag, "raw", false, "Dump every decoded value")
	inspectCmd.Flags().StringVarP(&FieldFlag, "field", "f", "", "Hex dump a single field of the record")

	catalogCmd.AddCommand(catalogAddCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogDeleteCmd)
	catalogDeleteCmd.Flags().BoolVar(&PermanentFlag, "permanent", false, "Permanently delete the summary (as opposed to a soft delete)")

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(catalogCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func initConfig() (*core.Config, *logrus.Logger) {
	cfg, err := core.LoadConfig(ConfigFlag)
	if err != nil {
		fmt.Println("error loading config:", err)
		os.Exit(1)
	}
	logger, err := core.NewLogger(cfg)
	if err != nil {
		fmt.Println("error initializing logger:", err)
		os.Exit(1)
	}
	return cfg, logger
}
