package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openciv1/civsave/internal/gamedata"
	"github.com/openciv1/civsave/internal/savefile"
)

var replayCmd = &cobra.Command{
	Use:   "replay [file]",
	Short: "Prints the replay log of a save game",
	Run:   ReplayCommand,
	Args:  cobra.ExactArgs(1),
}

func ReplayCommand(cmd *cobra.Command, args []string) {
	_, logger := initConfig()
	save, err := savefile.Read(args[0], gamedata.WithLogger(logger))
	if err != nil {
		fmt.Println("error reading save:", err)
		os.Exit(1)
	}

	entries, err := save.ReplayLog()
	for _, entry := range entries {
		fmt.Println(entry)
	}
	if err != nil {
		fmt.Printf("replay log stopped after %d entries: %v\n", len(entries), err)
		os.Exit(1)
	}
}
