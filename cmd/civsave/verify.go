package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openciv1/civsave/internal/gamedata"
	"github.com/openciv1/civsave/internal/savefile"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [file]",
	Short: "Checks that a save game survives decoding and re-encoding",
	Run:   VerifyCommand,
	Args:  cobra.ExactArgs(1),
}

func VerifyCommand(cmd *cobra.Command, args []string) {
	_, logger := initConfig()
	save, err := savefile.Read(args[0], gamedata.WithLogger(logger))
	if err != nil {
		fmt.Println("error reading save:", err)
		os.Exit(1)
	}

	diffs, err := gamedata.Verify(save)
	if err != nil {
		fmt.Println("error verifying save:", err)
		os.Exit(1)
	}
	if len(diffs) > 0 {
		for _, diff := range diffs {
			fmt.Println(diff)
		}
		os.Exit(1)
	}
	fmt.Println("ok")
}
