package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/openciv1/civsave/internal/gamedata"
	"github.com/openciv1/civsave/internal/record"
	"github.com/openciv1/civsave/internal/savefile"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Prints an overview of a save game",
	Run:   InspectCommand,
	Args:  cobra.ExactArgs(1),
}

var (
	RawFlag   bool
	FieldFlag string
)

func InspectCommand(cmd *cobra.Command, args []string) {
	_, logger := initConfig()
	save, err := savefile.Read(args[0], gamedata.WithLogger(logger))
	if err != nil {
		fmt.Println("error reading save:", err)
		os.Exit(1)
	}

	if RawFlag {
		spew.Fdump(os.Stdout, save.State())
		return
	}
	if FieldFlag != "" {
		printField(save, FieldFlag)
		return
	}

	fmt.Printf("turn %d, %s, difficulty %d, checksum %08x\n",
		save.Turn(), formatYear(save.Year()), save.Difficulty(), savefile.Checksum(save.Bytes()))

	active := save.ActiveCivs()
	humans := save.HumanCivs()
	names := save.CivNames()
	leaders := save.LeaderNames()
	treasury := save.CivStat(gamedata.Treasury)
	score := save.CivStat(gamedata.Score)
	units := save.UnitCounts()

	var cities [gamedata.NumCivs]int
	for _, city := range save.Cities() {
		if city != nil && int(city.Owner) < gamedata.NumCivs {
			cities[city.Owner]++
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CIV\tNAME\tLEADER\tPLAYER\tCITIES\tUNITS\tTREASURY\tSCORE")
	for civ := 0; civ < gamedata.NumCivs; civ++ {
		if !active[civ] {
			continue
		}
		player := "ai"
		if humans[civ] {
			player = "human"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			civ, names[civ], leaders[civ], player, cities[civ], units[civ], treasury[civ], score[civ])
	}
	w.Flush()
}

func printField(save *gamedata.Save, name string) {
	f, ok := record.FieldByName(name)
	if !ok {
		fmt.Printf("unknown field %q, fields are:\n", name)
		for _, f := range record.Layout {
			fmt.Printf("  %-16s 0x%04X %5d bytes\n", f.Name, f.Offset, f.Length)
		}
		os.Exit(1)
	}
	fmt.Printf("%s at 0x%04X, %d bytes\n", f.Name, f.Offset, f.Length)
	fmt.Print(hex.Dump(save.Bytes()[f.Offset:f.End()]))
}

func formatYear(year int16) string {
	if year < 0 {
		return fmt.Sprintf("%d BC", -int(year))
	}
	return fmt.Sprintf("%d AD", year)
}
