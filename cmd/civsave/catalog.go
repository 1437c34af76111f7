package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/openciv1/civsave/internal/catalog"
	"github.com/openciv1/civsave/internal/core"
	"github.com/openciv1/civsave/internal/savefile"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Save catalog management tools",
}

var catalogAddCmd = &cobra.Command{
	Use:   "add [file...]",
	Short: "Adds save games to the catalog, scanning save_dir if no files are given",
	Run:   CatalogAddCommand,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists the catalogued save games",
	Run:   CatalogListCommand,
	Args:  cobra.NoArgs,
}

var catalogDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Removes a save game from the catalog",
	Run:   CatalogDeleteCommand,
	Args:  cobra.ExactArgs(1),
}

var PermanentFlag bool

func initDB(cfg *core.Config) *gorm.DB {
	db, err := catalog.Open(cfg)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := catalog.Migrate(db); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	return db
}

func CatalogAddCommand(cmd *cobra.Command, args []string) {
	cfg, logger := initConfig()
	db := initDB(cfg)

	paths := args
	if len(paths) == 0 {
		var err error
		if paths, err = savefile.Glob(cfg.SaveDir); err != nil {
			fmt.Println("error finding saves:", err)
			os.Exit(1)
		}
	}

	indexer := catalog.NewIndexer(db, cfg.Catalog.DedupTTL, logger)
	failed := false
	for _, path := range paths {
		summary, added, err := indexer.Index(path)
		if err != nil {
			logger.WithError(err).WithField("path", path).Error("error indexing save")
			failed = true
			continue
		}
		if added {
			fmt.Printf("added %s (ID: %d)\n", path, summary.ID)
		} else {
			fmt.Printf("%s is already catalogued (ID: %d)\n", path, summary.ID)
		}
	}
	if failed {
		os.Exit(1)
	}
}

func CatalogListCommand(cmd *cobra.Command, args []string) {
	cfg, _ := initConfig()
	db := initDB(cfg)

	summaries, err := catalog.List(db)
	if err != nil {
		fmt.Println("error listing saves:", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCHECKSUM\tTURN\tYEAR\tCIV\tCITIES\tUNITS\tPATH")
	for _, s := range summaries {
		fmt.Fprintf(w, "%d\t%08x\t%d\t%s\t%s\t%d\t%d\t%s\n",
			s.ID, s.Checksum, s.Turn, formatYear(int16(s.Year)), s.HumanCiv, s.Cities, s.Units, s.Path)
	}
	w.Flush()
}

func CatalogDeleteCommand(cmd *cobra.Command, args []string) {
	cfg, logger := initConfig()
	db := initDB(cfg)

	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fmt.Println("invalid id:", args[0])
		os.Exit(1)
	}
	summary, err := catalog.FindByID(db, id)
	if err != nil {
		fmt.Println("error finding save:", err)
		os.Exit(1)
	} else if summary == nil {
		fmt.Printf("no save with ID %d\n", id)
		os.Exit(1)
	}

	if PermanentFlag {
		err = catalog.PermanentlyDelete(db, summary)
	} else {
		err = catalog.Delete(db, summary)
	}
	if err != nil {
		fmt.Println("error deleting save:", err)
		os.Exit(1)
	}
	logger.WithFields(logrus.Fields{"id": id, "permanent": PermanentFlag}).Debug("deleted summary")
	fmt.Println("deleted save")
}
