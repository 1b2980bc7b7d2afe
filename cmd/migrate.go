package cmd

import (
	"github.com/linkboard/linkboard/db"
	"github.com/linkboard/linkboard/handler"
	"github.com/linkboard/linkboard/utils"
	"github.com/linkboard/linkboard/utils/log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var migrateCmd = &cobra.Command{
	Use:    "migrate $sqlite_file",
	Short:  "Copy data from a sqlite store into the configured database",
	Args:   cobra.ExactArgs(1),
	PreRun: load,
	Run:    migrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

// migrate is best effort: rows the destination rejects are skipped and
// counted, the run never aborts on a single bad row.
func migrate(cmd *cobra.Command, args []string) {
	if viper.GetString("database.driver") == "sqlite" &&
		viper.GetString("database.file") == args[0] {
		log.New().Fatal("Source and destination are the same database")
	}
	// opening a missing file would create an empty database
	if !utils.FileExist(args[0]) {
		log.New().Fatalf("Source database %v not found", args[0])
	}
	src, err := db.New(&db.Config{Driver: "sqlite", File: args[0]})
	if err != nil {
		log.NewEntry(err).Fatal("Failed to open source database")
	}

	reports, err := handler.MigrateStore(src, db.DB)
	if err != nil {
		log.NewEntry(err).Fatal("Migration failed")
	}
	for _, r := range reports {
		log.New().WithFields(log.F{
			"table":    r.Table,
			"inserted": r.Inserted,
			"total":    r.Total,
		}).Info("Table migrated")
	}
	log.New().Info("Migration complete")
}
