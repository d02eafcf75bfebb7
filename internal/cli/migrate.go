package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// migrateCmd applies the schema
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the catalog tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime()
		if err != nil {
			return err
		}
		_, closeDB, err := rt.openDB()
		if err != nil {
			return err
		}
		defer closeDB()
		rt.log.Info(context.Background(), "database migrated")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
