package cmd

import (
	"log"

	"catalog-service/core/config"
	"catalog-service/core/database"
	"catalog-service/core/logger"

	authmodels "catalog-service/feature/auth/models"
	catalogmodels "catalog-service/feature/catalog/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long:  `Creates or updates the members, login log, store and product tables.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}

		err = db.AutoMigrate(
			&authmodels.Member{},
			&authmodels.MemberLoginLog{},
			&catalogmodels.Store{},
			&catalogmodels.Product{},
		)
		if err != nil {
			logg.Fatal("Migration failed", zap.Error(err))
		}

		// Verify the resulting schema carries every column the services
		// write to.
		expected := map[string][]string{
			"members":           {"id", "name", "email", "password_hash"},
			"member_login_logs": {"id", "member_id", "login_time", "logout_time"},
			"stores":            {"id", "name", "sort", "deleted_at"},
			"products":          {"id", "store_id", "name", "price", "sort", "image_object", "deleted_at"},
		}
		for table, cols := range expected {
			missing, err := database.MissingColumns(db, table, cols)
			if err != nil {
				logg.Fatal("Schema verification failed", zap.String("table", table), zap.Error(err))
			}
			if len(missing) > 0 {
				logg.Fatal("Migrated schema is incomplete",
					zap.String("table", table),
					zap.Strings("missing", missing),
				)
			}
		}
		logg.Info("Migration complete")
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
