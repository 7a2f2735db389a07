package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tipline/tipline/config"
	"github.com/tipline/tipline/logger"
	"github.com/tipline/tipline/model"
	"github.com/tipline/tipline/store"
)

// DbCmd represents the db (database) command.
var DbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the tipline database",
	Long: `db — Manage tipline database operations

Examples:
  tipline db migrate    # Bring the schema up to date
  tipline db stats      # Show row counts per table`,
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE:  runDbMigrate,
}

var dbStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show row counts per table",
	RunE:  runDbStats,
}

func init() {
	DbCmd.AddCommand(dbMigrateCmd)
	DbCmd.AddCommand(dbStatsCmd)
}

func runDbMigrate(cmd *cobra.Command, args []string) error {
	database, err := openDatabase("")
	if err != nil {
		return err
	}
	defer database.Close()

	logger.Infow("Database schema up to date")
	return nil
}

// statsEntities lists the tables worth a row count in db stats.
var statsEntities = []struct {
	label string
	proto any
}{
	{"Users", &model.User{}},
	{"Receivers", &model.Receiver{}},
	{"Contexts", &model.Context{}},
	{"Questionnaires", &model.Questionnaire{}},
	{"Internal tips", &model.InternalTip{}},
	{"Receiver tips", &model.ReceiverTip{}},
	{"Whistleblower tips", &model.WhistleblowerTip{}},
	{"Comments", &model.Comment{}},
	{"Messages", &model.Message{}},
	{"Internal files", &model.InternalFile{}},
	{"Receiver files", &model.ReceiverFile{}},
	{"Identity requests", &model.IdentityAccessRequest{}},
	{"Queued mails", &model.Mail{}},
	{"Pending secure deletes", &model.SecureFileDelete{}},
}

func runDbStats(cmd *cobra.Command, args []string) error {
	cfgPath, err := config.GetDatabasePath()
	if err != nil {
		return err
	}

	database, err := openDatabase("")
	if err != nil {
		return err
	}
	defer database.Close()

	s := store.New(database, logger.Logger)

	fmt.Println("Database Statistics")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("Database Path: %s\n\n", cfgPath)

	return s.Transact(func(tx *store.Tx) error {
		for _, e := range statsEntities {
			n, err := tx.Count(e.proto)
			if err != nil {
				return err
			}
			fmt.Printf("%-24s %d\n", e.label+":", n)
		}
		return nil
	})
}
