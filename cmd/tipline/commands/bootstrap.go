package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tipline/tipline/errors"
	"github.com/tipline/tipline/logger"
	"github.com/tipline/tipline/model"
	"github.com/tipline/tipline/security"
	"github.com/tipline/tipline/store"
)

// BootstrapCmd creates the settings singletons. The system treats their
// absence as unconfigured and refuses to substitute defaults, so this is
// the explicit first step of every new installation.
var BootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Initialize a new tipline installation",
	Long: `bootstrap — Create the node and notification settings singletons.

A fresh database carries no settings rows at all. Until bootstrap runs,
operations needing the settings singletons fail as unconfigured.`,
	RunE: runBootstrap,
}

var bootstrapNameFlag string

func init() {
	BootstrapCmd.Flags().StringVar(&bootstrapNameFlag, "name", "", "Instance name")
}

func runBootstrap(cmd *cobra.Command, args []string) error {
	database, err := openDatabase("")
	if err != nil {
		return err
	}
	defer database.Close()

	s := store.New(database, logger.Logger)

	return s.Transact(func(tx *store.Tx) error {
		if _, err := tx.Node(); err == nil {
			return errors.New("already bootstrapped")
		} else if !errors.Is(err, errors.ErrUnconfigured) {
			return err
		}

		receiptSalt, err := security.GenerateSalt()
		if err != nil {
			return err
		}

		node := model.NewNode()
		node.Name = bootstrapNameFlag
		node.ReceiptSalt = receiptSalt
		if err := tx.Add(node); err != nil {
			return err
		}

		if err := tx.Add(model.NewNotification()); err != nil {
			return err
		}

		logger.Infow("Installation bootstrapped",
			"node_id", node.ID,
			"name", node.Name)
		fmt.Println("Bootstrap complete.")
		return nil
	})
}
