package cmd

import (
	"github.com/linkboard/linkboard/db"
	"github.com/linkboard/linkboard/handler"
	"github.com/linkboard/linkboard/utils"
	"github.com/linkboard/linkboard/utils/log"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var setupCmd = &cobra.Command{
	Use:    "setup",
	Short:  "Create schema and seed data",
	PreRun: load,
	Run:    setup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

// setup is idempotent: roles and the admin account are created only when
// missing, the starter page only on an empty store. The fresh admin password
// is printed once.
func setup(cmd *cobra.Command, args []string) {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		for _, name := range []string{handler.RoleAdmin, handler.RoleUser} {
			if _, err := handler.Role.WithTx(tx).Ensure(name); err != nil {
				return err
			}
		}

		admin, err := handler.User.WithTx(tx).GetByName(handler.AdminUsername)
		if err != nil {
			return err
		}
		if admin == nil {
			newpass := utils.RandString(8)
			if _, err := handler.User.WithTx(tx).New(handler.AdminUsername, newpass,
				[]string{handler.RoleAdmin}, nil); err != nil {
				return err
			}
			log.New().Info("Admin pass: ", newpass)
		}

		// a starter page, only when the store holds none at all
		count, err := handler.Page.WithTx(tx).Count(nil)
		if err != nil {
			return err
		}
		if count == 0 {
			if _, err := handler.Page.WithTx(tx).New("Main"); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.NewEntry(err).Fatal("Setup failed")
	}
	log.New().Info("Setup complete")
}
