package cmd

import (
	"github.com/linkboard/linkboard/handler"
	"github.com/linkboard/linkboard/utils"
	"github.com/linkboard/linkboard/utils/log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage linkboard users",
}

var (
	adminRole  bool
	userGroups []string
	userAddCmd = &cobra.Command{
		Use:    "add $user",
		Short:  "Add linkboard user",
		Args:   cobra.ExactArgs(1),
		PreRun: load,
		Run: func(cmd *cobra.Command, args []string) {
			roles := []string{handler.RoleUser}
			if adminRole {
				roles = append(roles, handler.RoleAdmin)
			}
			var groups []uuid.UUID
			for _, name := range userGroups {
				group, err := handler.Group.GetByName(name)
				if err != nil {
					log.NewEntry(err).Fatal("Failed to get group")
				}
				if group == nil {
					log.New().Fatalf("Group %v not found", name)
				}
				groups = append(groups, group.ID)
			}

			newpass := utils.RandString(8)
			if _, err := handler.User.New(args[0], newpass, roles, groups); err != nil {
				log.NewEntry(err).Fatal("Failed to create user")
			}
			log.New().Info("New pass: ", newpass)
			log.New().Info("Add user success")
		},
	}
)

var userResetCmd = &cobra.Command{
	Use:    "reset $user",
	Short:  "Reset linkboard user password",
	Args:   cobra.ExactArgs(1),
	PreRun: load,
	Run: func(cmd *cobra.Command, args []string) {
		user, err := handler.User.GetByName(args[0])
		if err != nil {
			log.NewEntry(err).Fatal("Failed to get user")
		}
		if user == nil {
			log.New().Fatalf("User %v not found", args[0])
		}
		newpass, err := handler.User.Reset(user.ID)
		if err != nil {
			log.NewEntry(err).Fatal("Failed to reset password")
		}
		log.New().Info("New pass: ", newpass)
		log.New().Info("Reset user success")
	},
}

func init() {
	userAddCmd.Flags().BoolVar(&adminRole, "admin", false, "grant the admin role")
	userAddCmd.Flags().StringSliceVar(&userGroups, "group", nil, "attach groups by name")
	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userResetCmd)
	rootCmd.AddCommand(userCmd)
}
