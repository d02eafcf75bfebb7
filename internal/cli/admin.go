package cli

import (
	"fmt"

	"inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/internal/services"

	"github.com/spf13/cobra"
)

var (
	// Create-admin flags
	adminUsername string
	adminEmail    string
	adminPassword string
)

// createAdminCmd creates an account allowed to write the catalog
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator account",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime()
		if err != nil {
			return err
		}
		db, closeDB, err := rt.openDB()
		if err != nil {
			return err
		}
		defer closeDB()

		auth := services.NewAuthService(repositories.NewGORMUserRepository(db), rt.cfg.JWT.Secret, rt.cfg.JWT.TTL)
		user, err := auth.RegisterUser(cmd.Context(), services.RegisterInput{
			Username: adminUsername,
			Email:    adminEmail,
			Password: adminPassword,
			Role:     models.RoleAdmin,
		})
		if err != nil {
			return fmt.Errorf("failed to create admin: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created admin %s (%s)\n", user.Username, user.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createAdminCmd)

	createAdminCmd.Flags().StringVar(&adminUsername, "username", "", "Login name (defaults to the email)")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Email address (required)")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Password, at least 8 characters (required)")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}
