package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/morada-labs/morada/internal/cli/output"
	"github.com/morada-labs/morada/internal/cli/prompt"
	"github.com/morada-labs/morada/pkg/config"
	"github.com/morada-labs/morada/pkg/listing/models"
	"github.com/morada-labs/morada/pkg/listing/store"
)

var (
	userCreateName  string
	userCreateEmail string
	userCreateRole  string
	userDeleteForce bool
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
	Long: `Manage morada users directly against the database.

These commands are for local administration (bootstrapping the first admin,
resetting a password). Day-to-day user management goes through the REST API.`,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE:  runUserList,
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new user",
	Long: `Create a new user in the database.

If name, email or role are not provided via flags, you will be prompted to
enter them interactively. The password is always prompted with masking.

Examples:
  # Create user interactively
  morada user create

  # Create an admin
  morada user create --email root@example.com --name "Root" --role admin`,
	RunE: runUserCreate,
}

var userPasswdCmd = &cobra.Command{
	Use:   "passwd <email>",
	Short: "Change a user's password",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserPasswd,
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <email>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserDelete,
}

func init() {
	userCreateCmd.Flags().StringVar(&userCreateName, "name", "", "Display name")
	userCreateCmd.Flags().StringVar(&userCreateEmail, "email", "", "Email address (login)")
	userCreateCmd.Flags().StringVar(&userCreateRole, "role", "", "Role (agent|admin)")
	userDeleteCmd.Flags().BoolVar(&userDeleteForce, "force", false, "Skip confirmation prompt")

	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userPasswdCmd)
	userCmd.AddCommand(userDeleteCmd)
}

// openStore loads the configuration and opens the database.
// The caller must Close the returned store.
func openStore() (*store.GORMStore, error) {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return nil, err
	}

	s, err := store.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return s, nil
}

func runUserList(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	users, err := s.ListUsers(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	table := output.NewTableData("Email", "Name", "Role", "Last Login")
	for _, u := range users {
		lastLogin := "never"
		if u.LastLogin != nil {
			lastLogin = u.LastLogin.Format(time.RFC3339)
		}
		table.AddRow(u.Email, u.Name, u.Role, lastLogin)
	}

	return output.PrintTable(os.Stdout, table)
}

func runUserCreate(cmd *cobra.Command, args []string) error {
	email := userCreateEmail
	if email == "" {
		var err error
		email, err = prompt.InputRequired("Email")
		if err != nil {
			return err
		}
	}

	name := userCreateName
	if name == "" {
		var err error
		name, err = prompt.InputRequired("Name")
		if err != nil {
			return err
		}
	}

	role := userCreateRole
	if role == "" {
		var err error
		role, err = prompt.Input("Role (agent|admin)", string(models.RoleAgent))
		if err != nil {
			return err
		}
	}
	if !models.UserRole(role).IsValid() {
		return fmt.Errorf("invalid role %q: must be agent or admin", role)
	}

	password, err := prompt.PasswordWithConfirmation("Password", "Confirm password", models.MinPasswordLength)
	if err != nil {
		return err
	}

	hash, err := models.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.CreateUser(context.Background(), &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("User %s created (id %s, role %s)\n", email, id, role)
	return nil
}

func runUserPasswd(cmd *cobra.Command, args []string) error {
	email := args[0]

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	// Resolve first so a typo'd email fails before prompting.
	if _, err := s.GetUserByEmail(context.Background(), email); err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	password, err := prompt.PasswordWithConfirmation("New password", "Confirm password", models.MinPasswordLength)
	if err != nil {
		return err
	}

	hash, err := models.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.UpdatePassword(context.Background(), email, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	fmt.Printf("Password updated for %s\n", email)
	return nil
}

func runUserDelete(cmd *cobra.Command, args []string) error {
	email := args[0]

	if !userDeleteForce {
		confirmed, err := prompt.Confirm(fmt.Sprintf("Delete user %s?", email), false)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted")
			return nil
		}
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.DeleteUser(context.Background(), email); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	fmt.Printf("User %s deleted\n", email)
	return nil
}
