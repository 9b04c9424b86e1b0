package commands

import (
	"context"
	"fmt"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tim-io/timapi/pkg/tim"
	"golang.org/x/term"
)

// NewUsersCommand creates the users command group
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage user accounts",
		Long:    "List, inspect, register and update user accounts",
	}

	cmd.AddCommand(newUsersListCommand())
	cmd.AddCommand(newUsersGetCommand())
	cmd.AddCommand(newUsersMeCommand())
	cmd.AddCommand(newUsersRegisterCommand())
	cmd.AddCommand(newUsersUpdateCommand())
	cmd.AddCommand(newUsersDeleteCommand())

	return cmd
}

func newUsersListCommand() *cobra.Command {
	var skip, limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := newAPIClient(ctx)
			if err != nil {
				return err
			}

			users, err := client.Users().List(ctx, listParamsFromFlags(skip, limit))
			if err != nil {
				return err
			}

			return renderOutput(users, func() error {
				return renderUsersTable(users)
			})
		},
	}

	cmd.Flags().IntVar(&skip, "skip", 0, "number of users to skip")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of users to return")

	return cmd
}

func newUsersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a user by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user ID: %s", args[0])
			}

			ctx := context.Background()

			client, err := newAPIClient(ctx)
			if err != nil {
				return err
			}

			user, err := client.Users().Get(ctx, userID)
			if err != nil {
				return err
			}

			return renderOutput(user, func() error {
				return renderUserDetail(user)
			})
		},
	}
}

func newUsersMeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the account that owns the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := newAPIClient(ctx)
			if err != nil {
				return err
			}

			user, err := client.Users().GetMe(ctx)
			if err != nil {
				return err
			}

			return renderOutput(user, func() error {
				return renderUserDetail(user)
			})
		},
	}
}

func newUsersRegisterCommand() *cobra.Command {
	var (
		name     string
		email    string
		password string
		admin    bool
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		Long:  "Register a new account. Registration needs no session.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				fmt.Print("Password: ")

				bytePassword, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				password = string(bytePassword)

				fmt.Println()
			}

			ctx := context.Background()

			client, err := newAPIClient(ctx)
			if err != nil {
				return err
			}

			user, err := client.Users().Create(ctx, &tim.UserCreateRequest{
				Name:     name,
				Email:    email,
				Password: password,
				IsAdmin:  admin,
			})
			if err != nil {
				return err
			}

			return renderOutput(user, func() error {
				return renderUserDetail(user)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	cmd.Flags().BoolVar(&admin, "admin", false, "grant administrator rights")

	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newUsersUpdateCommand() *cobra.Command {
	var (
		name     string
		email    string
		password string
		admin    bool
	)

	cmd := &cobra.Command{
		Use:   "update <id|me>",
		Short: "Update a user",
		Long:  "Apply a partial update to a user. Only the given flags are sent. Use \"me\" to update the session's own account.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &tim.UserUpdateRequest{}

			if cmd.Flags().Changed("name") {
				request.Name = tim.StringPtr(name)
			}

			if cmd.Flags().Changed("email") {
				request.Email = tim.StringPtr(email)
			}

			if cmd.Flags().Changed("password") {
				request.Password = tim.StringPtr(password)
			}

			if cmd.Flags().Changed("admin") {
				request.IsAdmin = tim.BoolPtr(admin)
			}

			ctx := context.Background()

			client, err := newAPIClient(ctx)
			if err != nil {
				return err
			}

			var user *tim.User

			if args[0] == "me" {
				user, err = client.Users().UpdateMe(ctx, request)
			} else {
				var userID int

				userID, err = strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid user ID: %s", args[0])
				}

				user, err = client.Users().Update(ctx, userID, request)
			}

			if err != nil {
				return err
			}

			return renderOutput(user, func() error {
				return renderUserDetail(user)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "new password")
	cmd.Flags().BoolVar(&admin, "admin", false, "grant or revoke administrator rights")

	return cmd
}

func newUsersDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user ID: %s", args[0])
			}

			ctx := context.Background()

			client, err := newAPIClient(ctx)
			if err != nil {
				return err
			}

			user, err := client.Users().Delete(ctx, userID)
			if err != nil {
				return err
			}

			fmt.Printf("Deleted user %d (%s)\n", user.ID, user.Email)

			return nil
		},
	}
}
