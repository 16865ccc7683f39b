package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	journy "github.com/journy-io/sdk-go"
)

// identityFlags collects the flags that identify a user or an account.
type identityFlags struct {
	userID    string
	email     string
	accountID string
	domain    string
}

func (f *identityFlags) addUser(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.userID, "user-id", "", "User ID")
	cmd.Flags().StringVar(&f.email, "email", "", "User email")
}

func (f *identityFlags) addAccount(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.accountID, "account-id", "", "Account ID")
	cmd.Flags().StringVar(&f.domain, "domain", "", "Account domain")
}

func (f *identityFlags) user() journy.UserIdentified {
	return journy.UserIdentified{UserID: f.userID, Email: f.email}
}

func (f *identityFlags) account() journy.AccountIdentified {
	return journy.AccountIdentified{AccountID: f.accountID, Domain: f.domain}
}

// mustMarkRequired panics when name is not a flag of cmd.
func mustMarkRequired(cmd *cobra.Command, name string) {
	if err := cmd.MarkFlagRequired(name); err != nil {
		panic(fmt.Sprintf("mark flag %s required: %v", name, err))
	}
}

func (f *identityFlags) hasUser() bool    { return f.userID != "" || f.email != "" }
func (f *identityFlags) hasAccount() bool { return f.accountID != "" || f.domain != "" }

func (a *app) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Show the permissions of the API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := a.client.GetAPIKeyDetails(cmd.Context())
			return printResult(a, result, err)
		},
	}
}

func (a *app) snippetCommand() *cobra.Command {
	var domain string
	cmd := &cobra.Command{
		Use:   "snippet",
		Short: "Fetch the tracking snippet for a website",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := a.client.GetTrackingSnippet(cmd.Context(), domain)
			return printResult(a, result, err)
		},
	}
	cmd.Flags().StringVar(&domain, "domain", "", "Website domain")
	mustMarkRequired(cmd, "domain")
	return cmd
}

func (a *app) trackCommand() *cobra.Command {
	var (
		ids  identityFlags
		name string
		at   string
		meta []string
	)
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Record an event for a user, an account or both",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var event journy.Event
			switch {
			case ids.hasUser() && ids.hasAccount():
				event = journy.EventForUserInAccount(name, ids.user(), ids.account())
			case ids.hasAccount():
				event = journy.EventForAccount(name, ids.account())
			default:
				event = journy.EventForUser(name, ids.user())
			}

			if at != "" {
				when, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("--at: %w", err)
				}
				event = event.HappenedAt(when)
			}

			metadata, err := parsePairs("meta", meta)
			if err != nil {
				return err
			}
			if metadata != nil {
				event = event.WithMetadata(journy.Metadata(metadata))
			}

			result, err := a.client.AddEvent(cmd.Context(), event)
			return printResult(a, result, err)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Event name")
	cmd.Flags().StringVar(&at, "at", "", "When the event happened (RFC 3339)")
	cmd.Flags().StringArrayVar(&meta, "meta", nil, "Event metadata as key=value (repeatable)")
	ids.addUser(cmd)
	ids.addAccount(cmd)
	mustMarkRequired(cmd, "name")
	return cmd
}

func (a *app) upsertUserCommand() *cobra.Command {
	var (
		ids   identityFlags
		props []string
	)
	cmd := &cobra.Command{
		Use:   "upsert-user",
		Short: "Create or update a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			properties, err := parsePairs("prop", props)
			if err != nil {
				return err
			}
			result, err := a.client.UpsertUser(cmd.Context(), journy.UpsertUserArgs{
				User:       ids.user(),
				Properties: properties,
			})
			return printResult(a, result, err)
		},
	}
	ids.addUser(cmd)
	cmd.Flags().StringArrayVar(&props, "prop", nil, "User property as key=value (repeatable)")
	return cmd
}

func (a *app) deleteUserCommand() *cobra.Command {
	var ids identityFlags
	cmd := &cobra.Command{
		Use:   "delete-user",
		Short: "Delete a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := a.client.DeleteUser(cmd.Context(), ids.user())
			return printResult(a, result, err)
		},
	}
	ids.addUser(cmd)
	return cmd
}

func (a *app) upsertAccountCommand() *cobra.Command {
	var (
		ids     identityFlags
		props   []string
		members []string
	)
	cmd := &cobra.Command{
		Use:   "upsert-account",
		Short: "Create or update an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			properties, err := parsePairs("prop", props)
			if err != nil {
				return err
			}
			args := journy.UpsertAccountArgs{Account: ids.account(), Properties: properties}
			for _, id := range members {
				args.Members = append(args.Members, journy.UserByID(id))
			}
			result, err := a.client.UpsertAccount(cmd.Context(), args)
			return printResult(a, result, err)
		},
	}
	ids.addAccount(cmd)
	cmd.Flags().StringArrayVar(&props, "prop", nil, "Account property as key=value (repeatable)")
	cmd.Flags().StringSliceVar(&members, "member", nil, "User IDs of the account members")
	return cmd
}

func (a *app) deleteAccountCommand() *cobra.Command {
	var ids identityFlags
	cmd := &cobra.Command{
		Use:   "delete-account",
		Short: "Delete an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := a.client.DeleteAccount(cmd.Context(), ids.account())
			return printResult(a, result, err)
		},
	}
	ids.addAccount(cmd)
	return cmd
}

func (a *app) membersCommand(use, short string) *cobra.Command {
	var (
		ids   identityFlags
		users []string
	)
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args := journy.AccountMembersArgs{Account: ids.account()}
			for _, id := range users {
				args.Users = append(args.Users, journy.UserByID(id))
			}

			var (
				result journy.Result[journy.Empty]
				err    error
			)
			if use == "add-users" {
				result, err = a.client.AddUsersToAccount(cmd.Context(), args)
			} else {
				result, err = a.client.RemoveUsersFromAccount(cmd.Context(), args)
			}
			return printResult(a, result, err)
		},
	}
	ids.addAccount(cmd)
	cmd.Flags().StringSliceVar(&users, "user-id", nil, "User IDs")
	return cmd
}

func (a *app) linkCommand() *cobra.Command {
	var (
		ids      identityFlags
		deviceID string
	)
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Link a website visitor's device to a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := a.client.Link(cmd.Context(), journy.LinkArgs{DeviceID: deviceID, User: ids.user()})
			return printResult(a, result, err)
		},
	}
	cmd.Flags().StringVar(&deviceID, "device-id", "", "Device ID from the tracking snippet")
	ids.addUser(cmd)
	return cmd
}

func (a *app) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "api_key:           %s\n", journy.KeyFingerprint(a.cfg.APIKey))
			fmt.Fprintf(out, "api_url:           %s\n", a.cfg.APIURL)
			fmt.Fprintf(out, "timeout:           %s\n", a.cfg.Timeout)
			fmt.Fprintf(out, "queue_concurrency: %d\n", a.cfg.QueueConcurrency)
			fmt.Fprintf(out, "rate_limit:        %g\n", a.cfg.RateLimit)
			fmt.Fprintf(out, "rate_burst:        %d\n", a.cfg.RateBurst)
			fmt.Fprintf(out, "log_level:         %s\n", a.cfg.LogLevel)
			fmt.Fprintf(out, "log_format:        %s\n", a.cfg.LogFormat)
			return nil
		},
	}
}
