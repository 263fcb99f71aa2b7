package cmd

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/oraad/ogero-sensors/internal/application"
)

func newEntryCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Manage configured Ogero accounts",
	}

	cmd.AddCommand(
		newEntryAddCmd(app),
		newEntryListCmd(app),
		newEntryRemoveCmd(app),
		newEntryReauthCmd(app),
	)

	return cmd
}

func newEntryAddCmd(app *app) *cobra.Command {
	var username, password, account string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an account with portal credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p := newPrompter(cmd)
			flow := app.newConfigFlow(nil)

			if _, err := flow.StepUser(ctx, nil); err != nil {
				return err
			}

			var err error
			if username, err = p.valueOr(username, "Username"); err != nil {
				return err
			}
			if password, err = p.secretOr(password, "Password"); err != nil {
				return err
			}

			result, err := flow.StepUser(ctx, &application.Credentials{Username: username, Password: password})
			if err != nil {
				return err
			}

			result, err = completeAccountStep(ctx, flow, result, p, account, "")
			if err != nil {
				return err
			}
			if result.Type != application.FlowResultCreateEntry || result.Entry == nil {
				return fmt.Errorf("unexpected flow result %q", result.Type)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added entry %s (%s)\n", result.Entry.ID, result.Entry.Title)
			return err
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Portal username (prompted when empty)")
	cmd.Flags().StringVar(&password, "password", "", "Portal password (prompted when empty)")
	cmd.Flags().StringVar(&account, "account", "", "Account key <internet>|<phone> (chosen interactively when empty)")

	return cmd
}

func newEntryReauthCmd(app *app) *cobra.Command {
	var password, account string

	cmd := &cobra.Command{
		Use:   "reauth <entry-id>",
		Short: "Replace the password of an entry whose credentials were rejected",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := newPrompter(cmd)

			id, err := app.service.ResolveEntryID(ctx, args[0])
			if err != nil {
				return err
			}
			entry, err := app.service.LookupEntry(ctx, id)
			if err != nil {
				return err
			}

			flow := app.newConfigFlow(nil)
			result, err := flow.StartReauth(ctx, id)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Re-authenticating %s\n", result.Placeholders["username"])

			if password, err = p.secretOr(password, "New password"); err != nil {
				return err
			}
			result, err = flow.StepReauthConfirm(ctx, &password)
			if err != nil {
				return err
			}

			result, err = completeAccountStep(ctx, flow, result, p, account, entry.Data.Account)
			if err != nil {
				return err
			}
			if result.Type != application.FlowResultAbort || result.Reason != application.ReasonReauthSuccessful {
				return fmt.Errorf("unexpected flow result %q", result.Type)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Re-authenticated entry %s\n", id)
			return err
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "New portal password (prompted when empty)")
	cmd.Flags().StringVar(&account, "account", "", "Account key <internet>|<phone> (defaults to the current one)")

	return cmd
}

// completeAccountStep submits the account choice once the credentials step
// has moved the flow to the account form.
func completeAccountStep(ctx context.Context, flow *application.ConfigFlow, result application.FlowResult, p *prompter, preset, preferred string) (application.FlowResult, error) {
	if err := flowError(result); err != nil {
		return result, err
	}
	if result.Type != application.FlowResultForm || result.StepID != application.StepAccount {
		return result, fmt.Errorf("unexpected flow step %q", result.StepID)
	}

	choice, err := p.chooseAccount(result.Options, preset, preferred)
	if err != nil {
		return result, err
	}

	result, err = flow.StepAccount(ctx, &choice)
	if err != nil {
		return result, err
	}
	if err := flowError(result); err != nil {
		return result, err
	}

	return result, nil
}

type entryListItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Username  string    `json:"username"`
	Account   string    `json:"account"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newEntryListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configured entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := app.service.ListEntries(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				items := make([]entryListItem, 0, len(entries))
				for _, entry := range entries {
					items = append(items, entryListItem{
						ID:        string(entry.ID),
						Title:     entry.Title,
						Username:  entry.Data.Username,
						Account:   entry.Data.Account,
						CreatedAt: entry.CreatedAt,
						UpdatedAt: entry.UpdatedAt,
					})
				}
				return writeJSON(cmd, items)
			}

			for _, entry := range entries {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", entry.ID, entry.Title, entry.Data.Username)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newEntryRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <entry-id>",
		Aliases: []string{"rm"},
		Short:   "Remove an entry and its stored password",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.service.ResolveEntryID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := app.service.RemoveEntry(cmd.Context(), id); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed entry %s\n", id)
			return err
		},
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
