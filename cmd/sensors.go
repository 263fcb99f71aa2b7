package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	statusadapter "github.com/oraad/ogero-sensors/internal/adapters/render/status"
	"github.com/oraad/ogero-sensors/internal/application"
	"github.com/oraad/ogero-sensors/internal/domain"
)

func newSensorsCmd(app *app) *cobra.Command {
	var entryID string
	var asJSON bool
	var staleAfter time.Duration

	cmd := &cobra.Command{
		Use:   "sensors",
		Short: "Fetch and display the sensors of every entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, failures, err := selectEntries(cmd.Context(), app, entryID)
			if err != nil {
				return err
			}

			integration, err := app.newIntegration()
			if err != nil {
				return err
			}
			defer integration.Close()

			var statuses []application.EntryStatus
			fetch := func(ctx context.Context) error {
				statuses = setupStatuses(ctx, integration, entries)
				for _, failure := range failures {
					statuses = append(statuses, application.SetupFailedStatus(failure.Entry, failure.Err))
				}
				return nil
			}

			if asJSON {
				if err := fetch(cmd.Context()); err != nil {
					return err
				}
				return writeJSON(cmd, statuses)
			}

			if err := runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), "Fetching Ogero sensors...", fetch); err != nil {
				return err
			}

			rendered, err := app.statusRenderer(statuses, statusadapter.RenderOptions{
				Now:        app.now(),
				StaleAfter: staleAfter,
			})
			if err != nil {
				return fmt.Errorf("render sensors: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&entryID, "entry", "", "Entry ID or unique prefix (default: all entries)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().DurationVar(&staleAfter, "stale-after", 2*time.Hour, "Mark values older than this as stale")

	return cmd
}

func selectEntries(ctx context.Context, app *app, rawID string) ([]domain.ConfigEntry, []application.EntryFailure, error) {
	var id domain.EntryID
	if rawID != "" {
		resolved, err := app.service.ResolveEntryID(ctx, rawID)
		if err != nil {
			return nil, nil, err
		}
		id = resolved
	}

	entries, failures, err := app.service.LoadEntries(ctx)
	if err != nil || id == "" {
		return entries, failures, err
	}

	for _, entry := range entries {
		if entry.ID == id {
			return []domain.ConfigEntry{entry}, nil, nil
		}
	}
	for _, failure := range failures {
		if failure.Entry.ID == id {
			return nil, []application.EntryFailure{failure}, nil
		}
	}
	return nil, nil, fmt.Errorf("%w: %s", domain.ErrEntryNotFound, id)
}

// setupStatuses sets up each entry once; failed setups are reported in place.
func setupStatuses(ctx context.Context, integration *application.Integration, entries []domain.ConfigEntry) []application.EntryStatus {
	statuses := make([]application.EntryStatus, 0, len(entries))
	for _, entry := range entries {
		runtime, err := integration.SetupEntry(ctx, entry)
		if err != nil {
			statuses = append(statuses, application.SetupFailedStatus(entry, err))
			continue
		}
		statuses = append(statuses, application.RuntimeStatus(runtime))
	}
	return statuses
}
