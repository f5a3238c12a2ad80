package main

import (
	"fmt"
	"time"

	"github.com/garments-erp/backend/internal/bootstrap"
	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/garments-erp/backend/internal/infrastructure/scheduler"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

type periodOptions struct {
	start string
	end   string
}

// period parses --start/--end; both empty means the current month to date
func (o *periodOptions) period(now time.Time) (finance.TrialBalancePeriod, error) {
	if o.start == "" && o.end == "" {
		return scheduler.CurrentMonth(now), nil
	}
	if o.start == "" || o.end == "" {
		return finance.TrialBalancePeriod{}, fmt.Errorf("--start and --end must be given together")
	}
	start, err := time.Parse(dateLayout, o.start)
	if err != nil {
		return finance.TrialBalancePeriod{}, fmt.Errorf("invalid --start: %w", err)
	}
	end, err := time.Parse(dateLayout, o.end)
	if err != nil {
		return finance.TrialBalancePeriod{}, fmt.Errorf("invalid --end: %w", err)
	}
	p := finance.TrialBalancePeriod{StartDate: start, EndDate: end}
	if err := p.Validate(); err != nil {
		return finance.TrialBalancePeriod{}, err
	}
	return p, nil
}

func newCacheCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached trial balance reports",
	}

	opts := &periodOptions{}
	warm := &cobra.Command{
		Use:   "warm",
		Short: "Compute and cache the trial balance for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			period, err := opts.period(time.Now())
			if err != nil {
				return err
			}
			return withContainer(cmd.Context(), flags, func(c *bootstrap.Container) error {
				if err := c.Services.TrialBalance.WarmCache(cmd.Context(), period); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "trial balance cached for %s to %s\n",
					period.StartDate.Format(dateLayout), period.EndDate.Format(dateLayout))
				return nil
			})
		},
	}
	warm.Flags().StringVar(&opts.start, "start", "", "Period start (YYYY-MM-DD)")
	warm.Flags().StringVar(&opts.end, "end", "", "Period end (YYYY-MM-DD)")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop every cached trial balance report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd.Context(), flags, func(c *bootstrap.Container) error {
				removed, err := c.Services.TrialBalance.InvalidateCache(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %d cached reports\n", removed)
				return nil
			})
		},
	}

	cmd.AddCommand(warm, clearCmd)
	return cmd
}
