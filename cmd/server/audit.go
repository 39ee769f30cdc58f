package main

import (
	"github.com/spf13/cobra"

	"github.com/RanjithKumar100/TimeWise-FireBase-CRM-sub001/api"
)

var auditLookback int

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run one capacity sweep and exit",
	Long: `audit scans the last --days calendar days for owners whose entries add
up to more than 24 hours on one date, stores the sweep and logs each day found.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.store.Close()

		scheduler := api.NewCapacityAuditScheduler(e.store, e.store, e.log)
		scheduler.LookbackDays = auditLookback

		audit, err := scheduler.Sweep(cmd.Context())
		if err != nil {
			return err
		}
		cmd.Printf("checked %s to %s: %d day(s) over capacity\n", audit.From, audit.To, len(audit.Violations))
		return nil
	},
}

func init() {
	auditCmd.Flags().IntVar(&auditLookback, "days", api.DefaultLookbackDays, "how many days back to scan")
}
