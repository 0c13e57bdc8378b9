package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mealbridge/internal/domain"
	"mealbridge/internal/policy"
	"mealbridge/internal/stats"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show summary cards, distributions, and trends",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), func(ctx context.Context, e *env) error {
				return renderDashboard(e)
			})
		},
	}
	return cmd
}

func renderDashboard(e *env) error {
	donations := e.Store.Donations()
	needs := e.Store.UrgentNeeds()
	now := e.Store.Now()

	summary := stats.Summarize(donations, needs, now, e.Config.Expiry.WarningDays)
	statusDist := stats.StatusDistribution(donations)
	priorityDist := stats.PriorityDistribution(needs)
	foodTypes := stats.FoodTypeHistogram(donations)
	weekly := stats.WeeklyTrend(donations, now)
	monthly := stats.MonthlyTrend(donations, needs, now)

	if viper.GetBool("json") {
		return printJSON(map[string]any{
			"organization":         e.Config.Organization,
			"summary":              summary,
			"statusDistribution":   statusDist,
			"priorityDistribution": priorityDist,
			"foodTypes":            foodTypes,
			"weeklyTrend":          weekly,
			"monthlyTrend":         monthly,
		})
	}

	fmt.Printf("%s - %s\n\n", e.Config.Organization, now.Format("Jan 2, 2006"))

	cards := table.NewWriter()
	cards.SetOutputMirror(os.Stdout)
	cards.AppendHeader(table.Row{"Total Donations", "Pending Pickups", "Urgent Needs", "Expiring Soon"})
	cards.AppendRow(table.Row{summary.TotalDonations, summary.PendingPickups, summary.OpenHighPriorityNeeds, summary.ExpiringSoon})
	cards.Render()
	fmt.Println()

	renderBuckets("Donation Status", statusDist)
	renderBuckets("Need Priority", priorityDist)
	renderBuckets("Food Types", foodTypes)

	weeklyTW := table.NewWriter()
	weeklyTW.SetOutputMirror(os.Stdout)
	weeklyTW.SetTitle("Donations This Week")
	weeklyTW.AppendHeader(table.Row{"Day", "Date", "Donations"})
	for _, p := range weekly {
		weeklyTW.AppendRow(table.Row{p.Label, p.Date, p.Donations})
	}
	weeklyTW.Render()
	fmt.Println()

	monthlyTW := table.NewWriter()
	monthlyTW.SetOutputMirror(os.Stdout)
	monthlyTW.SetTitle("Monthly Trends")
	monthlyTW.AppendHeader(table.Row{"Month", "Donations", "Needs", "Fulfilled"})
	for _, p := range monthly {
		monthlyTW.AppendRow(table.Row{p.Label, p.Donations, p.Needs, p.Fulfilled})
	}
	monthlyTW.Render()
	fmt.Println()

	recent := donations
	if len(recent) > e.Config.Dashboard.Recent {
		recent = recent[:e.Config.Dashboard.Recent]
	}
	recentTW := table.NewWriter()
	recentTW.SetOutputMirror(os.Stdout)
	recentTW.SetTitle("Recent Donations")
	recentTW.AppendHeader(table.Row{"Donor", "Food Type", "Quantity", "Status"})
	for _, d := range recent {
		recentTW.AppendRow(table.Row{d.DonorName, d.FoodType, quantityCell(d.Quantity, d.Unit), statusCell(d.Status)})
	}
	recentTW.Render()
	fmt.Println()

	var open []domain.UrgentNeed
	for _, n := range needs {
		if !n.Fulfilled {
			open = append(open, n)
		}
		if len(open) == e.Config.Dashboard.Recent {
			break
		}
	}
	openTW := table.NewWriter()
	openTW.SetOutputMirror(os.Stdout)
	openTW.SetTitle("Urgent Needs")
	openTW.AppendHeader(table.Row{"Title", "Quantity", "Needed By", "Priority"})
	for _, n := range open {
		openTW.AppendRow(table.Row{n.Title, quantityCell(n.Quantity, n.Unit), policy.FormatDate(n.Deadline), priorityCell(n.Priority)})
	}
	openTW.Render()
	return nil
}

func renderBuckets(title string, buckets []stats.Bucket) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetTitle(title)
	tw.AppendHeader(table.Row{"Name", "Count"})
	for _, b := range buckets {
		tw.AppendRow(table.Row{b.Name, b.Count})
	}
	tw.Render()
	fmt.Println()
}
