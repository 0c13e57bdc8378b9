package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appcfg "mealbridge/internal/config"
	"mealbridge/internal/db"
	"mealbridge/internal/domain"
	"mealbridge/internal/events"
	"mealbridge/internal/migrate"
	"mealbridge/internal/policy"
	"mealbridge/internal/server"
	"mealbridge/internal/storage"
	"mealbridge/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mb",
	Short: "MealBridge CLI",
	Long: `MealBridge keeps a food-donation NGO's records in a local workspace:
donations and their pickup lifecycle (pending -> collected -> distributed),
urgent needs with priorities and fulfillment, and volunteer signups.
Records live in .mealbridge/mealbridge.db; a first run starts from demo data.
Use 'mb dashboard' for summaries and 'mb serve' for a local JSON API.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		workspace := viper.GetString("workspace")
		if _, err := db.EnsureWorkspace(workspace); err != nil {
			return err
		}
		return nil
	},
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("MEALBRIDGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().StringP("workspace", "w", ".", "workspace directory")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	_ = viper.BindPFlag("workspace", rootCmd.PersistentFlags().Lookup("workspace"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func registerCommands() {
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(donationCmd())
	rootCmd.AddCommand(needCmd())
	rootCmd.AddCommand(volunteerCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(logCmd())
	rootCmd.AddCommand(resetCmd())
	rootCmd.AddCommand(serveCmd())
}

type env struct {
	Store  *store.Store
	Events events.Writer
	Slots  *storage.Slots
	Config *appcfg.Config
}

func withEnv(ctx context.Context, fn func(context.Context, *env) error) error {
	workspace := viper.GetString("workspace")
	conn, err := db.Open(db.Config{Workspace: workspace})
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := migrate.Migrate(conn); err != nil {
		return err
	}
	cfg, err := appcfg.Load(workspace)
	if err != nil {
		return err
	}
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	slots := storage.New(conn, logger)
	ev := events.Writer{DB: conn}
	st := store.Open(ctx, slots, ev)
	st.Log = logger
	return fn(ctx, &env{Store: st, Events: ev, Slots: slots, Config: cfg})
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func toneColors(t policy.Tone) text.Colors {
	switch t {
	case policy.ToneWarning:
		return text.Colors{text.FgYellow}
	case policy.ToneInfo:
		return text.Colors{text.FgBlue}
	case policy.ToneSuccess:
		return text.Colors{text.FgGreen}
	case policy.ToneDanger:
		return text.Colors{text.FgRed}
	}
	return nil
}

func statusCell(s domain.DonationStatus) string {
	return toneColors(policy.StatusTone(s)).Sprint(string(s))
}

func priorityCell(p domain.NeedPriority) string {
	return toneColors(policy.PriorityTone(p)).Sprint(string(p))
}

func quantityCell(quantity float64, unit string) string {
	return strings.TrimSpace(fmt.Sprintf("%g %s", quantity, unit))
}

func donationCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "donation", Short: "Manage donations"}
	cmd.AddCommand(donationAddCmd())
	cmd.AddCommand(donationListCmd())
	cmd.AddCommand(donationStatusCmd())
	cmd.AddCommand(donationAdvanceCmd())
	return cmd
}

func donationAddCmd() *cobra.Command {
	var draft store.DonationDraft
	var status string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a donation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), func(ctx context.Context, e *env) error {
				draft.Status = domain.DonationStatus(status)
				d, err := e.Store.AddDonation(ctx, draft)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(d)
				}
				fmt.Printf("Recorded donation %s from %s (%s)\n", d.ID, d.DonorName, d.FoodType)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&draft.DonorName, "donor", "", "donor name (required)")
	cmd.Flags().StringVar(&draft.DonorContact, "contact", "", "donor contact")
	cmd.Flags().StringVar(&draft.FoodType, "food-type", "", "food type (required)")
	cmd.Flags().Float64Var(&draft.Quantity, "quantity", 0, "quantity")
	cmd.Flags().StringVar(&draft.Unit, "unit", "", "unit label, e.g. kg")
	cmd.Flags().StringVar(&draft.ExpiryDate, "expiry", "", "expiry date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&draft.Location, "location", "", "pickup location")
	cmd.Flags().StringVar(&draft.Notes, "notes", "", "notes")
	cmd.Flags().StringVar(&status, "status", "", "initial status (default pending)")
	_ = cmd.MarkFlagRequired("donor")
	_ = cmd.MarkFlagRequired("food-type")
	return cmd
}

func donationListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List donations, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), func(ctx context.Context, e *env) error {
				donations := e.Store.Donations()
				if viper.GetBool("json") {
					return printJSON(donations)
				}
				now := e.Store.Now()
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Donor", "Food Type", "Quantity", "Expiry", "Status", "Location"})
				for _, d := range donations {
					expiry := policy.FormatDate(d.ExpiryDate)
					if policy.ExpiringSoon(now, d.ExpiryDate, e.Config.Expiry.WarningDays) {
						expiry = toneColors(policy.ToneDanger).Sprint(expiry + " (expiring soon)")
					}
					tw.AppendRow(table.Row{
						d.ID, d.DonorName, d.FoodType,
						quantityCell(d.Quantity, d.Unit),
						expiry, statusCell(d.Status), d.Location,
					})
				}
				tw.Render()
				return nil
			})
		},
	}
	return cmd
}

func donationStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <id> <pending|collected|distributed>",
		Short: "Set a donation's pickup status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), func(ctx context.Context, e *env) error {
				return setDonationStatus(ctx, e, args[0], domain.DonationStatus(args[1]))
			})
		},
	}
	return cmd
}

func donationAdvanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advance <id>",
		Short: "Move a donation to its next lifecycle step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), func(ctx context.Context, e *env) error {
				d, ok := findDonation(e.Store.Donations(), args[0])
				if !ok {
					return fmt.Errorf("donation %s not found", args[0])
				}
				next := domain.NextStatus(d.Status)
				if next == "" {
					return fmt.Errorf("donation %s is already %s", d.ID, d.Status)
				}
				return setDonationStatus(ctx, e, d.ID, next)
			})
		},
	}
	return cmd
}

func setDonationStatus(ctx context.Context, e *env, id string, status domain.DonationStatus) error {
	d, ok := findDonation(e.Store.Donations(), id)
	if !ok {
		return fmt.Errorf("donation %s not found", id)
	}
	if err := e.Store.UpdateDonationStatus(ctx, id, status); err != nil {
		return err
	}
	if viper.GetBool("json") {
		d.Status = status
		return printJSON(d)
	}
	fmt.Printf("Donation %s: %s -> %s\n", id, d.Status, status)
	return nil
}

func findDonation(donations []domain.Donation, id string) (domain.Donation, bool) {
	for _, d := range donations {
		if d.ID == id {
			return d, true
		}
	}
	return domain.Donation{}, false
}

func needCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "need", Short: "Manage urgent needs"}
	cmd.AddCommand(needAddCmd())
	cmd.AddCommand(needListCmd())
	cmd.AddCommand(needToggleCmd())
	return cmd
}

func needAddCmd() *cobra.Command {
	var draft store.NeedDraft
	var priority string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an urgent need",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), func(ctx context.Context, e *env) error {
				draft.Priority = domain.NeedPriority(priority)
				n, err := e.Store.AddUrgentNeed(ctx, draft)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(n)
				}
				fmt.Printf("Recorded urgent need %s: %s (%s priority)\n", n.ID, n.Title, n.Priority)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&draft.Title, "title", "", "need title (required)")
	cmd.Flags().StringVar(&draft.Description, "description", "", "description")
	cmd.Flags().Float64Var(&draft.Quantity, "quantity", 0, "quantity")
	cmd.Flags().StringVar(&draft.Unit, "unit", "", "unit label")
	cmd.Flags().StringVar(&priority, "priority", "medium", "priority: high, medium, or low")
	cmd.Flags().StringVar(&draft.Deadline, "deadline", "", "deadline (YYYY-MM-DD)")
	cmd.Flags().StringVar(&draft.Location, "location", "", "delivery location")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func needListCmd() *cobra.Command {
	var openOnly bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List urgent needs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), func(ctx context.Context, e *env) error {
				needs := e.Store.UrgentNeeds()
				if openOnly {
					var open []domain.UrgentNeed
					for _, n := range needs {
						if !n.Fulfilled {
							open = append(open, n)
						}
					}
					needs = open
				}
				if viper.GetBool("json") {
					return printJSON(needs)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Title", "Quantity", "Priority", "Deadline", "Fulfilled", "Location"})
				for _, n := range needs {
					fulfilled := "no"
					if n.Fulfilled {
						fulfilled = "yes"
					}
					tw.AppendRow(table.Row{
						n.ID, n.Title,
						quantityCell(n.Quantity, n.Unit),
						priorityCell(n.Priority),
						policy.FormatDate(n.Deadline),
						fulfilled, n.Location,
					})
				}
				tw.Render()
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&openOnly, "open", false, "only unfulfilled needs")
	return cmd
}

func needToggleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Toggle a need's fulfillment flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), func(ctx context.Context, e *env) error {
				n, ok := e.Store.ToggleNeedFulfillment(ctx, args[0])
				if !ok {
					return fmt.Errorf("urgent need %s not found", args[0])
				}
				if viper.GetBool("json") {
					return printJSON(n)
				}
				state := "open"
				if n.Fulfilled {
					state = "fulfilled"
				}
				fmt.Printf("Need %s (%s) is now %s\n", n.ID, n.Title, state)
				return nil
			})
		},
	}
	return cmd
}

func volunteerCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "volunteer", Short: "Manage volunteer signups"}
	cmd.AddCommand(volunteerAddCmd())
	cmd.AddCommand(volunteerListCmd())
	return cmd
}

func volunteerAddCmd() *cobra.Command {
	var draft store.VolunteerDraft
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a volunteer signup",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), func(ctx context.Context, e *env) error {
				v, err := e.Store.AddVolunteer(ctx, draft)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(v)
				}
				fmt.Printf("Recorded volunteer %s: %s\n", v.ID, v.VolunteerName)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&draft.VolunteerName, "name", "", "volunteer name (required)")
	cmd.Flags().StringVar(&draft.Contact, "contact", "", "contact")
	cmd.Flags().StringVar(&draft.AvailableDate, "date", "", "available date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func volunteerListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List volunteer signups, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), func(ctx context.Context, e *env) error {
				volunteers := e.Store.Volunteers()
				if viper.GetBool("json") {
					return printJSON(volunteers)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Name", "Contact", "Available"})
				for _, v := range volunteers {
					tw.AppendRow(table.Row{v.ID, v.VolunteerName, v.Contact, policy.FormatDate(v.AvailableDate)})
				}
				tw.Render()
				return nil
			})
		},
	}
	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Workspace configuration"}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appcfg.Load(viper.GetString("workspace"))
			if err != nil {
				return err
			}
			return printJSON(cfg)
		},
	})
	var org string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default mealbridge.yml",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := appcfg.Path(viper.GetString("workspace"))
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := os.WriteFile(path, []byte(appcfg.GenerateDefault(org)), 0o644); err != nil {
				return err
			}
			fmt.Println("wrote", path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&org, "organization", "", "organization name")
	cmd.AddCommand(initCmd)
	return cmd
}

func logCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "log", Short: "Activity log"}
	var limit int
	tail := &cobra.Command{
		Use:   "tail",
		Short: "Show recent activity, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), func(ctx context.Context, e *env) error {
				items, err := e.Events.Tail(ctx, limit)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(items)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"TS", "Type", "Entity", "Payload"})
				for _, entry := range items {
					tw.AppendRow(table.Row{entry.TS, entry.Type, entry.EntityKind + " " + entry.EntityID, entry.Payload})
				}
				tw.Render()
				return nil
			})
		},
	}
	tail.Flags().IntVar(&limit, "limit", 20, "number of entries")
	cmd.AddCommand(tail)
	return cmd
}

func resetCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear all stored records (demo data returns on next run)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Print("This clears all donations, urgent needs, and volunteers. Type 'yes' to continue: ")
				reader := bufio.NewReader(os.Stdin)
				answer, _ := reader.ReadString('\n')
				if strings.TrimSpace(answer) != "yes" {
					fmt.Println("aborted")
					return nil
				}
			}
			workspace := viper.GetString("workspace")
			conn, err := db.Open(db.Config{Workspace: workspace})
			if err != nil {
				return err
			}
			defer conn.Close()
			if err := migrate.Migrate(conn); err != nil {
				return err
			}
			slots := storage.New(conn, nil)
			if err := slots.Clear(cmd.Context(), storage.KeyDonations, storage.KeyUrgentNeeds, storage.KeyVolunteers); err != nil {
				return err
			}
			fmt.Println("cleared all record slots")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "skip confirmation")
	return cmd
}

func serveCmd() *cobra.Command {
	var addr, basePath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local JSON API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), func(ctx context.Context, e *env) error {
				handler, err := server.New(server.Config{
					Store:    e.Store,
					Events:   e.Events,
					App:      e.Config,
					BasePath: basePath,
				})
				if err != nil {
					return err
				}
				srv := &http.Server{Addr: addr, Handler: handler}
				go func() {
					<-ctx.Done()
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					srv.Shutdown(shutdownCtx)
				}()
				fmt.Printf("Serving MealBridge API on http://%s%s (OpenAPI at /openapi.json)\n", addr, basePath)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().StringVar(&basePath, "base-path", "/v0", "API base path")
	return cmd
}
