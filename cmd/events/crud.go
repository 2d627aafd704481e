package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"event-manager/internal/events/core/domain"

	"github.com/spf13/cobra"
)

var (
	outputJSON bool

	eventName string
	startDate string
	endDate   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List events",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one event",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an event",
	Args:  cobra.NoArgs,
	RunE:  runCreate,
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change an event",
	Long:  `Change an event. Only the fields given as flags are replaced.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdate,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an event",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	for _, c := range []*cobra.Command{listCmd, getCmd, createCmd, updateCmd} {
		c.Flags().BoolVar(&outputJSON, "json", false, "Output as JSON")
	}
	for _, c := range []*cobra.Command{createCmd, updateCmd} {
		c.Flags().StringVar(&eventName, "name", "", "Event name")
		c.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD)")
		c.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD)")
	}
	_ = createCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(listCmd, getCmd, createCmd, updateCmd, deleteCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store := newStore(cfg)
	if err := store.Load(cmd.Context()); err != nil {
		return err
	}
	return printEvents(cmd.OutOrStdout(), store.All(), outputJSON)
}

func runGet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	e, err := newStore(cfg).Fetch(cmd.Context(), domain.EventID(args[0]))
	if err != nil {
		return err
	}
	return printEvents(cmd.OutOrStdout(), []domain.Event{e}, outputJSON)
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	e, err := newStore(cfg).Create(cmd.Context(), domain.Event{
		EventName: eventName,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return err
	}
	return printEvents(cmd.OutOrStdout(), []domain.Event{e}, outputJSON)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store := newStore(cfg)

	current, err := store.Fetch(cmd.Context(), domain.EventID(args[0]))
	if err != nil {
		return err
	}
	changed := applyFlags(current, cmd)
	changed.ID = domain.EventID(args[0])

	e, err := store.Update(cmd.Context(), changed)
	if err != nil {
		return err
	}
	return printEvents(cmd.OutOrStdout(), []domain.Event{e}, outputJSON)
}

func runDelete(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	res := newStore(cfg).Delete(cmd.Context(), domain.EventID(args[0]))
	if !res.OK() {
		return res.Err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", res.ID)
	return nil
}

// applyFlags replaces the fields whose flags were set.
func applyFlags(e domain.Event, cmd *cobra.Command) domain.Event {
	if cmd.Flags().Changed("name") {
		e.EventName = eventName
	}
	if cmd.Flags().Changed("start") {
		e.StartDate = startDate
	}
	if cmd.Flags().Changed("end") {
		e.EndDate = endDate
	}
	return e
}

func printEvents(w io.Writer, events []domain.Event, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(events)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTART\tEND")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.EventName, e.StartDate, e.EndDate)
	}
	return tw.Flush()
}
