package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/tablekeep/tablekeep/internal/domain"
	"github.com/tablekeep/tablekeep/internal/house"
	"github.com/tablekeep/tablekeep/internal/menu"
	"github.com/tablekeep/tablekeep/internal/reserve"
	"github.com/tablekeep/tablekeep/internal/testutil"
)

// NewDemoCommand creates the demo command: a scripted dinner rush over
// the built-in menu on a simulated clock.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted dinner-rush demo",
		Long: `Simulate a short dinner service: seat reservations, place their
pre-orders, and watch the kitchen queue re-sort as simulated time
advances and tickets go overdue.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(rootOpts, cmd)
		},
	}
	return cmd
}

func runDemo(opts *RootOptions, cmd *cobra.Command) error {
	w := cmd.OutOrStdout()
	clock := testutil.NewManualClock(time.Time{})

	coord := house.New(menu.Default(), house.Config{
		Clock:      clock,
		Picker:     reserve.SmallestFit{},
		SyncEvents: true,
	})
	defer coord.Close()

	coord.Subscribe(func(ev domain.Event) {
		if ev.Kind == domain.EventTicketBecameUrgent {
			fmt.Fprintf(w, "  !! ticket for order %s is now URGENT\n", ev.OrderID)
		}
	})

	for _, t := range []struct{ number, capacity int }{
		{1, 2}, {2, 2}, {3, 4}, {4, 4}, {5, 6}, {6, 8},
	} {
		if err := coord.AddTable(t.number, t.capacity); err != nil {
			return err
		}
	}

	guests := []struct {
		name    string
		party   int
		arrival string
		order   []domain.PreOrderItem
	}{
		{"John Smith", 4, domain.ArrivalIn30Min, []domain.PreOrderItem{
			{MenuItemID: "grilled-chicken", Quantity: 2, Notes: "well done, no spice"},
			{MenuItemID: "caesar-salad", Quantity: 1, Notes: "extra dressing"},
		}},
		{"Sarah Johnson", 2, domain.ArrivalIn1Hour, []domain.PreOrderItem{
			{MenuItemID: "beef-burger", Quantity: 1, Notes: "medium rare"},
			{MenuItemID: "caesar-salad", Quantity: 1},
		}},
		{"Mike Davis", 6, domain.ArrivalIn30Min, []domain.PreOrderItem{
			{MenuItemID: "pasta-carbonara", Quantity: 2, Notes: "extra cheese"},
			{MenuItemID: "chocolate-cake", Quantity: 1, Notes: "birthday special"},
		}},
	}

	fmt.Fprintln(w, "Seating reservations and placing pre-orders...")
	for _, g := range guests {
		res, err := coord.CreateReservation(reserve.CreateInput{
			CustomerName: g.name,
			Phone:        "555-0100",
			PartySize:    g.party,
			Arrival:      g.arrival,
			PreOrder:     g.order,
		})
		if err != nil {
			return err
		}
		table, err := coord.AutoSeatReservation(res.ID)
		if err != nil {
			return err
		}
		order, err := coord.PlacePreOrder(res.ID)
		if err != nil {
			return err
		}
		total, err := coord.Orders.ComputeTotal(order.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %-14s party of %d -> table %d, %s, total %s\n",
			g.name, g.party, table, order.Number, total)
	}

	for _, advance := range []int{0, 10, 10, 10} {
		if advance > 0 {
			clock.AdvanceMinutes(advance)
			fmt.Fprintf(w, "\n-- %d minutes later --\n", advance)
		} else {
			fmt.Fprintln(w)
		}
		coord.Tick()
		printQueue(w, coord.ListOpenTickets())
	}

	return nil
}

func printQueue(w io.Writer, tickets []domain.Ticket) {
	if len(tickets) == 0 {
		fmt.Fprintln(w, "kitchen queue: empty")
		return
	}
	fmt.Fprintln(w, "kitchen queue:")
	for i, t := range tickets {
		due := fmt.Sprintf("%dm remaining", t.TimeRemaining)
		if t.TimeRemaining < 0 {
			due = fmt.Sprintf("%dm overdue", -t.TimeRemaining)
		}
		fmt.Fprintf(w, "  %d. %s table %d  %-7s %s\n", i+1, t.OrderNumber, t.TableNumber, t.Priority, due)
	}
}
