package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// QueueSnapshot captures the final kitchen queue of a scenario run in a
// deterministic, golden-file-friendly shape. Random order ids are
// replaced by the scenario's order refs; the logical seq and ORD numbers
// are already deterministic.
type QueueSnapshot struct {
	ScenarioName string           `json:"scenario_name"`
	Tickets      []TicketSnapshot `json:"tickets"`
}

// TicketSnapshot is one queue entry in golden output.
type TicketSnapshot struct {
	OrderRef      string        `json:"order_ref,omitempty"`
	OrderNumber   string        `json:"order_number"`
	TableNumber   int           `json:"table_number"`
	CustomerName  string        `json:"customer_name"`
	TimeRemaining int           `json:"time_remaining"`
	Priority      string        `json:"priority"`
	Status        string        `json:"status"`
	Seq           int64         `json:"seq"`
	Items         []ItemSnapshot `json:"items"`
}

// ItemSnapshot is one line item in golden output.
type ItemSnapshot struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Notes     string `json:"notes,omitempty"`
}

// SnapshotQueue derives the golden representation of the run's final
// queue.
func (r *Result) SnapshotQueue() QueueSnapshot {
	refByID := make(map[string]string, len(r.Orders))
	for ref, id := range r.Orders {
		refByID[id] = ref
	}

	snap := QueueSnapshot{ScenarioName: r.Scenario.Name}
	for _, t := range r.Coordinator.ListOpenTickets() {
		ts := TicketSnapshot{
			OrderRef:      refByID[t.OrderID],
			OrderNumber:   t.OrderNumber,
			TableNumber:   t.TableNumber,
			CustomerName:  t.CustomerName,
			TimeRemaining: t.TimeRemaining,
			Priority:      string(t.Priority),
			Status:        string(t.Status),
			Seq:           t.Seq,
		}
		for _, li := range t.Items {
			ts.Items = append(ts.Items, ItemSnapshot{
				Name:      li.Name,
				Quantity:  li.Quantity,
				UnitPrice: li.UnitPrice.String(),
				Notes:     li.Notes,
			})
		}
		snap.Tickets = append(snap.Tickets, ts)
	}
	return snap
}

// RunWithGolden executes a scenario and compares its final queue against
// the golden file testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario, baseDir string) *Result {
	t.Helper()

	result, err := Run(scenario, baseDir)
	if err != nil {
		t.Fatalf("scenario %s: %v", scenario.Name, err)
	}
	for _, err := range result.Assert() {
		t.Errorf("scenario %s: %v", scenario.Name, err)
	}

	data, err := json.MarshalIndent(result.SnapshotQueue(), "", "  ")
	if err != nil {
		t.Fatalf("scenario %s: marshal queue snapshot: %v", scenario.Name, err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
	return result
}
