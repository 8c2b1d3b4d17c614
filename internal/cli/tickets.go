package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tablekeep/tablekeep/internal/harness"
)

// NewTicketsCommand creates the tickets command: run a scenario and
// print the final kitchen queue the way the kitchen display would see it.
func NewTicketsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickets <scenario.yaml>",
		Short: "Print the kitchen queue after running a scenario",
		Long: `Run a scenario file and print its final kitchen queue in priority
order, most urgent first.

Examples:
  tablekeep tickets scenarios/dinner-rush.yaml
  tablekeep tickets scenarios/dinner-rush.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTickets(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runTickets(opts *RootOptions, path string, cmd *cobra.Command) error {
	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return &ExitError{Code: ExitCommandError, Message: "failed to load scenario", Err: err}
	}

	run, err := harness.Run(scenario, filepath.Dir(path))
	if err != nil {
		return &ExitError{Code: ExitFailure, Message: "scenario failed", Err: err}
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	snap := run.SnapshotQueue()
	if out.JSON() {
		return out.Success(snap)
	}

	if len(snap.Tickets) == 0 {
		fmt.Fprintln(out.Writer, "Queue is empty.")
		return nil
	}
	for i, t := range snap.Tickets {
		due := fmt.Sprintf("%dm remaining", t.TimeRemaining)
		if t.TimeRemaining < 0 {
			due = fmt.Sprintf("%dm overdue", -t.TimeRemaining)
		}
		fmt.Fprintf(out.Writer, "%2d. %s  table %-3d %-9s %-9s %s  (%s)\n",
			i+1, t.OrderNumber, t.TableNumber, t.Priority, t.Status, due, t.CustomerName)
		if opts.Verbose {
			for _, item := range t.Items {
				note := ""
				if item.Notes != "" {
					note = "  - " + item.Notes
				}
				fmt.Fprintf(out.Writer, "      %dx %s %s%s\n", item.Quantity, item.Name, item.UnitPrice, note)
			}
		}
	}
	return nil
}
