package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Trigger dataset refreshes",
	Long: `Trigger a refresh of every dataset in one company or in all companies.

Each dataset gets exactly one request. A rejected dataset is reported and
the remaining datasets are still refreshed; only errors that stop the run
(missing credentials, unknown company, unreadable registry) change the
exit code.

Examples:
  pbi-refresh refresh --all
  pbi-refresh refresh --group 3
  pbi-refresh refresh --all --json`,
	Args: cobra.NoArgs,
	RunE: runRefresh,
}

func init() {
	refreshCmd.Flags().Bool("all", false, "refresh every company")
	refreshCmd.Flags().String("group", "", "refresh the company with this id")
	refreshCmd.Flags().Bool("json", false, "print results as JSON")
	refreshCmd.MarkFlagsMutuallyExclusive("all", "group")
	refreshCmd.MarkFlagsOneRequired("all", "group")
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, _ []string) error {
	all, _ := cmd.Flags().GetBool("all")
	group, _ := cmd.Flags().GetString("group")
	asJSON, _ := cmd.Flags().GetBool("json")

	mode := domain.AllGroups()
	if !all {
		key, err := domain.ParseGroupKey(group)
		if err != nil {
			return err
		}
		mode = domain.SingleGroup(key)
	}

	svc, err := loadServices()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var printer *outcomePrinter
	var onResult func(domain.RefreshResult)
	if !asJSON {
		registry, err := svc.Refresh.Registry(cmd.Context())
		if err != nil {
			return err
		}
		printer = newOutcomePrinter(out, visitedGroups(mode, registry))
		onResult = printer.Print
	}

	results, err := svc.Refresh.Refresh(cmd.Context(), mode, onResult)
	if err != nil {
		if key, single := mode.Key(); single && errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("company %s is not in %s: %w", key, svc.Refresh.RegistryPath(), err)
		}
		return err
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(lo.Ternary(results == nil, []domain.RefreshResult{}, results))
	}

	printer.Flush()
	printSummary(out, results)
	return nil
}

// visitedGroups lists the companies a run of mode walks through, in dispatch order.
func visitedGroups(mode domain.DispatchMode, registry domain.Registry) []domain.GroupKey {
	key, single := mode.Key()
	if !single {
		return registry.Keys()
	}
	if _, ok := registry.Get(key); ok {
		return []domain.GroupKey{key}
	}
	return nil
}

// outcomePrinter writes results grouped under a company header as they arrive.
// Companies without datasets still get their header.
type outcomePrinter struct {
	out     io.Writer
	pending []domain.GroupKey
	current *domain.GroupKey
}

func newOutcomePrinter(out io.Writer, groups []domain.GroupKey) *outcomePrinter {
	return &outcomePrinter{out: out, pending: groups}
}

// Print writes one result, preceded by the headers of every company up to its own.
func (p *outcomePrinter) Print(r domain.RefreshResult) {
	if p.current == nil || *p.current != r.GroupKey {
		p.headersThrough(r.GroupKey)
	}
	fmt.Fprintf(p.out, "\t- %s: %s\n", r.ResourceID, outcomeLabel(r.Outcome))
	if !r.Outcome.Succeeded() && r.Outcome.Detail != "" {
		fmt.Fprintf(p.out, "\t  %s\n", r.Outcome.Detail)
	}
}

// Flush writes the headers of trailing companies that produced no results.
func (p *outcomePrinter) Flush() {
	for _, key := range p.pending {
		p.header(key)
	}
	p.pending = nil
}

func (p *outcomePrinter) headersThrough(key domain.GroupKey) {
	idx := lo.IndexOf(p.pending, key)
	if idx < 0 {
		p.header(key)
		return
	}
	for _, k := range p.pending[:idx+1] {
		p.header(k)
	}
	p.pending = p.pending[idx+1:]
}

func (p *outcomePrinter) header(key domain.GroupKey) {
	p.current = &key
	fmt.Fprintf(p.out, "Company: %s\n", key)
}

func outcomeLabel(o domain.RefreshOutcome) string {
	if o.Succeeded() {
		return "Accepted"
	}
	return "Rejected"
}

func printSummary(out io.Writer, results []domain.RefreshResult) {
	if len(results) == 0 {
		fmt.Fprintln(out, "No datasets to refresh.")
		return
	}
	accepted := lo.CountBy(results, func(r domain.RefreshResult) bool {
		return r.Outcome.Succeeded()
	})
	fmt.Fprintf(out, "\n%d accepted, %d rejected\n", accepted, len(results)-accepted)
}
