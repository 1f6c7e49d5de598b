package cli

import (
	"encoding/json"
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
)

var groupsCmd = &cobra.Command{
	Use:     "groups",
	Aliases: []string{"companies"},
	Short:   "List companies and their datasets",
	Args:    cobra.NoArgs,
	RunE:    runGroups,
}

type groupOutput struct {
	ID       domain.GroupKey `json:"id"`
	Datasets []string        `json:"guid"`
}

func init() {
	groupsCmd.Flags().Bool("json", false, "print groups as JSON")
	rootCmd.AddCommand(groupsCmd)
}

func runGroups(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	svc, err := loadServices()
	if err != nil {
		return err
	}

	registry, err := svc.Refresh.Registry(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		groups := lo.Map(registry.Groups(), func(g domain.ResourceGroup, _ int) groupOutput {
			return groupOutput{ID: g.Key, Datasets: lo.Ternary(g.Members == nil, []string{}, g.Members)}
		})
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(groups)
	}

	if registry.Len() == 0 {
		fmt.Fprintf(out, "No companies in %s\n", svc.Refresh.RegistryPath())
		return nil
	}

	for _, g := range registry.Groups() {
		fmt.Fprintf(out, "Company: %s (%d dataset(s))\n", g.Key, len(g.Members))
		for _, id := range g.Members {
			fmt.Fprintf(out, "\t- %s\n", id)
		}
	}
	return nil
}
