package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Inspect or clear the cached access token",
}

var tokenShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Obtain a token and describe it",
	Long: `Obtain a token the same way a refresh would (cached if still valid,
otherwise acquired and cached) and print its type, expiry and claims.
The access token itself is never printed.`,
	Args: cobra.NoArgs,
	RunE: runTokenShow,
}

var tokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the cached token",
	Args:  cobra.NoArgs,
	RunE:  runTokenClear,
}

func init() {
	tokenShowCmd.Flags().Bool("json", false, "print token details as JSON")
	tokenCmd.AddCommand(tokenShowCmd)
	tokenCmd.AddCommand(tokenClearCmd)
	rootCmd.AddCommand(tokenCmd)
}

func runTokenShow(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	svc, err := loadServices()
	if err != nil {
		return err
	}

	token, err := svc.Refresh.Token(cmd.Context())
	if err != nil {
		return err
	}
	info := svc.Token.Inspect(*token)

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	fmt.Fprintf(out, "Type:      %s\n", info.TokenType)
	if info.ExpiresAt.IsZero() {
		fmt.Fprintln(out, "Expires:   unknown")
	} else {
		fmt.Fprintf(out, "Expires:   %s\n", info.ExpiresAt.Local().Format(time.RFC1123))
	}
	if info.Valid {
		fmt.Fprintf(out, "Valid:     yes (%s remaining)\n", info.Remaining().Truncate(time.Second))
	} else {
		fmt.Fprintln(out, "Valid:     no")
	}
	if info.Subject != "" {
		fmt.Fprintf(out, "Subject:   %s\n", info.Subject)
	}
	if info.Audience != "" {
		fmt.Fprintf(out, "Audience:  %s\n", info.Audience)
	}
	if info.TenantID != "" {
		fmt.Fprintf(out, "Tenant:    %s\n", info.TenantID)
	}
	return nil
}

func runTokenClear(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}
	if err := svc.Token.ClearCache(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Token cache cleared.")
	return nil
}
