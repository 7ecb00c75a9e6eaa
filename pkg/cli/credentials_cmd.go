package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newCredentialsCmd(client *Client, output *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage the active remote credential set",
	}

	var accountID, token string
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Set the active credential set",
		RunE: func(_ *cobra.Command, _ []string) error {
			if token == "" {
				// Prompt rather than force the token through argv/history.
				fmt.Fprint(os.Stderr, "Token: ")
				data, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Fprintln(os.Stderr)
				if err != nil {
					return fmt.Errorf("read token: %w", err)
				}
				token = strings.TrimSpace(string(data))
			}

			body := map[string]string{"accountId": accountID, "token": token}
			var resp map[string]interface{}
			if err := client.Do("PUT", "/credentials", nil, body, &resp); err != nil {
				return err
			}
			fmt.Printf("Credential set for account %s\n", accountID)
			return nil
		},
	}
	setCmd.Flags().StringVar(&accountID, "account", "", "Remote account id")
	setCmd.Flags().StringVar(&token, "token", "", "Bearer token (prompted when omitted)")
	_ = setCmd.MarkFlagRequired("account")
	cmd.AddCommand(setCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the active credential (token redacted)",
		RunE: func(_ *cobra.Command, _ []string) error {
			var resp map[string]interface{}
			if err := client.Do("GET", "/credentials", nil, nil, &resp); err != nil {
				return err
			}
			if *output == "json" {
				return printJSON(os.Stdout, resp)
			}
			if configured, _ := resp["configured"].(bool); !configured {
				fmt.Println("No credential configured.")
				return nil
			}
			fmt.Printf("Account: %v\nToken:   %v\n", resp["accountId"], resp["token"])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear the active credential set",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := client.Do("DELETE", "/credentials", nil, nil, nil); err != nil {
				return err
			}
			fmt.Println("Credential cleared.")
			return nil
		},
	})

	return cmd
}
