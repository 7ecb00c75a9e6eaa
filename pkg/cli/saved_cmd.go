package cli

import (
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"
)

type savedQueriesResponse struct {
	SavedQueries []map[string]interface{} `json:"savedQueries"`
	Total        int64                    `json:"total"`
}

func newSavedCmd(client *Client, output *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saved",
		Short: "Manage saved queries",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved queries",
		RunE: func(_ *cobra.Command, _ []string) error {
			var resp savedQueriesResponse
			if err := client.Do("GET", "/saved-queries", nil, nil, &resp); err != nil {
				return err
			}
			if *output == "json" {
				return printJSON(os.Stdout, resp)
			}
			printTable(os.Stdout, []string{"id", "name", "database", "sql"}, resp.SavedQueries)
			return nil
		},
	})

	var name, sqlText, database string
	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "Save a named SQL snippet",
		RunE: func(_ *cobra.Command, _ []string) error {
			body := map[string]interface{}{"name": name, "sql": sqlText}
			if database != "" {
				body["database"] = database
			}
			var resp map[string]interface{}
			if err := client.Do("POST", "/saved-queries", nil, body, &resp); err != nil {
				return err
			}
			fmt.Printf("Saved %v as %q\n", resp["id"], name)
			return nil
		},
	}
	saveCmd.Flags().StringVar(&name, "name", "", "Snippet name")
	saveCmd.Flags().StringVar(&sqlText, "sql", "", "SQL text")
	saveCmd.Flags().StringVarP(&database, "database", "d", "", "Target database id")
	_ = saveCmd.MarkFlagRequired("name")
	_ = saveCmd.MarkFlagRequired("sql")
	cmd.AddCommand(saveCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a saved query",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := client.Do("DELETE", "/saved-queries/"+url.PathEscape(args[0]), nil, nil, nil); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	})

	return cmd
}
