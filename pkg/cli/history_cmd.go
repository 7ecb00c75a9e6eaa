package cli

import (
	"net/url"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

type historyResponse struct {
	History []map[string]interface{} `json:"history"`
	Total   int64                    `json:"total"`
}

func newHistoryCmd(client *Client, output *string) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent gateway executions",
		RunE: func(_ *cobra.Command, _ []string) error {
			params := url.Values{
				"limit":  {strconv.Itoa(limit)},
				"offset": {strconv.Itoa(offset)},
			}
			var resp historyResponse
			if err := client.Do("GET", "/history", params, nil, &resp); err != nil {
				return err
			}
			if *output == "json" {
				return printJSON(os.Stdout, resp)
			}
			printTable(os.Stdout,
				[]string{"id", "database", "status", "rowCount", "durationMs", "createdAt"},
				resp.History)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "Offset")

	return cmd
}
