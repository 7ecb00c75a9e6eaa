package cli

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

type queryResponse struct {
	Results       []map[string]interface{} `json:"results"`
	ExecutionTime int64                    `json:"executionTime"`
	RowCount      int                      `json:"rowCount"`
	Changes       *int64                   `json:"changes"`
	Cached        bool                     `json:"cached"`
}

func newQueryCmd(client *Client, output *string) *cobra.Command {
	var (
		sqlText  string
		database string
		asCSV    bool
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Execute SQL against a database",
		Long:  "Execute SQL via the gateway. SQL comes from --sql or a stdin pipe.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if sqlText == "" {
				stat, _ := os.Stdin.Stat()
				if (stat.Mode() & os.ModeCharDevice) == 0 {
					data, err := io.ReadAll(os.Stdin)
					if err != nil {
						return fmt.Errorf("read stdin: %w", err)
					}
					sqlText = strings.TrimSpace(string(data))
				}
			}
			if sqlText == "" {
				return fmt.Errorf("provide SQL via --sql flag or stdin pipe")
			}

			if asCSV {
				params := url.Values{"database": {database}, "sql": {sqlText}}
				raw, err := client.DoRaw("GET", "/query/export", params)
				if err != nil {
					return err
				}
				_, err = os.Stdout.Write(raw)
				return err
			}

			var resp queryResponse
			body := map[string]string{"sql": sqlText, "database": database}
			if err := client.Do("POST", "/query", nil, body, &resp); err != nil {
				return err
			}

			if *output == "json" {
				return printJSON(os.Stdout, resp)
			}

			printResultRows(os.Stdout, resp.Results)
			cached := ""
			if resp.Cached {
				cached = " (cached)"
			}
			fmt.Printf("\n%d row(s) in %dms%s\n", resp.RowCount, resp.ExecutionTime, cached)
			return nil
		},
	}

	cmd.Flags().StringVar(&sqlText, "sql", "", "SQL statement to execute")
	cmd.Flags().StringVarP(&database, "database", "d", "", "Target database id")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "Emit results as CSV")
	_ = cmd.MarkFlagRequired("database")

	return cmd
}
