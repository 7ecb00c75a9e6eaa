package cli

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

type databasesResponse struct {
	Databases []map[string]interface{} `json:"databases"`
}

type schemaResponse struct {
	Objects []map[string]interface{} `json:"objects"`
}

type rowsResponse struct {
	Rows     []map[string]interface{} `json:"rows"`
	RowCount int                      `json:"rowCount"`
	PageSize int                      `json:"pageSize"`
}

func newDatabasesCmd(client *Client, output *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "databases",
		Short: "Manage the database registry",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered databases",
		RunE: func(_ *cobra.Command, _ []string) error {
			var resp databasesResponse
			if err := client.Do("GET", "/databases", nil, nil, &resp); err != nil {
				return err
			}
			return renderDatabases(resp, *output)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "sync",
		Short: "Discover remote databases and refresh the registry",
		RunE: func(_ *cobra.Command, _ []string) error {
			var resp databasesResponse
			if err := client.Do("POST", "/databases/sync", nil, nil, &resp); err != nil {
				return err
			}
			return renderDatabases(resp, *output)
		},
	})

	return cmd
}

func renderDatabases(resp databasesResponse, output string) error {
	if output == "json" {
		return printJSON(os.Stdout, resp)
	}
	printTable(os.Stdout, []string{"id", "name", "version", "numTables"}, resp.Databases)
	return nil
}

func newTablesCmd(client *Client, output *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tables <database-id>",
		Short: "List tables and views of a database",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var resp schemaResponse
			if err := client.Do("GET", "/databases/"+url.PathEscape(args[0])+"/schema", nil, nil, &resp); err != nil {
				return err
			}
			if *output == "json" {
				return printJSON(os.Stdout, resp)
			}
			printTable(os.Stdout, []string{"name", "kind"}, resp.Objects)
			return nil
		},
	}
}

func newRowsCmd(client *Client, output *string) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "rows <database-id> <table>",
		Short: "Browse one page of table rows",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			params := url.Values{
				"limit":  {strconv.Itoa(limit)},
				"offset": {strconv.Itoa(offset)},
			}
			path := "/databases/" + url.PathEscape(args[0]) + "/tables/" + url.PathEscape(args[1]) + "/rows"

			var resp rowsResponse
			if err := client.Do("GET", path, params, nil, &resp); err != nil {
				return err
			}
			if *output == "json" {
				return printJSON(os.Stdout, resp)
			}
			printResultRows(os.Stdout, resp.Rows)
			fmt.Printf("\n%d row(s), page size %d\n", resp.RowCount, resp.PageSize)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Page size (1-100)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Row offset")

	return cmd
}
