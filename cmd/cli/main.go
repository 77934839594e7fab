package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bookkeeping-cli",
		Short: "Bookkeeping CLI tool",
		Long:  `A command line interface for interacting with the bookkeeping API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the bookkeeping API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	// Import commands
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Statement import operations",
	}

	var (
		previewEncoding   string
		previewDelimiter  string
		previewHasHeaders bool
		previewSkipRows   int
		previewDateFormat string
	)
	previewCmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Preview a bank statement file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			previewFile(args[0], previewEncoding, previewDelimiter, previewHasHeaders, previewSkipRows, previewDateFormat)
		},
	}
	previewCmd.Flags().StringVar(&previewEncoding, "encoding", "utf-8", "Declared file encoding (utf-8, shift_jis, euc-jp)")
	previewCmd.Flags().StringVar(&previewDelimiter, "delimiter", ",", "Field delimiter")
	previewCmd.Flags().BoolVar(&previewHasHeaders, "headers", true, "First row is a header")
	previewCmd.Flags().IntVar(&previewSkipRows, "skip", 0, "Rows to skip before the header")
	previewCmd.Flags().StringVar(&previewDateFormat, "date-format", "", "Date format hint (e.g. YYYY/MM/DD)")

	importCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(importCmd)

	// Ledger commands
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Subsidiary ledger operations",
	}

	var (
		ledgerFrom    string
		ledgerTo      string
		ledgerOpening string
	)
	showCmd := &cobra.Command{
		Use:   "show <account-id>",
		Short: "Show the account ledger with running balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			q := url.Values{}
			q.Set("from", ledgerFrom)
			q.Set("to", ledgerTo)
			if ledgerOpening != "" {
				q.Set("opening_balance", ledgerOpening)
			}
			getJSON("/api/v1/ledger/" + url.PathEscape(args[0]) + "/?" + q.Encode())
		},
	}
	showCmd.Flags().StringVar(&ledgerFrom, "from", "", "Range start (YYYY-MM-DD)")
	showCmd.Flags().StringVar(&ledgerTo, "to", "", "Range end (YYYY-MM-DD)")
	showCmd.Flags().StringVar(&ledgerOpening, "opening", "", "Opening balance")
	_ = showCmd.MarkFlagRequired("from")
	_ = showCmd.MarkFlagRequired("to")

	agingCmd := &cobra.Command{
		Use:   "aging <account-id>",
		Short: "Show open balances bucketed by elapsed days",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/ledger/" + url.PathEscape(args[0]) + "/aging")
		},
	}

	scheduleCmd := &cobra.Command{
		Use:   "schedule <account-id>",
		Short: "Show open balances projected onto expected due dates",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/ledger/" + url.PathEscape(args[0]) + "/payment-schedule")
		},
	}

	ledgerCmd.AddCommand(showCmd, agingCmd, scheduleCmd)
	rootCmd.AddCommand(ledgerCmd)

	// Account commands
	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "List the chart of accounts",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts/")
		},
	}
	rootCmd.AddCommand(accountsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func previewFile(path, encoding, delimiter string, hasHeaders bool, skipRows int, dateFormat string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Failed to read file: %v\n", err)
		os.Exit(1)
	}

	payload, err := json.Marshal(map[string]any{
		"data":        base64.StdEncoding.EncodeToString(data),
		"encoding":    encoding,
		"delimiter":   delimiter,
		"has_headers": hasHeaders,
		"skip_rows":   skipRows,
		"date_format": dateFormat,
	})
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+"/api/v1/imports/preview", "application/json", bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(pretty.String())
}
