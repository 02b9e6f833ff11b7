package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	baseURL   string
	timeout   time.Duration
	authToken string
)

// Swappable for tests.
var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	rootCmd := &cobra.Command{
		Use:   "fundflow-cli",
		Short: "FundFlow CLI tool",
		Long:  `A command line interface for interacting with the FundFlow API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the FundFlow API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", "", "Bearer token for authenticated endpoints")

	// Reconciliation commands
	reconcileCmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconciliation operations",
	}

	reconcileReportCmd := &cobra.Command{
		Use:   "report",
		Short: "Run a platform-wide reconciliation report",
		Run: func(cmd *cobra.Command, args []string) {
			reconcileReport()
		},
	}

	reconcileWalletCmd := &cobra.Command{
		Use:   "wallet <user-id>",
		Short: "Reconcile a single wallet against its ledger history",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			reconcileWallet(args[0])
		},
	}

	reconcileCmd.AddCommand(reconcileReportCmd, reconcileWalletCmd)
	rootCmd.AddCommand(reconcileCmd)

	// Deposit commands
	depositCmd := &cobra.Command{
		Use:   "deposit",
		Short: "Deposit operations",
	}

	depositApproveCmd := &cobra.Command{
		Use:   "approve <transaction-id>",
		Short: "Approve a pending deposit",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			settleTransaction("deposits", args[0], "approve")
		},
	}

	depositRejectCmd := &cobra.Command{
		Use:   "reject <transaction-id>",
		Short: "Reject a pending deposit",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			settleTransaction("deposits", args[0], "reject")
		},
	}

	depositCmd.AddCommand(depositApproveCmd, depositRejectCmd)
	rootCmd.AddCommand(depositCmd)

	// Withdrawal commands
	withdrawalCmd := &cobra.Command{
		Use:   "withdrawal",
		Short: "Withdrawal operations",
	}

	withdrawalApproveCmd := &cobra.Command{
		Use:   "approve <transaction-id>",
		Short: "Approve a pending withdrawal",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			settleTransaction("withdrawals", args[0], "approve")
		},
	}

	withdrawalRejectCmd := &cobra.Command{
		Use:   "reject <transaction-id>",
		Short: "Reject a pending withdrawal",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			settleTransaction("withdrawals", args[0], "reject")
		},
	}

	withdrawalCmd.AddCommand(withdrawalApproveCmd, withdrawalRejectCmd)
	rootCmd.AddCommand(withdrawalCmd)

	// Distribution commands
	distributeCmd := &cobra.Command{
		Use:   "distribute <project-id> <period>",
		Short: "Run a profit distribution for a project period (YYYY-MM)",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			runDistribution(args[0], args[1])
		},
	}
	rootCmd.AddCommand(distributeCmd)

	rootCmd.AddCommand(hashPasswordCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Hash a password for seeding staff accounts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hash))
			return nil
		},
	}
}

func reconcileReport() {
	body, status := doRequest(http.MethodGet, "/api/v1/reconciliation/", nil)

	if status != http.StatusOK {
		fmt.Printf("Reconciliation report FAILED (Status: %d)\nResponse: %s\n", status, truncate(string(body), 500))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if consistent, ok := result["consistent"].(bool); ok && consistent {
		fmt.Println("Reconciliation PASSED")
	} else {
		fmt.Println("Reconciliation found discrepancies")
	}
	printJSON(result)
}

func reconcileWallet(userID string) {
	body, status := doRequest(http.MethodGet, "/api/v1/reconciliation/wallets/"+userID, nil)

	if status != http.StatusOK {
		fmt.Printf("Wallet reconciliation FAILED (Status: %d)\nResponse: %s\n", status, truncate(string(body), 500))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}
	printJSON(result)
}

func settleTransaction(kind, id, action string) {
	path := fmt.Sprintf("/api/v1/%s/%s/%s", kind, id, action)
	body, status := doRequest(http.MethodPost, path, nil)

	if status != http.StatusOK {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", status, truncate(string(body), 500))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}
	printJSON(result)
}

func runDistribution(projectID, period string) {
	payload, _ := json.Marshal(map[string]string{
		"project_id": projectID,
		"period":     period,
	})
	body, status := doRequest(http.MethodPost, "/api/v1/distributions", payload)

	if status != http.StatusOK && status != http.StatusMultiStatus {
		fmt.Printf("Distribution FAILED (Status: %d)\nResponse: %s\n", status, truncate(string(body), 500))
		os.Exit(1)
	}

	if status == http.StatusMultiStatus {
		fmt.Println("Distribution completed with failures")
	} else {
		fmt.Println("Distribution completed")
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}
	printJSON(result)
}

func doRequest(method, path string, payload []byte) ([]byte, int) {
	client := &http.Client{Timeout: timeout}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return body, resp.StatusCode
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to format output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
