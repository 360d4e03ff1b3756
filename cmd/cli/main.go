package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jakeadel/bank-demo/internal/adapter/backendclient"
	"github.com/jakeadel/bank-demo/internal/money"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bank-admin",
		Short: "Ledger admin CLI",
		Long:  `A command line interface for operating on the ledger backend.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8000", "Base URL of the ledger backend")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "create-user USERNAME",
		Short: "Create a new user",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			createUser(args[0])
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "create-account USER_ID BALANCE [NAME]",
		Short: "Open an account under a user with an initial deposit in dollars",
		Args:  cobra.RangeArgs(2, 3),
		Run: func(cmd *cobra.Command, args []string) {
			name := ""
			if len(args) == 3 {
				name = args[2]
			}
			createAccount(args[0], args[1], name)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "transfer SENDER_ID RECEIVER_ID AMOUNT",
		Short: "Transfer dollars between two accounts",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			transfer(args[0], args[1], args[2])
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "balance ACCOUNT_ID",
		Short: "Show an account's balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			showBalance(args[0])
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "history ACCOUNT_ID",
		Short: "Show an account's transfer history",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			showHistory(args[0])
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "users",
		Short: "List all users and their accounts",
		Run: func(cmd *cobra.Command, args []string) {
			listUsers()
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newClient() *backendclient.Client {
	return backendclient.New(backendclient.Config{
		BaseURL: baseURL,
		Timeout: timeout,
		Logger:  zerolog.Nop(),
	})
}

func parseID(s, what string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		fmt.Printf("Invalid %s %q\n", what, s)
		os.Exit(1)
	}
	return id
}

func parseAmount(s string) int64 {
	cents, err := money.ToMinorUnits(s)
	if err != nil {
		fmt.Printf("Invalid amount %q: %v\n", s, err)
		os.Exit(1)
	}
	return cents
}

func createUser(username string) {
	user, err := newClient().CreateUser(context.Background(), username)
	if err != nil {
		fmt.Printf("Error adding user: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created user %q with id %d\n", user.Username, user.ID)
}

func createAccount(userID, balance, name string) {
	account, err := newClient().CreateAccount(context.Background(), parseID(userID, "user id"), parseAmount(balance), name)
	if err != nil {
		fmt.Printf("Error adding account: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created account %d (%s) with balance %s\n", account.ID, account.Name, money.Format(account.Balance))
}

func transfer(senderID, receiverID, amount string) {
	sender := parseID(senderID, "sender id")
	receiver := parseID(receiverID, "receiver id")
	cents := parseAmount(amount)

	client := newClient()
	if err := client.TransferFunds(context.Background(), sender, receiver, cents); err != nil {
		fmt.Printf("Error transferring funds: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Transferred %s from account %d to account %d\n", money.Format(cents), sender, receiver)

	// Show the authoritative balances after the transfer.
	for _, id := range []int64{sender, receiver} {
		balance, err := client.GetBalance(context.Background(), id)
		if err != nil {
			fmt.Printf("Unable to refresh funds for account %d: %v\n", id, err)
			continue
		}
		fmt.Printf("Account %d balance: %s\n", id, money.Format(balance))
	}
}

func showBalance(accountID string) {
	id := parseID(accountID, "account id")
	balance, err := newClient().GetBalance(context.Background(), id)
	if err != nil {
		fmt.Printf("Error getting balance: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Account %d balance: %s\n", id, money.Format(balance))
}

func showHistory(accountID string) {
	id := parseID(accountID, "account id")
	transfers, err := newClient().GetTransferHistory(context.Background(), id)
	if err != nil {
		fmt.Printf("Unable to get transfers: %v\n", err)
		os.Exit(1)
	}

	if len(transfers) == 0 {
		fmt.Printf("Account %d has no transfers\n", id)
		return
	}
	for _, tr := range transfers {
		fmt.Printf("#%d %s %d -> %d %s (resulting balance %s) at %s\n",
			tr.ID, tr.Role, tr.SenderID, tr.ReceiverID,
			money.Format(tr.Amount), money.Format(tr.ResultingBalance), tr.Time)
	}
}

func listUsers() {
	users, err := newClient().ListUsers(context.Background())
	if err != nil {
		fmt.Printf("Error grabbing user data: %v\n", err)
		os.Exit(1)
	}

	for _, user := range users {
		fmt.Printf("%s (id %d)\n", user.Username, user.ID)
		for _, account := range user.Accounts {
			fmt.Printf("  account %d %q %s\n", account.ID, account.Name, money.Format(account.Balance))
		}
	}
}
