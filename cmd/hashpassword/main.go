// Command hashpassword prints a bcrypt hash and the environment lines that configure the admin account.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cost  int
		email string
	)
	cmd := &cobra.Command{
		Use:   "hashpassword [password]",
		Short: "Hash the storefront admin password",
		Long: `Hashes the admin password with bcrypt and prints the environment variables
the storefront server reads at startup.

Without an argument the password is read from the first line of stdin, which keeps it
out of the shell history:

  printf '%s' "$ADMIN_PASSWORD" | hashpassword --email admin@farihasabaya.com`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
				return fmt.Errorf("cost must be within [%d, %d], got %d", bcrypt.MinCost, bcrypt.MaxCost, cost)
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}

			out := cmd.OutOrStdout()
			if email != "" {
				fmt.Fprintf(out, "STOREFRONT_AUTH_ADMINEMAIL=%s\n", strings.ToLower(strings.TrimSpace(email)))
			}
			// single quotes keep the $ separators of the hash literal in .env files and shells
			fmt.Fprintf(out, "STOREFRONT_AUTH_PASSWORDHASH='%s'\n", hash)
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", 12, "bcrypt cost factor")
	cmd.Flags().StringVar(&email, "email", "", "admin email to print alongside the hash")
	return cmd
}

func readPassword(in io.Reader, args []string) (string, error) {
	var password string
	if len(args) == 1 {
		password = args[0]
	} else {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read password from stdin: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if len(password) < minPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	if len(password) > 72 {
		return "", errors.New("password must be at most 72 bytes, the bcrypt input limit")
	}
	return password, nil
}
