// Package main prints bcrypt hashes for passwords given on the command
// line, for provisioning accounts directly in the database.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pontetech/mission-control/internal/domain"
	"github.com/pontetech/mission-control/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	skipPolicy := flag.Bool("skip-policy", false, "hash passwords that fail the password policy")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: hash-generator [-cost N] [-skip-policy] password...")
		os.Exit(2)
	}

	if failed := hashAll(os.Stdout, auth.NewBcryptHasher(*cost), flag.Args(), !*skipPolicy); failed > 0 {
		os.Exit(1)
	}
}

// hashAll writes one hash per password and returns how many failed.
func hashAll(out io.Writer, hasher auth.PasswordHasher, passwords []string, enforcePolicy bool) int {
	failed := 0
	for i, password := range passwords {
		if enforcePolicy {
			if err := domain.ValidatePassword(password); err != nil {
				fmt.Fprintf(out, "#%d: %v\n", i+1, err)
				failed++
				continue
			}
		}

		hash, err := hasher.Hash(password)
		if err != nil {
			fmt.Fprintf(out, "#%d: failed to hash: %v\n", i+1, err)
			failed++
			continue
		}
		fmt.Fprintf(out, "#%d: %s\n", i+1, hash)
	}
	return failed
}
