// Command genpassword hashes a password for seeding the users table.
package main

import (
	"fmt"
	"os"

	"github.com/mahmoud-eltahawy/cryptos-site/internal/auth/credentials"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: genpassword <password>")
		os.Exit(1)
	}

	hash, err := credentials.HashPassword(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	fmt.Println(hash)
	fmt.Println()
	fmt.Println("To update in database:")
	fmt.Printf("UPDATE users SET password = '%s' WHERE name = 'admin';\n", hash)
}
