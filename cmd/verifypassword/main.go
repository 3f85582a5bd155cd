// Command verifypassword checks a password against a stored hash.
// Exit status 0 means the password matches.
package main

import (
	"fmt"
	"os"

	"github.com/mahmoud-eltahawy/cryptos-site/internal/auth/credentials"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "Usage: verifypassword <password> <hash>")
		os.Exit(1)
	}

	if !credentials.VerifyPassword(os.Args[1], os.Args[2]) {
		fmt.Println("password verification failed")
		os.Exit(1)
	}

	fmt.Println("password verification passed")
}
