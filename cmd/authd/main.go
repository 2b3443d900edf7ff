// Command authd runs the authentication service: the login API plus the
// session gate in front of everything else. Credentials come from the
// environment as a single bcrypt-hashed admin account; real deployments
// embed the authcore engine next to their own user store instead.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
