// Command hjarta-config serves and inspects a layered configuration root.
//
// Layers, lowest precedence first: built-in defaults, settings files, the
// configuration table of a SQLite or Postgres database, pushed sample settings
// and --set overrides.
package main

import (
	"os"
)

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}
