// Package main is the entry point for the pvelamp CLI.
//
// pvelamp is a command-line tool for provisioning a LAMP application
// container on a Proxmox VE host. It creates a Debian LXC container,
// waits for network readiness, and installs Apache, MariaDB, PHP, and
// the application release inside it.
//
// Commands: init, provision, destroy, doctor.
//
// For detailed usage information, run:
//
//	pvelamp --help
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/imamik/pvelamp/cmd/pvelamp/commands"
	"github.com/imamik/pvelamp/cmd/pvelamp/handlers"
	"github.com/imamik/pvelamp/internal/pve"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		// Declining the confirmation prompt changed nothing and is not
		// a failure.
		if errors.Is(err, handlers.ErrAborted) {
			os.Exit(0)
		}
		// A failed hypervisor command surfaces its own exit status so
		// wrapper scripts can distinguish pct/pvesm failures.
		if code := pve.ExitCode(err); code > 0 {
			os.Exit(code)
		}
		os.Exit(1)
	}
}
