package main

import (
	"fmt"
	"os"

	"github.com/justinpbarnett/loupe/internal/ui/panels"
	"github.com/justinpbarnett/loupe/internal/update"
)

func runUpdate(repo string) {
	if panels.Version == "dev" {
		fmt.Println("Development build — self-update not available.")
		return
	}

	fmt.Println("Checking for updates...")
	rel, err := update.Apply(panels.Version, repo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Update failed: %v\n", err)
		os.Exit(1)
	}
	if rel == nil {
		fmt.Println("You are already up to date.")
		return
	}
	fmt.Printf("Updated to v%s.\n", rel.Version)
}
