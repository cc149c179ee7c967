//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// Fetch builds the binary and runs the aggregation pipeline.
func Fetch() error {
	mg.Deps(Build)
	return runBin("fetch")
}

// Feed builds the binary and regenerates the RSS feed into public/.
func Feed() error {
	mg.Deps(Build)
	return runBin("feed", "-o", filepath.Join("public", "feed.xml"))
}

// Update runs the full fetch-then-feed cycle.
func Update() error {
	mg.SerialDeps(Fetch, Feed)
	return nil
}

// runBin executes the built CLI binary with the given arguments.
func runBin(args ...string) error {
	bin := filepath.Join(binDir, binName)
	cmd := exec.Command(bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %v: %w", bin, args, err)
	}
	return nil
}
