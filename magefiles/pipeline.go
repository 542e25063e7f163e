//go:build mage

package main

import (
	"os"
	"os/exec"
)

// Collect runs the collection stage and writes a dated batch file.
func Collect() error {
	return runCLI("collect")
}

// Digest builds a full issue from a fresh collection run.
func Digest() error {
	return runCLI("digest")
}

func runCLI(args ...string) error {
	cmd := exec.Command("go", append([]string{"run", cmdPkg}, args...)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
