package main

import "github.com/entitytriage/triage/internal/cmd"

func main() {
	cmd.Execute()
}
