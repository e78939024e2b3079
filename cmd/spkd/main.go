package main

import (
	"fmt"
	"os"

	"github.com/P0llen/speaker-detector/cmd/spkd/cmd"
	"github.com/P0llen/speaker-detector/internal/config"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration warning: %v\n", err)
	}

	cmd.Execute()
}
