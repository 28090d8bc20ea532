// Command pongtui plays a local game against the AI in the terminal.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lguibr/pongduel/tui"
	"github.com/lguibr/pongduel/utils"
)

func main() {
	configPath := flag.String("config", "", "YAML or TOML config file (defaults when empty)")
	seed := flag.Int64("seed", 0, "random seed, 0 picks one from the clock")
	flag.Parse()

	cfg := utils.DefaultConfig()
	if *configPath != "" {
		loaded, err := utils.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "pongtui: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	model, err := tui.New(cfg, utils.NewRand(*seed))
	if err != nil {
		fmt.Fprintf(os.Stderr, "pongtui: %v\n", err)
		os.Exit(1)
	}
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "pongtui: %v\n", err)
		os.Exit(1)
	}
}
