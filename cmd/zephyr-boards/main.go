// zephyr-boards выводит список плат Zephyr с фильтром по имени.
//
// Использование:
//
//	ZEPHYR_BASE=/path/to/zephyr zephyr-boards [-f FORMAT] [-n NAME_RE] [--board-root DIR]...
package main

import (
	"fmt"
	"os"

	"github.com/shaiso/zide/internal/boards"
	"github.com/shaiso/zide/internal/cli"
	"github.com/shaiso/zide/internal/telemetry"
)

func main() {
	logger := telemetry.SetupLogger(os.Stderr)

	// ZEPHYR_BASE читается один раз и дальше передаётся явно
	cfg, err := boards.ConfigFromEnv(os.LookupEnv)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	cmd := cli.NewBoardsCmd(cfg, boards.FSDiscoverer{Logger: logger})
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
