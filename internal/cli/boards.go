package cli

import (
	"github.com/spf13/cobra"

	"github.com/shaiso/zide/internal/boards"
)

const boardsLong = `List the boards found in the Zephyr tree.

FORMAT STRINGS

Each board is printed with the --format string. Named fields are replaced
with board data, the same way Python's str.format does it:

  {name}  board name, e.g. nrf52840dk_nrf52840
  {arch}  architecture, e.g. arm
  {dir}   directory holding the board definition

Fields accept a format spec: {name:30} pads to 30 columns, {arch:>8}
right-aligns, {name:.10} truncates. Use {{ and }} for literal braces.

Architecture and SoC roots are always taken from ZEPHYR_BASE. Board roots
default to ZEPHYR_BASE unless --board-root is given. This differs from the
west list_boards script, which searches no board roots (and so lists nothing)
when --board-root is omitted.`

// NewBoardsCmd создаёт корневую команду zephyr-boards.
// cfg читается из окружения один раз в main.
func NewBoardsCmd(cfg boards.Config, discoverer boards.Discoverer) *cobra.Command {
	var opts boards.Options
	var boardRoots []string

	cmd := &cobra.Command{
		Use:           "zephyr-boards",
		Short:         "List Zephyr boards, optionally filtered by name",
		Long:          boardsLong,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := boards.Run(cmd.OutOrStdout(), cfg, discoverer, boardRoots, opts)
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", boards.DefaultFormat, "Format string to use to list each board; see FORMAT STRINGS")
	cmd.Flags().StringVarP(&opts.NamePattern, "name", "n", "", "A regular expression; only boards whose names match are listed")
	cmd.Flags().StringArrayVar(&boardRoots, "board-root", nil, "Add a board root, may be given more than once")

	return cmd
}
