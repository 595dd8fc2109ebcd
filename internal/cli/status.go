package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// NewStatusCmd создаёт команду вывода состояния расширения.
func NewStatusCmd(clientFn func(...Option) *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show extension status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			status, err := client.GetStatus()
			if err != nil {
				out.Hint(err, client.BaseURL())
				return err
			}

			out.Print(
				[]string{"VERSION", "INITIALIZED", "WEST_UPDATED", "ACTIVE_PROJECT"},
				[][]string{{
					status.Version,
					strconv.FormatBool(status.Initialized),
					strconv.FormatBool(status.WestUpdated),
					status.ActiveProject,
				}},
				status,
			)
			return nil
		},
	}
}

// NewProjectsCmd создаёт команду вывода проектов.
func NewProjectsCmd(clientFn func(...Option) *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List workspace projects and their build configurations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			projects, err := client.ListProjects()
			if err != nil {
				out.Hint(err, client.BaseURL())
				return err
			}

			names := projects.Names()
			rows := make([][]string, len(names))
			for i, name := range names {
				rows[i] = []string{name, strings.Join(projects[name].BuildNames(), ", ")}
			}

			out.Print([]string{"PROJECT", "BUILDS"}, rows, projects)
			return nil
		},
	}
}

// NewWorkspaceCmd создаёт команду вывода конфигурации workspace.
func NewWorkspaceCmd(clientFn func(...Option) *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "workspace",
		Short: "Show workspace configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			cfg, err := client.GetWorkspaceConfig()
			if err != nil {
				out.Hint(err, client.BaseURL())
				return err
			}

			out.Print(
				[]string{"ROOT_PATH", "SETUP_COMPLETE", "ACTIVE_PROJECT"},
				[][]string{{cfg.RootPath, strconv.FormatBool(cfg.InitialSetupComplete), cfg.ActiveProject}},
				cfg,
			)
			return nil
		},
	}
}
