package cli

import (
	"github.com/spf13/cobra"
)

// NewBuildCmd создаёт команду запуска сборки.
func NewBuildCmd(clientFn func(...Option) *Client, outputFn func() *Output) *cobra.Command {
	var req BuildRequest

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a project (active project if --project is omitted)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			result, err := client.BuildProject(req)
			if err != nil {
				out.Hint(err, client.BaseURL())
				return err
			}

			if out.JSONMode() {
				out.JSON(result)
				return nil
			}
			out.Success("Build triggered: " + result.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.ProjectName, "project", "", "Project name")
	cmd.Flags().StringVar(&req.BuildName, "build", "", "Build configuration name")
	cmd.Flags().BoolVar(&req.Pristine, "pristine", false, "Run a pristine build")

	return cmd
}

// NewFlashCmd создаёт команду прошивки.
func NewFlashCmd(clientFn func(...Option) *Client, outputFn func() *Output) *cobra.Command {
	var req FlashRequest

	cmd := &cobra.Command{
		Use:   "flash",
		Short: "Flash a project (active project if --project is omitted)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			result, err := client.FlashProject(req)
			if err != nil {
				out.Hint(err, client.BaseURL())
				return err
			}

			if out.JSONMode() {
				out.JSON(result)
				return nil
			}
			out.Success("Flash triggered: " + result.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.ProjectName, "project", "", "Project name")
	cmd.Flags().StringVar(&req.BuildName, "build", "", "Build configuration name")

	return cmd
}
