package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// NewDemoCmd создаёт команду, которая проходит по основным вызовам API:
// статус, проекты, конфигурация workspace и сборка первого проекта.
// Если статус получить не удалось, остальные шаги не выполняются.
func NewDemoCmd(clientFn func(...Option) *Client, outputFn func() *Output) *cobra.Command {
	var askKey bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Walk through status, projects, workspace config and a build",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []Option
			if askKey {
				key, err := promptAPIKey(cmd.InOrStdin(), cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				if key != "" {
					opts = append(opts, WithAPIKey(key))
				}
			}

			return runDemo(clientFn(opts...), outputFn())
		},
	}

	cmd.Flags().BoolVar(&askKey, "ask-key", false, "Prompt for the API key on stdin")

	return cmd
}

func promptAPIKey(in io.Reader, prompt io.Writer) (string, error) {
	fmt.Fprint(prompt, "Enter API key (or press Enter if none): ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read API key: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func runDemo(client *Client, out *Output) error {
	out.Println("Zephyr IDE API Client Example")
	out.Println(strings.Repeat("=", 40))

	// 1. Статус; без него продолжать бессмысленно
	out.Println("\n1. Getting extension status...")
	status, err := client.GetStatus()
	if err != nil {
		out.Println("✗ Failed to get status: " + apiMessage(err))
		out.Hint(err, client.BaseURL())
		return err
	}
	out.Println("✓ Extension version: " + status.Version)
	out.Println(fmt.Sprintf("✓ Initialized: %t", status.Initialized))
	out.Println(fmt.Sprintf("✓ West updated: %t", status.WestUpdated))
	if status.ActiveProject != "" {
		out.Println("✓ Active project: " + status.ActiveProject)
	}

	// 2. Проекты
	out.Println("\n2. Listing projects...")
	projects, projectsErr := client.ListProjects()
	switch {
	case projectsErr != nil:
		out.Println("✗ Failed to list projects: " + apiMessage(projectsErr))
	case len(projects) == 0:
		out.Println("✓ No projects found")
	default:
		out.Println(fmt.Sprintf("✓ Found %d project(s):", len(projects)))
		for _, name := range projects.Names() {
			builds := strings.Join(projects[name].BuildNames(), ", ")
			out.Println(fmt.Sprintf("  - %s (builds: %s)", name, builds))
		}
	}

	// 3. Конфигурация workspace
	out.Println("\n3. Getting workspace configuration...")
	cfg, err := client.GetWorkspaceConfig()
	if err != nil {
		out.Println("✗ Failed to get workspace config: " + apiMessage(err))
	} else {
		out.Println("✓ Root path: " + cfg.RootPath)
		out.Println(fmt.Sprintf("✓ Setup complete: %t", cfg.InitialSetupComplete))
		if cfg.ActiveProject != "" {
			out.Println("✓ Active project: " + cfg.ActiveProject)
		}
	}

	// 4. Сборка первого проекта, если проекты есть
	if projectsErr == nil && len(projects) > 0 {
		projectName := projects.Names()[0]
		out.Println(fmt.Sprintf("\n4. Example: Building project '%s'...", projectName))
		result, err := client.BuildProject(BuildRequest{ProjectName: projectName})
		if err != nil {
			out.Println("✗ Build failed: " + apiMessage(err))
		} else {
			out.Println("✓ Build triggered: " + result.Message)
		}
	}

	out.Println("\nAPI client example completed!")
	return nil
}

// apiMessage возвращает сообщение сервера для *APIError или текст ошибки.
func apiMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
