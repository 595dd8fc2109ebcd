package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// rawResult — вывод команды request.
type rawResult struct {
	StatusCode int `json:"status"`
	Payload    any `json:"payload"`
}

// NewRequestCmd создаёт команду произвольного запроса к API.
func NewRequestCmd(clientFn func(...Option) *Client, outputFn func() *Output) *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "request METHOD ENDPOINT",
		Short: "Send a raw GET/POST request to /api/ENDPOINT",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			var body any
			if data != "" {
				if err := json.Unmarshal([]byte(data), &body); err != nil {
					return fmt.Errorf("--data is not valid JSON: %w", err)
				}
			}

			resp, err := client.Request(args[0], args[1], body)
			if err != nil {
				return err
			}

			out.JSON(rawResult{StatusCode: resp.StatusCode, Payload: resp.Payload})
			if err := resp.Err(); err != nil {
				out.Hint(err, client.BaseURL())
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "JSON body for POST requests")

	return cmd
}
