package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/shaiso/zide/internal/telemetry"
)

// watchParser — парсер расписаний: стандартный cron из 5 полей или
// дескрипторы (@hourly, @every 30s).
var watchParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// watchEntry — одна строка вывода watch.
type watchEntry struct {
	Time   time.Time `json:"time"`
	Status *Status   `json:"status,omitempty"`
	Error  string    `json:"error,omitempty"`
}

// NewWatchCmd создаёт команду периодического опроса статуса.
func NewWatchCmd(clientFn func(...Option) *Client, outputFn func() *Output) *cobra.Command {
	var spec string
	var count int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll extension status on a schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schedule, err := watchParser.Parse(spec)
			if err != nil {
				return fmt.Errorf("invalid schedule %q: %w", spec, err)
			}

			client := clientFn()
			out := outputFn()
			logger := telemetry.FromContext(cmd.Context())
			ctx := cmd.Context()

			if !out.JSONMode() {
				out.Table([]string{"TIME", "VERSION", "INITIALIZED", "WEST_UPDATED", "ACTIVE_PROJECT"}, nil)
			}

			for polled := 0; count <= 0 || polled < count; polled++ {
				if polled > 0 {
					wait := time.Until(schedule.Next(time.Now()))
					timer := time.NewTimer(wait)
					select {
					case <-ctx.Done():
						timer.Stop()
						return nil
					case <-timer.C:
					}
				}

				entry := watchEntry{Time: time.Now().UTC()}
				status, err := client.GetStatus()
				if err != nil {
					// Ошибка одного опроса не останавливает наблюдение
					logger.Warn("status poll failed", "error", err)
					entry.Error = err.Error()
				} else {
					entry.Status = status
				}
				printWatchEntry(out, entry)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&spec, "schedule", "@every 10s", "Cron expression or descriptor (e.g. \"*/5 * * * *\", \"@every 30s\")")
	cmd.Flags().IntVar(&count, "count", 0, "Stop after N polls (0 = until interrupted)")

	return cmd
}

func printWatchEntry(out *Output, e watchEntry) {
	if out.JSONMode() {
		out.JSON(e)
		return
	}

	ts := e.Time.Format(time.RFC3339)
	if e.Status == nil {
		out.Println(ts + "  error: " + e.Error)
		return
	}
	out.Println(fmt.Sprintf("%s  %s  %s  %s  %s",
		ts,
		e.Status.Version,
		strconv.FormatBool(e.Status.Initialized),
		strconv.FormatBool(e.Status.WestUpdated),
		e.Status.ActiveProject,
	))
}
