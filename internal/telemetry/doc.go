// Package telemetry обеспечивает наблюдаемость утилит.
//
// Включает:
//   - logging.go — structured logging через slog
//   - metrics.go — Prometheus метрики HTTP-клиента
//
// CLI пишут логи в stderr, чтобы stdout оставался чистым для данных.
// Метрики клиента можно выгрузить в textfile (node_exporter textfile collector)
// или отдать через /metrics в zide-mock.
package telemetry
