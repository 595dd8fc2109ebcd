// Package cli реализует клиент и инструменты командной строки для
// REST API расширения Zephyr IDE.
//
// # Обзор
//
// CLI — клиентская утилита для взаимодействия с локальным API расширения.
// Работает через HTTP, сервер — внешний компонент (для разработки есть
// zide-mock).
//
// # Ключевые компоненты
//
// ## Client
//
// HTTP-клиент для Zephyr IDE API. Request — базовая операция: всегда
// возвращает тело и статус, ошибки транспорта превращает в ответ со
// статусом 0. Типизированные методы (GetStatus, ListProjects,
// GetWorkspaceConfig, BuildProject, FlashProject) возвращают данные или
// *APIError с одним из вариантов: unauthorized, unreachable, server,
// malformed.
//
//	client := cli.NewClient("http://localhost:8080", cli.WithAPIKey(key))
//	status, err := client.GetStatus()
//	if errors.Is(err, cli.ErrUnreachable) { ... }
//
// ## Output
//
// Форматирование вывода. Поддерживает два режима:
//   - Таблицы (text/tabwriter) — по умолчанию
//   - JSON (json.MarshalIndent) — с флагом --json
//
// Данные выводятся в stdout, сообщения (Success/Error/Hint) — в stderr.
//
// ## Commands
//
// Каждая команда создаётся через фабричную функцию (NewStatusCmd и т.д.),
// принимающую clientFn и outputFn — замыкания для ленивого создания
// Client и Output после разбора PersistentFlags:
//   - status, projects, workspace — чтение состояния
//   - build, flash — запуск действий
//   - request — произвольный GET/POST
//   - demo — пошаговый пример использования API
//   - watch — опрос статуса по расписанию (cron)
//
// NewBoardsCmd — корневая команда отдельной утилиты zephyr-boards.
package cli
