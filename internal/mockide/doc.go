// Package mockide реализует in-memory сервер REST API расширения Zephyr IDE.
//
// Используется для локальной разработки (cmd/zide-mock) и в тестах клиента.
// Сервер не собирает и не прошивает проекты: build и flash только проверяют
// проект и build-конфигурацию и записывают вызов.
//
// # Endpoints
//
//	GET  /api/status
//	GET  /api/projects
//	GET  /api/workspace/config
//	POST /api/build
//	POST /api/flash
//
// Формат ответов:
//   - успех с данными: {"success": true, "data": ...}
//   - успех действия:  {"success": true, "message": "..."}
//   - ошибка:          {"success": false, "error": "..."}
//
// Если задан APIKey, все запросы без корректного X-API-Key получают 401.
package mockide
