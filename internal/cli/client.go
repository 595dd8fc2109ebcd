package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/zide/internal/telemetry"
)

const (
	// DefaultBaseURL — адрес API сервера расширения по умолчанию.
	DefaultBaseURL = "http://localhost:8080"

	// HeaderAPIKey — заголовок аутентификации.
	HeaderAPIKey = "X-API-Key"

	// HeaderRequestID — идентификатор запроса для корреляции логов.
	HeaderRequestID = "X-Request-ID"

	requestTimeout = 30 * time.Second
)

// Response — результат одного вызова API: распарсенное тело и HTTP статус.
// StatusCode == 0 означает, что ответ не был получен; Payload в этом случае
// содержит {"success": false, "error": "Connection error: ..."}.
type Response struct {
	Payload    any
	StatusCode int
	raw        []byte
}

// Success возвращает значение payload.success.
func (r *Response) Success() bool {
	m, ok := r.Payload.(map[string]any)
	if !ok {
		return false
	}
	success, _ := m["success"].(bool)
	return success
}

// ErrorMessage возвращает payload.error или пустую строку.
func (r *Response) ErrorMessage() string {
	m, ok := r.Payload.(map[string]any)
	if !ok {
		return ""
	}
	msg, _ := m["error"].(string)
	return msg
}

// Err классифицирует ответ. Возвращает nil для 200 + success=true,
// иначе *APIError.
func (r *Response) Err() error {
	msg := r.ErrorMessage()
	if msg == "" {
		msg = "Unknown error"
	}

	switch {
	case r.StatusCode == 0:
		return &APIError{Kind: KindUnreachable, Message: msg}
	case r.StatusCode == http.StatusUnauthorized:
		return &APIError{Kind: KindUnauthorized, StatusCode: r.StatusCode, Message: msg}
	case r.StatusCode != http.StatusOK || !r.Success():
		return &APIError{Kind: KindServer, StatusCode: r.StatusCode, Message: msg}
	}
	return nil
}

// Decode декодирует исходное тело ответа в v.
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.raw, v)
}

// --- Client ---

// Client — HTTP-клиент для REST API расширения Zephyr IDE.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	metrics    *telemetry.ClientMetrics
	logger     *slog.Logger
}

// Option настраивает Client.
type Option func(*Client)

// WithAPIKey задаёт ключ, передаваемый в X-API-Key каждого запроса.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient подменяет http.Client (используется в тестах).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithMetrics включает учёт запросов в Prometheus метриках.
func WithMetrics(m *telemetry.ClientMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger задаёт логгер клиента.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient создаёт клиент для API. Пустой baseURL заменяется на
// DefaultBaseURL, завершающие слэши отбрасываются.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL возвращает нормализованный адрес сервера.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL строит полный адрес endpoint: baseURL + "/api/" + endpoint без ведущих слэшей.
func (c *Client) URL(endpoint string) string {
	return c.baseURL + "/api/" + strings.TrimLeft(endpoint, "/")
}

// --- Status / workspace ---

// GetStatus возвращает состояние расширения.
func (c *Client) GetStatus() (*Status, error) {
	env, err := call[Status](c, http.MethodGet, "/status", nil)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// ListProjects возвращает проекты workspace.
func (c *Client) ListProjects() (Projects, error) {
	env, err := call[Projects](c, http.MethodGet, "/projects", nil)
	if err != nil {
		return nil, err
	}
	if env.Data == nil {
		return Projects{}, nil
	}
	return env.Data, nil
}

// GetWorkspaceConfig возвращает конфигурацию workspace.
func (c *Client) GetWorkspaceConfig() (*WorkspaceConfig, error) {
	env, err := call[WorkspaceConfig](c, http.MethodGet, "/workspace/config", nil)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// --- Build / flash ---

// BuildProject запускает сборку. Без имени проекта сервер использует активный.
func (c *Client) BuildProject(req BuildRequest) (*ActionResult, error) {
	env, err := call[json.RawMessage](c, http.MethodPost, "/build", req)
	if err != nil {
		return nil, err
	}
	return &ActionResult{Message: env.Message}, nil
}

// FlashProject запускает прошивку.
func (c *Client) FlashProject(req FlashRequest) (*ActionResult, error) {
	env, err := call[json.RawMessage](c, http.MethodPost, "/flash", req)
	if err != nil {
		return nil, err
	}
	return &ActionResult{Message: env.Message}, nil
}

// --- HTTP helpers ---

func call[T any](c *Client, method, endpoint string, body any) (*envelope[T], error) {
	resp, err := c.Request(method, endpoint, body)
	if err != nil {
		// Статус важнее нераспознанного тела: 401 с HTML остаётся 401
		if resp != nil && resp.StatusCode != http.StatusOK {
			return nil, resp.Err()
		}
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var env envelope[T]
	if err := resp.Decode(&env); err != nil {
		return nil, &APIError{Kind: KindMalformed, StatusCode: resp.StatusCode, Message: err.Error()}
	}
	return &env, nil
}

// Request выполняет запрос к endpoint и возвращает тело и статус.
//
// Поддерживаются только GET и POST; для других методов возвращается
// ErrUnsupportedMethod без обращения к сети. Ошибки транспорта не
// возвращаются как error: они превращаются в Response со StatusCode 0.
// Тело, которое не является JSON, возвращается как *APIError с
// KindMalformed вместе с Response, содержащим статус. Типизированные методы
// сообщают KindMalformed только для статуса 200.
func (c *Client) Request(method, endpoint string, data any) (*Response, error) {
	method = strings.ToUpper(method)
	if method != http.MethodGet && method != http.MethodPost {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}

	var bodyReader io.Reader
	if method == http.MethodPost && data != nil {
		payload, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	endpoint = "/" + strings.TrimLeft(endpoint, "/")
	requestID := uuid.NewString()
	logger := telemetry.WithEndpoint(telemetry.WithRequestID(c.logger, requestID), endpoint)

	req, err := http.NewRequest(method, c.URL(endpoint), bodyReader)
	if err != nil {
		logger.Warn("invalid request", "method", method, "error", err)
		return connectionFailure(err), nil
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set(HeaderAPIKey, c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.Observe(method, endpoint, 0, time.Since(start))
		logger.Warn("api request failed", "method", method, "error", err)
		return connectionFailure(err), nil
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.Observe(method, endpoint, 0, elapsed)
		logger.Warn("failed to read response", "method", method, "error", err)
		return connectionFailure(err), nil
	}

	c.metrics.Observe(method, endpoint, resp.StatusCode, elapsed)
	logger.Debug("api request",
		"method", method,
		"status", resp.StatusCode,
		"duration", elapsed,
	)

	result := &Response{StatusCode: resp.StatusCode, raw: raw}
	if err := json.Unmarshal(raw, &result.Payload); err != nil {
		return result, &APIError{Kind: KindMalformed, StatusCode: resp.StatusCode, Message: err.Error()}
	}
	return result, nil
}

// connectionFailure строит синтетический ответ для ошибки транспорта.
func connectionFailure(err error) *Response {
	payload := map[string]any{
		"success": false,
		"error":   fmt.Sprintf("Connection error: %v", err),
	}
	raw, _ := json.Marshal(payload)
	return &Response{Payload: payload, StatusCode: 0, raw: raw}
}
