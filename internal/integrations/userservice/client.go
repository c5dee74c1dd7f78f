package userservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client клиент для работы с UserService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента UserService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log,
	}
}

// GetContact получает контактные данные пользователя
func (c *Client) GetContact(ctx context.Context, userID int64) (*Contact, error) {
	url := fmt.Sprintf("%s/internal/users/%d/contact", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid user ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrContactNotFound
	default:
		var apiErr ErrorResponse
		body, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var contact Contact
	if err := json.NewDecoder(resp.Body).Decode(&contact); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &contact, nil
}

// GetContactWithGracefulDegradation получает контакт пользователя с graceful degradation
// При недоступности UserService возвращает ErrServiceDegraded, напоминание отправляется без контакта
func (c *Client) GetContactWithGracefulDegradation(ctx context.Context, userID int64) (*Contact, error) {
	c.log.Info("GetContact: fetching contact for user_id=%d", userID)

	contact, err := c.GetContact(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrContactNotFound) {
			c.log.Warn("GetContact: no contact found for user_id=%d", userID)
			return nil, err
		}

		// Остальные ошибки (недоступность, timeout, парсинг) - деградация с уровнем ERROR
		c.log.Error("GetContact: UserService unavailable, applying graceful degradation for user_id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: user_id=%d, error=%v", ErrServiceDegraded, userID, err)
	}

	c.log.Info("GetContact: successfully fetched contact for user_id=%d", userID)
	return contact, nil
}
