package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"equiptrack/internal/domain"
	"equiptrack/internal/modules/equipment"
	"equiptrack/internal/modules/maintenance"
)

// APIError is a non-2xx response from the tracker API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (%d): %s", e.Code, e.Status, e.Message)
}

// Unwrap maps the response back onto the domain sentinels so callers can use
// errors.Is the same way as against the in-process service.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case "NOT_FOUND":
		return equipment.ErrNotFound
	case "ALREADY_CHECKED_OUT":
		return equipment.ErrAlreadyCheckedOut
	case "STORE_ERROR":
		return equipment.ErrStore
	case "VALIDATION_ERROR":
		for _, known := range []error{
			equipment.ErrEmptyName, equipment.ErrInvalidRate, equipment.ErrInvalidID, equipment.ErrNoSelection,
			maintenance.ErrEmptyIssue, maintenance.ErrInvalidSelection, maintenance.ErrNotCheckedIn,
		} {
			if e.Message == known.Error() {
				return known
			}
		}
	}
	return nil
}

// Client talks to the tracker HTTP API. It satisfies equipment.Lifecycle.
type Client struct {
	httpClient *http.Client
	BaseURL    string
	Token      string
}

func New(baseURL, token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CheckHealth reports whether the API answers /health.
func (c *Client) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed with status code: %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) ListAvailable(ctx context.Context) ([]domain.EquipmentRecord, error) {
	var rows []domain.EquipmentRecord
	if err := c.do(ctx, http.MethodGet, "/api/v1/equipment/available", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) ListAll(ctx context.Context) ([]domain.EquipmentRecord, error) {
	var rows []domain.EquipmentRecord
	if err := c.do(ctx, http.MethodGet, "/api/v1/equipment", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) CheckIn(ctx context.Context, in equipment.CheckInRequest) (*domain.EquipmentRecord, error) {
	var rec domain.EquipmentRecord
	if err := c.do(ctx, http.MethodPost, "/api/v1/equipment/check-in", in, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) CheckOut(ctx context.Context, id string) (*equipment.CheckOutResult, error) {
	if _, err := equipment.ParseID(id); err != nil {
		return nil, err
	}
	var res equipment.CheckOutResult
	path := "/api/v1/equipment/" + url.PathEscape(strings.TrimSpace(id)) + "/check-out"
	if err := c.do(ctx, http.MethodPost, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ComposeMaintenance(ctx context.Context, id, issue string) (string, error) {
	var res maintenance.ComposeResponse
	body := maintenance.ComposeRequest{EquipmentID: id, Issue: issue}
	if err := c.do(ctx, http.MethodPost, "/api/v1/maintenance/messages", body, &res); err != nil {
		return "", err
	}
	return res.Message, nil
}

// DownloadExport copies the xlsx export into w.
func (c *Client) DownloadExport(ctx context.Context, w io.Writer) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/v1/equipment/export", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	_, err = io.Copy(w, resp.Body)
	return err
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Code: "HTTP_ERROR", Message: http.StatusText(resp.StatusCode)}

	var env envelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&env); err == nil && env.Error != nil {
		apiErr.Code = env.Error.Code
		apiErr.Message = env.Error.Message
	}
	return apiErr
}

// IsUnauthorized reports a rejected operator token.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}
