package console

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	listFailed   = "failed to load customers"
	deleteFailed = "delete failed"
)

// APIError is a non-2xx answer from the proxy.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// API talks to the proxy's /customers endpoints.
type API struct {
	baseURL string
	client  *http.Client
}

func NewAPI(baseURL string, timeout time.Duration) *API {
	return &API{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (a *API) List(ctx context.Context, search string) (json.RawMessage, error) {
	target := a.baseURL + "/customers"
	if search != "" {
		target += "?" + url.Values{"search": {search}}.Encode()
	}
	return a.do(ctx, http.MethodGet, target, listFailed)
}

func (a *API) Delete(ctx context.Context, id string) error {
	_, err := a.do(ctx, http.MethodDelete, a.baseURL+"/customers/"+url.PathEscape(id), deleteFailed)
	return err
}

func (a *API) do(ctx context.Context, method, target, fallback string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	body := readJSON(raw)

	if res.StatusCode/100 != 2 {
		return nil, &APIError{Status: res.StatusCode, Message: errorMessage(body, fallback)}
	}
	return body, nil
}

func readJSON(raw []byte) json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	if json.Valid(raw) {
		return raw
	}
	b, _ := json.Marshal(map[string]string{"message": string(raw)})
	return b
}

// errorMessage picks "message", then "error", then the fallback.
func errorMessage(body json.RawMessage, fallback string) string {
	var env map[string]any
	if err := json.Unmarshal(body, &env); err != nil {
		return fallback
	}
	for _, key := range []string{"message", "error"} {
		if s, ok := env[key].(string); ok && s != "" {
			return s
		}
	}
	return fallback
}
