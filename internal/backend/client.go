package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Localized fallback messages, used when the backend's error body carries
// no usable message of its own.
const (
	msgGagalMemuat      = "gagal mengambil data"
	msgGagalMengirim    = "gagal mengirim data"
	msgGagalMemperbarui = "gagal memperbarui data"
	msgGagalMenghapus   = "gagal menghapus data"
)

// TokenSource supplies the bearer token attached to authenticated requests.
// A false return means no Authorization header is sent at all.
type TokenSource interface {
	Token() (string, bool)
}

// APIError is a non-2xx response from the backend, normalized to a
// human-readable message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client issues authenticated requests against the rental backend API.
// It never retries; every failure surfaces to the caller.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	tokens  TokenSource
}

// NewClient creates a backend client. The rate limiter gates outbound
// requests so dashboard refresh storms cannot hammer the backend.
func NewClient(baseURL string, timeout time.Duration, rps float64, burst int, tokens TokenSource) *Client {
	if rps <= 0 {
		rps = 20
	}
	if burst <= 0 {
		burst = 10
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		tokens:  tokens,
	}
}

// Get issues a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, "", nil, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	buf, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, nil, "application/json", buf, out)
}

// Patch issues a PATCH request with a JSON body; the backend treats it as
// a partial update.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	buf, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, path, nil, "application/json", buf, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	buf, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, nil, "application/json", buf, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", nil, out)
}

// PostForm issues a multipart POST, used when a file is attached.
func (c *Client) PostForm(ctx context.Context, path string, form *Form, out any) error {
	body, contentType, err := form.encode()
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, nil, contentType, body, out)
}

// PatchForm issues a multipart PATCH.
func (c *Client) PatchForm(ctx context.Context, path string, form *Form, out any) error {
	body, contentType, err := form.encode()
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, path, nil, contentType, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("request rate gate: %w", err)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	// Only attach the Authorization header when a token is actually
	// present; an empty bearer header confuses the backend's guard.
	if token, ok := c.tokens.Token(); ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Status:  resp.StatusCode,
			Message: errorMessage(raw, method),
		}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}

// errorMessage extracts the backend's message field from an error body.
// The field may be a plain string or an array of strings (validation
// pipes emit the latter); anything else falls back to a generic localized
// message keyed on the request verb.
func errorMessage(raw []byte, method string) string {
	var body struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		switch m := body.Message.(type) {
		case string:
			if m != "" {
				return m
			}
		case []any:
			var parts []string
			for _, v := range m {
				if s, ok := v.(string); ok && s != "" {
					parts = append(parts, s)
				}
			}
			if len(parts) > 0 {
				return strings.Join(parts, "; ")
			}
		}
	}

	switch method {
	case http.MethodPost:
		return msgGagalMengirim
	case http.MethodPatch, http.MethodPut:
		return msgGagalMemperbarui
	case http.MethodDelete:
		return msgGagalMenghapus
	default:
		return msgGagalMemuat
	}
}

func encodeJSON(body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}
	return bytes.NewReader(raw), nil
}

// Form accumulates fields and file attachments for a multipart request.
// Repeated Add calls on the same key produce repeated form fields, which
// is how the backend expects blog tags.
type Form struct {
	fields []formField
	files  []formFile
}

type formField struct {
	key   string
	value string
}

type formFile struct {
	field   string
	name    string
	content []byte
}

// NewForm creates an empty multipart form.
func NewForm() *Form {
	return &Form{}
}

// Add appends a form field; calling it repeatedly with the same key keeps
// every value.
func (f *Form) Add(key, value string) {
	f.fields = append(f.fields, formField{key: key, value: value})
}

// AddFile attaches a file part.
func (f *Form) AddFile(field, name string, content []byte) {
	f.files = append(f.files, formFile{field: field, name: name, content: content})
}

func (f *Form) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, field := range f.fields {
		if err := w.WriteField(field.key, field.value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %q: %w", field.key, err)
		}
	}
	for _, file := range f.files {
		part, err := w.CreateFormFile(file.field, file.name)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form file %q: %w", file.field, err)
		}
		if _, err := part.Write(file.content); err != nil {
			return nil, "", fmt.Errorf("failed to write form file %q: %w", file.field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}
