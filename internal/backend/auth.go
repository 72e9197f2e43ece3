package backend

import (
	"context"
	"errors"
)

// LoginResponse is the payload of a successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Admin       Admin  `json:"admin"`
}

// AuthAPI maps to the backend's auth endpoints.
type AuthAPI struct {
	c *Client
}

// NewAuthAPI creates the auth endpoint mapping.
func NewAuthAPI(c *Client) *AuthAPI {
	return &AuthAPI{c: c}
}

// Login exchanges credentials for a bearer token and the admin profile.
func (a *AuthAPI) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}

	var resp LoginResponse
	if err := a.c.Post(ctx, "/auth/login", body, &resp); err != nil {
		return nil, fallback(err, "username atau password salah")
	}
	if resp.AccessToken == "" {
		return nil, errors.New("login berhasil tetapi token tidak diterima")
	}
	return &resp, nil
}

// fallback swaps the wrapper's generic message for a domain-specific one.
// Messages the backend itself produced are kept as-is.
func fallback(err error, msg string) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && isGenericMessage(apiErr.Message) {
		return &APIError{Status: apiErr.Status, Message: msg}
	}
	return err
}

func isGenericMessage(msg string) bool {
	switch msg {
	case msgGagalMemuat, msgGagalMengirim, msgGagalMemperbarui, msgGagalMenghapus:
		return true
	}
	return false
}
