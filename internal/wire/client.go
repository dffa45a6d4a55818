// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskVault Authors

package wire

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/syncwell/taskvault/internal/config"
	"github.com/syncwell/taskvault/internal/logger"
	"github.com/syncwell/taskvault/internal/utils"
	"github.com/syncwell/taskvault/models"
)

type httpClient struct {
	client *utils.HTTPClient
	token  string

	logger *logger.Logger
}

// NewHTTPClient constructs the HTTP/JSON implementation of [Client]. It
// normalizes and validates the base URL from adapterCfg.ServerAddress and
// configures the underlying client with the resolved base URL and request
// timeout.
//
// Returns an error if adapterCfg.ServerAddress is empty or cannot be parsed
// as a valid URL.
func NewHTTPClient(adapterCfg config.Adapter, log *logger.Logger) (Client, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.ServerAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid sync server address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpClient{client: client, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [Client]. It stores token (whitespace-trimmed) for use
// in the Authorization header of all subsequent requests.
func (h *httpClient) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [Client].
func (h *httpClient) Token() string {
	return h.token
}

// Push implements [Client]. The request body carries only opaque blobs;
// plaintext never reaches this layer.
func (h *httpClient) Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error) {
	var out models.PushResponse

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/sync/push")
	if err != nil {
		return out, fmt.Errorf("%w: push request: %v", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return out, err
	}

	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return out, fmt.Errorf("decode push response: %w", err)
	}
	return out, nil
}

// Pull implements [Client].
func (h *httpClient) Pull(ctx context.Context, req models.PullRequest) (models.PullResponse, error) {
	var out models.PullResponse

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/sync/pull")
	if err != nil {
		return out, fmt.Errorf("%w: pull request: %v", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return out, err
	}

	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return out, fmt.Errorf("decode pull response: %w", err)
	}
	return out, nil
}

// RefreshToken implements [Client]. The refresh endpoint authenticates with
// the current (possibly near-expiry) credential; on success the new one is
// stored via SetToken.
func (h *httpClient) RefreshToken(ctx context.Context) (models.RefreshResponse, error) {
	var out models.RefreshResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&out).
		Post("/auth/refresh")
	if err != nil {
		return out, fmt.Errorf("%w: refresh request: %v", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return out, err
	}
	if out.Token == "" {
		return out, fmt.Errorf("refresh response carries no token")
	}

	h.SetToken(out.Token)
	return out, nil
}

// EncryptionSalt implements [Client]. The salt is not a secret; it is stored
// server-side so every device of an account derives the same key.
func (h *httpClient) EncryptionSalt(ctx context.Context) ([]byte, error) {
	var out models.SaltResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&out).
		Get("/auth/encryption-salt")
	if err != nil {
		return nil, fmt.Errorf("%w: encryption salt request: %v", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	salt, err := base64.StdEncoding.DecodeString(out.Salt)
	if err != nil {
		return nil, fmt.Errorf("decode encryption salt: %w", err)
	}
	return salt, nil
}

// Status implements [Client].
func (h *httpClient) Status(ctx context.Context) (models.StatusResponse, error) {
	var out models.StatusResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&out).
		Get("/sync/status")
	if err != nil {
		return out, fmt.Errorf("%w: status request: %v", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return out, err
	}
	return out, nil
}

// RevokeDevice implements [Client].
func (h *httpClient) RevokeDevice(ctx context.Context, deviceID string) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"deviceId": deviceID}).
		Post("/auth/revoke-device")
	if err != nil {
		return fmt.Errorf("%w: revoke device request: %v", ErrNetwork, err)
	}
	return mapHTTPError(resp)
}

func (h *httpClient) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
