package wire

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syncwell/taskvault/internal/config"
	"github.com/syncwell/taskvault/internal/logger"
	"github.com/syncwell/taskvault/models"
)

func newTestClient(t *testing.T, handler http.Handler) (Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewHTTPClient(config.Adapter{
		ServerAddress:  srv.URL,
		RequestTimeout: 5 * time.Second,
	}, logger.Nop())
	require.NoError(t, err)

	return client, srv
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── NewHTTPClient ───────────────────────────────────────────────────────────

func TestNewHTTPClient_InvalidAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
	}{
		{name: "empty address", address: ""},
		{name: "whitespace only", address: "   "},
		{name: "scheme without host", address: "https://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewHTTPClient(config.Adapter{ServerAddress: tt.address}, logger.Nop())
			require.Error(t, err)
			assert.Nil(t, client)
		})
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
		wantErr  bool
	}{
		{name: "full https url", raw: "https://sync.example.com", expected: "https://sync.example.com"},
		{name: "explicit http url", raw: "http://localhost:8080", expected: "http://localhost:8080"},
		{name: "bare host gets https", raw: "sync.example.com", expected: "https://sync.example.com"},
		{name: "host and port get https", raw: "sync.example.com:443", expected: "https://sync.example.com:443"},
		{name: "trailing slash trimmed", raw: "https://sync.example.com/", expected: "https://sync.example.com"},
		{name: "surrounding whitespace", raw: "  https://sync.example.com  ", expected: "https://sync.example.com"},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// ── Token handling ──────────────────────────────────────────────────────────

func TestHTTPClient_SetToken(t *testing.T) {
	client, _ := newTestClient(t, http.NotFoundHandler())

	assert.Empty(t, client.Token())

	client.SetToken("  abc.def.ghi  ")
	assert.Equal(t, "abc.def.ghi", client.Token())
}

func TestHTTPClient_AuthorizationHeader(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(t, w, models.PullResponse{})
	}))

	client.SetToken("test-token")
	_, err := client.Pull(context.Background(), models.PullRequest{DeviceID: "dev-1"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
}

// ── Push ────────────────────────────────────────────────────────────────────

func TestHTTPClient_Push_Success(t *testing.T) {
	var gotReq models.PushRequest
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sync/push", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		writeJSON(t, w, models.PushResponse{
			Accepted: []string{"task-1"},
			Rejected: []models.Rejection{
				{TaskID: "task-2", Reason: "checksum_mismatch"},
			},
			ServerCausalVersion: models.VectorClock{"dev-1": 3, "dev-2": 7},
		})
	}))
	client.SetToken("tok")

	resp, err := client.Push(context.Background(), models.PushRequest{
		DeviceID: "dev-1",
		Operations: []models.WireOperation{
			{Type: models.OpCreate, TaskID: "task-1", EncryptedBlob: "AAAA", Nonce: "BBBB", Checksum: "cafe"},
		},
		ClientCausalVersion: models.VectorClock{"dev-1": 3},
	})
	require.NoError(t, err)

	assert.Equal(t, "dev-1", gotReq.DeviceID)
	require.Len(t, gotReq.Operations, 1)
	assert.Equal(t, "task-1", gotReq.Operations[0].TaskID)

	assert.Equal(t, []string{"task-1"}, resp.Accepted)
	require.Len(t, resp.Rejected, 1)
	assert.Equal(t, "checksum_mismatch", resp.Rejected[0].Reason)
	assert.Equal(t, int64(7), resp.ServerCausalVersion.Counter("dev-2"))
}

func TestHTTPClient_Push_ErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    error
	}{
		{name: "unauthorized", statusCode: http.StatusUnauthorized, wantErr: ErrAuth},
		{name: "forbidden", statusCode: http.StatusForbidden, wantErr: ErrAuth},
		{name: "bad request", statusCode: http.StatusBadRequest, wantErr: ErrValidation},
		{name: "unprocessable entity", statusCode: http.StatusUnprocessableEntity, wantErr: ErrValidation},
		{name: "too many requests", statusCode: http.StatusTooManyRequests, wantErr: ErrNetwork},
		{name: "internal server error", statusCode: http.StatusInternalServerError, wantErr: ErrNetwork},
		{name: "bad gateway", statusCode: http.StatusBadGateway, wantErr: ErrNetwork},
		{name: "service unavailable", statusCode: http.StatusServiceUnavailable, wantErr: ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "server says no", tt.statusCode)
			}))
			client.SetToken("tok")

			_, err := client.Push(context.Background(), models.PushRequest{DeviceID: "dev-1"})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), "server says no")
		})
	}
}

func TestHTTPClient_Push_ServerDown(t *testing.T) {
	client, srv := newTestClient(t, http.NotFoundHandler())
	srv.Close()

	_, err := client.Push(context.Background(), models.PushRequest{DeviceID: "dev-1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
}

// ── Pull ────────────────────────────────────────────────────────────────────

func TestHTTPClient_Pull_Success(t *testing.T) {
	var gotReq models.PullRequest
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sync/pull", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		writeJSON(t, w, models.PullResponse{
			Tasks: []models.EncryptedTask{
				{ID: "task-9", EncryptedBlob: "Q0lQSEVS", Nonce: "Tk9OQ0U=", CausalVersion: models.VectorClock{"dev-2": 4}},
			},
			DeletedTaskIDs:      []string{"task-3"},
			ServerCausalVersion: models.VectorClock{"dev-1": 2, "dev-2": 4},
		})
	}))
	client.SetToken("tok")

	resp, err := client.Pull(context.Background(), models.PullRequest{
		DeviceID:          "dev-1",
		LastCausalVersion: models.VectorClock{"dev-1": 2},
	})
	require.NoError(t, err)

	assert.Equal(t, "dev-1", gotReq.DeviceID)
	require.Len(t, resp.Tasks, 1)
	assert.Equal(t, "task-9", resp.Tasks[0].ID)
	assert.Equal(t, []string{"task-3"}, resp.DeletedTaskIDs)
}

func TestHTTPClient_Pull_Unauthorized(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token expired", http.StatusUnauthorized)
	}))
	client.SetToken("stale")

	_, err := client.Pull(context.Background(), models.PullRequest{DeviceID: "dev-1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuth)
}

// ── RefreshToken ────────────────────────────────────────────────────────────

func TestHTTPClient_RefreshToken_StoresNewToken(t *testing.T) {
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/refresh", r.URL.Path)
		assert.Equal(t, "Bearer old-token", r.Header.Get("Authorization"))

		writeJSON(t, w, models.RefreshResponse{Token: "new-token", ExpiresAt: expires})
	}))
	client.SetToken("old-token")

	resp, err := client.RefreshToken(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "new-token", resp.Token)
	assert.Equal(t, expires, resp.ExpiresAt.UTC())
	assert.Equal(t, "new-token", client.Token())
}

func TestHTTPClient_RefreshToken_EmptyToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, models.RefreshResponse{})
	}))
	client.SetToken("old-token")

	_, err := client.RefreshToken(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no token")
	assert.Equal(t, "old-token", client.Token())
}

func TestHTTPClient_RefreshToken_Rejected(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "credential revoked", http.StatusForbidden)
	}))
	client.SetToken("revoked")

	_, err := client.RefreshToken(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuth)
}

// ── EncryptionSalt ──────────────────────────────────────────────────────────

func TestHTTPClient_EncryptionSalt(t *testing.T) {
	rawSalt := []byte("0123456789abcdef")
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/auth/encryption-salt", r.URL.Path)

		writeJSON(t, w, models.SaltResponse{Salt: base64.StdEncoding.EncodeToString(rawSalt)})
	}))
	client.SetToken("tok")

	salt, err := client.EncryptionSalt(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rawSalt, salt)
}

func TestHTTPClient_EncryptionSalt_InvalidEncoding(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, models.SaltResponse{Salt: "%%% not base64 %%%"})
	}))
	client.SetToken("tok")

	salt, err := client.EncryptionSalt(context.Background())
	require.Error(t, err)
	assert.Nil(t, salt)
}

// ── Status ──────────────────────────────────────────────────────────────────

func TestHTTPClient_Status(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/sync/status", r.URL.Path)

		writeJSON(t, w, models.StatusResponse{Devices: 3, StoredTasks: 42, OpenConflicts: 1})
	}))
	client.SetToken("tok")

	resp, err := client.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Devices)
	assert.Equal(t, 42, resp.StoredTasks)
	assert.Equal(t, 1, resp.OpenConflicts)
}

// ── RevokeDevice ────────────────────────────────────────────────────────────

func TestHTTPClient_RevokeDevice(t *testing.T) {
	var gotBody map[string]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/revoke-device", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	client.SetToken("tok")

	err := client.RevokeDevice(context.Background(), "dev-2")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"deviceId": "dev-2"}, gotBody)
}

func TestHTTPClient_RevokeDevice_NotAllowed(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "cannot revoke yourself", http.StatusUnprocessableEntity)
	}))
	client.SetToken("tok")

	err := client.RevokeDevice(context.Background(), "dev-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}
