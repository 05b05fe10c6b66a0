package push

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"Gigbell/internal/modules/notification/domain/entity"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpoClient_Send(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"data":{"status":"ok","id":"ticket-1"}}`))
	}))
	defer srv.Close()

	c := NewExpoClient(ExpoConfig{Endpoint: srv.URL, AccessToken: "secret"})
	res, err := c.Send(context.Background(), entity.PushMessage{
		To:    "ExponentPushToken[a]",
		Title: "예매 오픈 알림",
		Body:  "body",
		Data:  map[string]interface{}{"notification_id": 3},
	})
	require.NoError(t, err)
	assert.Equal(t, "ticket-1", res.ID)

	assert.Equal(t, "ExponentPushToken[a]", got["to"])
	assert.Equal(t, "예매 오픈 알림", got["title"])
	assert.Equal(t, "default", got["sound"])
	assert.Equal(t, float64(3), got["data"].(map[string]interface{})["notification_id"])
}

func TestExpoClient_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"status":"error","message":"DeviceNotRegistered"}}`))
	}))
	defer srv.Close()

	c := NewExpoClient(ExpoConfig{Endpoint: srv.URL})
	res, err := c.Send(context.Background(), entity.PushMessage{To: "t"})
	assert.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, entity.DeliveryStatusError, res.Status)
}

func TestExpoClient_NoToken(t *testing.T) {
	c := NewExpoClient(ExpoConfig{Endpoint: "http://127.0.0.1:1"})
	_, err := c.Send(context.Background(), entity.PushMessage{})
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestExpoClient_BreakerOpens(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewExpoClient(ExpoConfig{Endpoint: srv.URL, BreakerFailures: 2, BreakerOpen: time.Minute})
	for i := 0; i < 2; i++ {
		_, err := c.Send(context.Background(), entity.PushMessage{To: "t"})
		require.Error(t, err)
	}
	_, err := c.Send(context.Background(), entity.PushMessage{To: "t"})
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestExpoClient_RequestLevelErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"code":"VALIDATION_ERROR","message":"bad"}]}`))
	}))
	defer srv.Close()

	c := NewExpoClient(ExpoConfig{Endpoint: srv.URL})
	_, err := c.Send(context.Background(), entity.PushMessage{To: "t"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VALIDATION_ERROR")
}

func TestExpoClient_ContextCancelled(t *testing.T) {
	c := NewExpoClient(ExpoConfig{Endpoint: "http://127.0.0.1:1", RatePerSecond: 0.001, Burst: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Send(ctx, entity.PushMessage{To: "t"})
	assert.Error(t, err)
}
