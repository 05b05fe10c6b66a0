package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"Gigbell/internal/metrics"
	"Gigbell/internal/modules/notification/domain/entity"
	"Gigbell/internal/modules/notification/domain/repository"
	"Gigbell/pkg/zlog"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const DefaultExpoEndpoint = "https://exp.host/--/api/v2/push/send"

var (
	ErrNoToken  = errors.New("push token is empty")
	ErrRejected = errors.New("push rejected by gateway")
)

type ExpoConfig struct {
	Endpoint        string
	AccessToken     string
	Timeout         time.Duration
	RatePerSecond   float64
	Burst           int
	BreakerFailures uint32
	BreakerOpen     time.Duration
}

// ExpoClient Expo 推送网关客户端：限流 + 熔断，单条发送，不重试
type ExpoClient struct {
	endpoint string
	token    string
	http     *http.Client
	limiter  *rate.Limiter
	breaker  *gobreaker.CircuitBreaker[entity.DeliveryResult]
}

func NewExpoClient(cfg ExpoConfig) *ExpoClient {
	return newExpoClient(cfg, nil)
}

func newExpoClient(cfg ExpoConfig, hc *http.Client) *ExpoClient {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		cfg.Endpoint = DefaultExpoEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}
	if cfg.BreakerOpen <= 0 {
		cfg.BreakerOpen = 30 * time.Second
	}
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	failures := cfg.BreakerFailures
	breaker := gobreaker.NewCircuitBreaker[entity.DeliveryResult](gobreaker.Settings{
		Name:        "expo-push",
		MaxRequests: 1,
		Timeout:     cfg.BreakerOpen,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			zlog.Warn("push breaker state changed", zap.String("name", name), zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})

	return &ExpoClient{
		endpoint: cfg.Endpoint,
		token:    cfg.AccessToken,
		http:     hc,
		limiter:  rate.NewLimiter(limit, burst),
		breaker:  breaker,
	}
}

var _ repository.PushSender = (*ExpoClient)(nil)

func (c *ExpoClient) Send(ctx context.Context, msg entity.PushMessage) (entity.DeliveryResult, error) {
	if strings.TrimSpace(msg.To) == "" {
		return entity.DeliveryResult{}, ErrNoToken
	}
	if msg.Data == nil {
		msg.Data = map[string]interface{}{}
	}
	if msg.Sound == "" {
		msg.Sound = "default"
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return entity.DeliveryResult{}, err
	}

	res, err := c.breaker.Execute(func() (entity.DeliveryResult, error) {
		return c.post(ctx, msg)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.PushFailures.WithLabelValues(metrics.StageBreaker).Inc()
		} else {
			metrics.PushFailures.WithLabelValues(metrics.StageSend).Inc()
		}
		return entity.DeliveryResult{}, err
	}
	if res.Status != entity.DeliveryStatusOK {
		metrics.PushFailures.WithLabelValues(metrics.StageRejected).Inc()
		return res, fmt.Errorf("%w: %s", ErrRejected, res.Message)
	}
	metrics.PushSent.Inc()
	return res, nil
}

type expoResponse struct {
	Data   entity.DeliveryResult `json:"data"`
	Errors []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// post 网关层面的失败（网络、5xx、请求级 errors）计入熔断；单条回执的 error 不计入
func (c *ExpoClient) post(ctx context.Context, msg entity.PushMessage) (entity.DeliveryResult, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return entity.DeliveryResult{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return entity.DeliveryResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return entity.DeliveryResult{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return entity.DeliveryResult{}, err
	}
	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
		return entity.DeliveryResult{}, fmt.Errorf("push gateway status %d", resp.StatusCode)
	}

	var out expoResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return entity.DeliveryResult{}, fmt.Errorf("decode push gateway response (status %d): %w", resp.StatusCode, err)
	}
	if len(out.Errors) > 0 {
		return entity.DeliveryResult{}, fmt.Errorf("push gateway error %s: %s", out.Errors[0].Code, out.Errors[0].Message)
	}
	if out.Data.Status == "" {
		out.Data.Status = entity.DeliveryStatusError
		if out.Data.Message == "" {
			out.Data.Message = fmt.Sprintf("unexpected response status %d", resp.StatusCode)
		}
	}
	return out.Data, nil
}
