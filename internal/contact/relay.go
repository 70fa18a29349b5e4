package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/karthikurao/portfolio/internal/utils"
)

var ErrRelayRejected = errors.New("form relay rejected submission")

// Sender delivers a submission somewhere a human will read it.
type Sender interface {
	Send(ctx context.Context, s Submission) error
}

// Relay posts submissions as JSON to a hosted form endpoint such as
// Formspree.
type Relay struct {
	endpoint string
	client   *retryablehttp.Client
}

type RelayOptions struct {
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Timeout      time.Duration
}

func DefaultRelayOptions() RelayOptions {
	return RelayOptions{
		RetryMax:     3,
		RetryWaitMin: 500 * time.Millisecond,
		RetryWaitMax: 5 * time.Second,
		Timeout:      10 * time.Second,
	}
}

func NewRelay(endpoint string, opts RelayOptions) *Relay {
	client := retryablehttp.NewClient()
	client.Logger = leveledLogger{}
	client.RetryMax = opts.RetryMax
	client.RetryWaitMin = opts.RetryWaitMin
	client.RetryWaitMax = opts.RetryWaitMax
	client.HTTPClient.Timeout = opts.Timeout
	// Hand back the last response so exhausted retries still surface the status.
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return &Relay{endpoint: endpoint, client: client}
}

type relayBody struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (r *Relay) Send(ctx context.Context, s Submission) error {
	body, err := json.Marshal(relayBody{Name: s.Name, Email: s.Email, Message: s.Message})
	if err != nil {
		return err
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("post to relay: %w", err)
	}
	defer res.Body.Close()
	io.Copy(io.Discard, io.LimitReader(res.Body, 1<<16))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrRelayRejected, res.StatusCode)
	}
	return nil
}

// leveledLogger routes retryablehttp's logging through logrus at debug
// level, except errors.
type leveledLogger struct{}

func (leveledLogger) Error(msg string, kv ...interface{}) { utils.Log.WithFields(fields(kv)).Error(msg) }
func (leveledLogger) Info(msg string, kv ...interface{})  { utils.Log.WithFields(fields(kv)).Debug(msg) }
func (leveledLogger) Debug(msg string, kv ...interface{}) { utils.Log.WithFields(fields(kv)).Debug(msg) }
func (leveledLogger) Warn(msg string, kv ...interface{})  { utils.Log.WithFields(fields(kv)).Warn(msg) }

func fields(kv []interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return out
}
