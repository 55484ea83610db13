package capacity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v3"
	"github.com/go-redis/redis"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/threefoldtech/dmi/pkg/capacity/dmi"
	"github.com/threefoldtech/dmi/pkg/utils"
	"github.com/threefoldtech/dmi/pkg/version"
)

// ErrNoNodeID is returned when the tables carry neither a system UUID nor a
// serial number to identify the node with
var ErrNoNodeID = errors.New("no node identifier in the smbios tables")

// Report is the hardware proof sent to a store
type Report struct {
	Capacity  Capacity  `json:"capacity"`
	Inventory Inventory `json:"inventory"`
	DMI       *dmi.DMI  `json:"dmi"`
	// Uptime of the node in seconds when the report was collected
	Uptime uint64 `json:"uptime"`
}

// Node identifies the machine the report is about, the system UUID if the
// firmware sets it, the board serial number otherwise
func (r *Report) Node() string {
	if r.Inventory.UUID != "" {
		return r.Inventory.UUID
	}

	if r.Inventory.Board.Serial != "" {
		return r.Inventory.Board.Serial
	}

	return r.Inventory.System.Serial
}

// NewReport collects a full report from the oracle
func NewReport(r *ResourceOracle) (Report, error) {
	var report Report
	var err error

	report.Capacity, err = r.Total()
	if err != nil {
		return report, errors.Wrap(err, "failed to get node capacity")
	}

	report.Inventory, err = r.Inventory()
	if err != nil {
		return report, errors.Wrap(err, "failed to get hardware inventory")
	}

	report.DMI, err = r.DMI()
	if err != nil {
		return report, errors.Wrap(err, "failed to decode dmi")
	}

	report.Uptime, err = r.Uptime()
	if err != nil {
		return report, errors.Wrap(err, "failed to get node uptime")
	}

	return report, nil
}

// Store is where hardware reports are pushed
type Store interface {
	Register(ctx context.Context, report Report) error
}

// HTTPStore implement the method to push capacity information over HTTP
type HTTPStore struct {
	baseURL string
	client  *retryablehttp.Client
}

// NewHTTPStore create a new HTTPStore
func NewHTTPStore(baseURL string) *HTTPStore {
	client := retryablehttp.NewClient()
	client.RetryMax = 5
	client.Logger = zerologLogger{}

	return &HTTPStore{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

// Register sends the report to /nodes/<node>/capacity. The node identifier
// is path escaped, a report without one is rejected.
func (s *HTTPStore) Register(ctx context.Context, report Report) error {
	node := report.Node()
	if node == "" {
		return backoff.Permanent(ErrNoNodeID)
	}

	buf := bytes.Buffer{}
	if err := json.NewEncoder(&buf).Encode(report); err != nil {
		return errors.Wrap(err, "failed to encode report")
	}

	endpoint := fmt.Sprintf("%s/nodes/%s/capacity", s.baseURL, url.PathEscape(node))
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, endpoint, buf.Bytes())
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent())

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "failed to send report to '%s'", endpoint)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("wrong response status code received: %v", resp.Status)
	}

	return nil
}

func userAgent() string {
	if v, err := version.Semver(); err == nil {
		return fmt.Sprintf("dmi/%s", v)
	}

	return fmt.Sprintf("dmi/%s", version.Current().Short())
}

// RedisStore publishes reports on a redis channel
type RedisStore struct {
	client  *redis.Client
	channel string
}

// NewRedisStore creates a RedisStore for the server at address
func NewRedisStore(address, channel string) (*RedisStore, error) {
	client, err := utils.NewRedisClient(address)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid redis address '%s'", address)
	}

	return &RedisStore{client: client, channel: channel}, nil
}

// Register publishes the report on the store channel
func (s *RedisStore) Register(ctx context.Context, report Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return errors.Wrap(err, "failed to encode report")
	}

	if err := s.client.WithContext(ctx).Publish(s.channel, data).Err(); err != nil {
		return errors.Wrapf(err, "failed to publish report on '%s'", s.channel)
	}

	return nil
}

// Close the redis client
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Push registers the report on the store, retrying with an exponential
// backoff until it succeeds, maxElapsed passes or ctx is canceled.
func Push(ctx context.Context, store Store, report Report, maxElapsed time.Duration) error {
	exp := backoff.NewExponentialBackOff()
	exp.MaxInterval = 2 * time.Minute
	exp.MaxElapsedTime = maxElapsed
	bo := backoff.WithContext(exp, ctx)

	err := backoff.RetryNotify(func() error {
		return store.Register(ctx, report)
	}, bo, retryNotify)

	if err != nil {
		return errors.Wrap(err, "failed to push hardware report")
	}

	log.Info().Str("node", report.Node()).Msg("hardware report has been pushed")
	return nil
}

func retryNotify(err error, d time.Duration) {
	log.Warn().Err(err).Str("sleep", d.String()).Msg("report push failed")
}

// zerologLogger routes the retryablehttp logs to zerolog
type zerologLogger struct{}

var _ retryablehttp.LeveledLogger = zerologLogger{}

func fields(keysAndValues []interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		m[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return m
}

func (zerologLogger) Error(msg string, keysAndValues ...interface{}) {
	log.Error().Fields(fields(keysAndValues)).Msg(msg)
}

func (zerologLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug().Fields(fields(keysAndValues)).Msg(msg)
}

func (zerologLogger) Debug(msg string, keysAndValues ...interface{}) {
	log.Debug().Fields(fields(keysAndValues)).Msg(msg)
}

func (zerologLogger) Warn(msg string, keysAndValues ...interface{}) {
	log.Warn().Fields(fields(keysAndValues)).Msg(msg)
}
