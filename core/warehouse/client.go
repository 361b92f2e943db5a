package warehouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Client executes queries on BigQuery.
type Client struct {
	bq      *bigquery.Client
	cfg     Config
	logger  *zap.Logger
	timeout time.Duration
}

// NewClient connects to BigQuery using cfg. Credentials come from
// cfg.CredentialsJSON when set, otherwise from the environment.
func NewClient(ctx context.Context, cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("warehouse project id is required")
	}

	var opts []option.ClientOption
	if cfg.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	bq, err := bigquery.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bigquery client: %w", err)
	}
	if cfg.Location != "" {
		bq.Location = cfg.Location
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 60
	}

	return &Client{
		bq:      bq,
		cfg:     cfg,
		logger:  logger,
		timeout: time.Duration(timeout) * time.Second,
	}, nil
}

// Query runs sql with params bound as named parameters.
func (c *Client) Query(ctx context.Context, sql string, params []Param) ([]Row, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	q := c.bq.Query(sql)
	q.Parameters = toQueryParameters(params)

	start := time.Now()
	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run query: %w", err)
	}

	var rows []Row
	for {
		var values map[string]bigquery.Value
		err := it.Next(&values)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		row := make(Row, len(values))
		for k, v := range values {
			row[k] = v
		}
		rows = append(rows, row)
	}

	c.logger.Debug("Query finished",
		zap.Int("rows", len(rows)),
		zap.Duration("duration", time.Since(start)),
	)
	return rows, nil
}

// Ping runs a trivial query.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Query(ctx, "SELECT 1", nil)
	return err
}

// Close releases the underlying client.
func (c *Client) Close() error {
	return c.bq.Close()
}

func toQueryParameters(params []Param) []bigquery.QueryParameter {
	if len(params) == 0 {
		return nil
	}
	out := make([]bigquery.QueryParameter, len(params))
	for i, p := range params {
		out[i] = bigquery.QueryParameter{Name: p.Name, Value: p.Value}
	}
	return out
}
