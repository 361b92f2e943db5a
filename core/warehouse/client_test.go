package warehouse

import (
	"context"
	"testing"

	"cloud.google.com/go/bigquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewClient_RequiresProject(t *testing.T) {
	_, err := NewClient(context.Background(), Config{}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project id")
}

func TestToQueryParameters(t *testing.T) {
	assert.Nil(t, toQueryParameters(nil))

	got := toQueryParameters([]Param{
		{Name: "date", Value: "2024-05-01"},
		{Name: "shop_id", Value: int64(41571)},
	})
	assert.Equal(t, []bigquery.QueryParameter{
		{Name: "date", Value: "2024-05-01"},
		{Name: "shop_id", Value: int64(41571)},
	}, got)
}
