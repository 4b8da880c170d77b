//go:build !integration

package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestLogQueryOptions_Filter(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	tests := []struct {
		name string
		opts LogQueryOptions
		want bson.M
	}{
		{
			name: "empty",
			opts: LogQueryOptions{},
			want: bson.M{},
		},
		{
			name: "scalar fields",
			opts: LogQueryOptions{RequestID: "r", Level: "info", ActionType: "quote", ClientID: "c"},
			want: bson.M{"request_id": "r", "level": "info", "action_type": "quote", "client_id": "c"},
		},
		{
			name: "start only",
			opts: LogQueryOptions{StartTime: &start},
			want: bson.M{"timestamp": bson.M{"$gte": start}},
		},
		{
			name: "window",
			opts: LogQueryOptions{StartTime: &start, EndTime: &end},
			want: bson.M{"timestamp": bson.M{"$gte": start, "$lte": end}},
		},
		{
			name: "limit and skip do not filter",
			opts: LogQueryOptions{Limit: 5, Skip: 10},
			want: bson.M{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.filter())
		})
	}
}

func TestPrepare(t *testing.T) {
	entry := &LogEntryDocument{}
	prepare(entry)

	assert.False(t, entry.ID.IsZero())
	assert.False(t, entry.Timestamp.IsZero())

	id, ts := entry.ID, entry.Timestamp
	prepare(entry)
	assert.Equal(t, id, entry.ID)
	assert.Equal(t, ts, entry.Timestamp)
}

func TestDefaultMongoConfig(t *testing.T) {
	cfg := DefaultMongoConfig()
	assert.Equal(t, uint64(20), cfg.MaxPoolSize)
	assert.Equal(t, uint64(2), cfg.MinPoolSize)
	assert.True(t, cfg.EnableCompression)
}
