package http

import (
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pricing-service/internal/domain/dto"
	"github.com/guttosm/pricing-service/internal/domain/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// recordingSink collects log entries synchronously.
type recordingSink struct {
	mu      sync.Mutex
	entries []*model.LogEntry
}

func (s *recordingSink) Log(entry *model.LogEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return true
}

func (s *recordingSink) byAction(action string) []*model.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.LogEntry
	for _, e := range s.entries {
		if e.ActionType == action {
			out = append(out, e)
		}
	}
	return out
}

// decodeData unmarshals the data field of a SuccessResponse into T.
func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var resp dto.SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	dataBytes, err := json.Marshal(resp.Data)
	require.NoError(t, err)

	data, err := UnmarshalFromBytes[T](dataBytes)
	require.NoError(t, err)
	return *data
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
