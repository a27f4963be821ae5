package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landerlens/internal/feed"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func Test_messageForFetchError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "not configured",
			err:      &feed.Error{Kind: feed.KindNotConfigured},
			expected: "No feed API URL is configured. Set one under Settings.",
		},
		{
			name:     "payload",
			err:      &feed.Error{Kind: feed.KindPayload, URL: "http://x"},
			expected: "The feed API returned a response that could not be read.",
		},
		{
			name:     "network",
			err:      &feed.Error{Kind: feed.KindNetwork, URL: "http://x", Status: 502},
			expected: "Could not reach the feed API. Please try again later.",
		},
		{
			name:     "unclassified error",
			err:      errors.New("boom"),
			expected: "Could not reach the feed API. Please try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, messageForFetchError(tt.err))
		})
	}
}

func Test_loadDashboardSummary(t *testing.T) {
	t.Run("aggregates a healthy feed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{
				"status": "success",
				"data": {
					"a": {"timestamp": "2024-01-01T10:00:00Z"},
					"b": {"timestamp": "2024-01-02T10:00:00Z"},
					"c": {"timestamp": ""}
				},
				"message": "ok"
			}`))
		}))
		defer srv.Close()

		client := feed.NewClient(2*time.Second, testLogger())
		summary, errorMessage := loadDashboardSummary(context.Background(), client, srv.URL, testLogger())

		assert.Empty(t, errorMessage)
		assert.Equal(t, 3, summary.TotalCount)
		assert.Equal(t, 3, summary.DistinctGroupCount)
		assert.Equal(t, []string{"2024-01-01", "2024-01-02", "sin_fecha"}, summary.HistogramLabels)
		assert.Equal(t, []int{1, 1, 1}, summary.HistogramValues)
	})

	t.Run("degrades to zeroed metrics on network failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		deadURL := srv.URL
		srv.Close()

		client := feed.NewClient(500*time.Millisecond, testLogger())
		summary, errorMessage := loadDashboardSummary(context.Background(), client, deadURL, testLogger())

		assert.NotEmpty(t, errorMessage)
		assert.Equal(t, 0, summary.TotalCount)
		assert.Equal(t, 0, summary.DistinctGroupCount)
		assert.Equal(t, float64(0), summary.AverageLabelLength)
		require.NotNil(t, summary.HistogramLabels)
		require.NotNil(t, summary.HistogramValues)
		require.NotNil(t, summary.Items)
		assert.Empty(t, summary.Items)
	})

	t.Run("degrades when no URL is configured", func(t *testing.T) {
		client := feed.NewClient(time.Second, testLogger())
		summary, errorMessage := loadDashboardSummary(context.Background(), client, "", testLogger())

		assert.Equal(t, "No feed API URL is configured. Set one under Settings.", errorMessage)
		assert.Equal(t, 0, summary.TotalCount)
	})

	t.Run("degrades on undecodable payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>not json</html>`))
		}))
		defer srv.Close()

		client := feed.NewClient(2*time.Second, testLogger())
		summary, errorMessage := loadDashboardSummary(context.Background(), client, srv.URL, testLogger())

		assert.Equal(t, "The feed API returned a response that could not be read.", errorMessage)
		assert.Equal(t, 0, summary.TotalCount)
	})
}
