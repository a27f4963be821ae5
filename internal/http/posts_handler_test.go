package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landerlens/internal/feed"
	"landerlens/internal/metrics"
)

func Test_loadPostsSummary(t *testing.T) {
	t.Run("aggregates posts per user", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[
				{"userId": 1, "id": 1, "title": "sunt aut facere"},
				{"userId": 1, "id": 2, "title": "qui est esse"},
				{"userId": 2, "id": 3, "title": "ea molestias quasi"}
			]`))
		}))
		defer srv.Close()

		client := feed.NewClient(2*time.Second, testLogger())
		summary, errorMessage := loadPostsSummary(context.Background(), client, srv.URL, testLogger())

		assert.Empty(t, errorMessage)
		assert.Equal(t, 3, summary.TotalCount)
		assert.Equal(t, 2, summary.DistinctGroupCount)
		assert.Equal(t, []string{"User 1", "User 2"}, summary.HistogramLabels)
		assert.Equal(t, []int{2, 1}, summary.HistogramValues)
	})

	t.Run("title-cases display items without touching the averages", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"userId": 1, "id": 1, "title": "abcd"}]`))
		}))
		defer srv.Close()

		client := feed.NewClient(2*time.Second, testLogger())
		summary, errorMessage := loadPostsSummary(context.Background(), client, srv.URL, testLogger())

		assert.Empty(t, errorMessage)
		require.Len(t, summary.Items, 1)
		assert.Equal(t, "Abcd", summary.Items[0].Title)
		// Average is computed over the raw title
		assert.Equal(t, 4.0, summary.AverageLabelLength)
	})

	t.Run("caps the display list", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[` + repeatedPosts(30) + `]`))
		}))
		defer srv.Close()

		client := feed.NewClient(2*time.Second, testLogger())
		summary, errorMessage := loadPostsSummary(context.Background(), client, srv.URL, testLogger())

		assert.Empty(t, errorMessage)
		assert.Equal(t, 30, summary.TotalCount)
		assert.Len(t, summary.Items, metrics.DisplayLimit)
	})

	t.Run("degrades on fetch failure", func(t *testing.T) {
		client := feed.NewClient(time.Second, testLogger())
		summary, errorMessage := loadPostsSummary(context.Background(), client, "", testLogger())

		assert.NotEmpty(t, errorMessage)
		assert.Equal(t, 0, summary.TotalCount)
		assert.Empty(t, summary.Items)
	})
}

func repeatedPosts(n int) string {
	out := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			out += ","
		}
		out += `{"userId": 1, "title": "post"}`
	}
	return out
}
