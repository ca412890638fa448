package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"redditradar/internal/db"
	"redditradar/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrawlHistoryAdminOnly(t *testing.T) {
	r := newTestRouter(t)
	_, userToken := createTestUser(t, "alice", "user", "Premium")

	w := doRequest(t, r, http.MethodGet, "/api/crawl-history", "", nil)
	requireStatus(t, w, http.StatusUnauthorized)

	w = doRequest(t, r, http.MethodGet, "/api/crawl-history", userToken, nil)
	requireStatus(t, w, http.StatusForbidden)

	w = doRequest(t, r, http.MethodPost, "/api/crawl-history", userToken, map[string]interface{}{
		"start_time": time.Now().Format(time.RFC3339),
		"status":     "running",
	})
	requireStatus(t, w, http.StatusForbidden)
}

func TestCrawlHistoryLifecycle(t *testing.T) {
	r := newTestRouter(t)
	_, adminToken := createTestUser(t, "root", "admin", "Free")

	subreddit := models.Subreddit{Name: "golang"}
	require.NoError(t, db.DB.Create(&subreddit).Error)

	// Unknown subreddit is rejected with a field error.
	w := doRequest(t, r, http.MethodPost, "/api/crawl-history", adminToken, map[string]interface{}{
		"subreddit_id": 9999,
		"start_time":   time.Now().Format(time.RFC3339),
		"status":       "running",
	})
	requireStatus(t, w, http.StatusBadRequest)
	assert.Contains(t, decodeBody(t, w)["errors"], "subreddit_id")

	// The crawler opens a record when a run starts.
	w = doRequest(t, r, http.MethodPost, "/api/crawl-history", adminToken, map[string]interface{}{
		"subreddit_id": subreddit.ID,
		"start_time":   time.Now().Format(time.RFC3339),
		"status":       "running",
	})
	requireStatus(t, w, http.StatusCreated)
	recordID := uint(decodeBody(t, w)["id"].(float64))

	// And closes it out with final counts.
	w = doRequest(t, r, http.MethodPatch, fmt.Sprintf("/api/crawl-history/%d", recordID), adminToken,
		map[string]interface{}{
			"end_time":       time.Now().Format(time.RFC3339),
			"posts_found":    12,
			"comments_found": 80,
			"status":         "completed",
		})
	requireStatus(t, w, http.StatusOK)

	var record models.CrawlHistory
	require.NoError(t, db.DB.First(&record, recordID).Error)
	assert.Equal(t, "completed", record.Status)
	assert.Equal(t, 12, record.PostsFound)
	assert.NotNil(t, record.EndTime)
}

func TestCrawlHistoryFilters(t *testing.T) {
	r := newTestRouter(t)
	_, adminToken := createTestUser(t, "root", "admin", "Free")

	subreddit := models.Subreddit{Name: "golang"}
	require.NoError(t, db.DB.Create(&subreddit).Error)

	records := []models.CrawlHistory{
		{SubredditID: &subreddit.ID, StartTime: time.Now(), Status: "completed"},
		{SubredditID: &subreddit.ID, StartTime: time.Now(), Status: "failed"},
		{StartTime: time.Now(), Status: "completed"},
	}
	for i := range records {
		require.NoError(t, db.DB.Create(&records[i]).Error)
	}

	w := doRequest(t, r, http.MethodGet, "/api/crawl-history?status=completed", adminToken, nil)
	requireStatus(t, w, http.StatusOK)
	assert.EqualValues(t, 2, decodeBody(t, w)["total"])

	w = doRequest(t, r, http.MethodGet,
		fmt.Sprintf("/api/crawl-history?subreddit_id=%d", subreddit.ID), adminToken, nil)
	requireStatus(t, w, http.StatusOK)
	assert.EqualValues(t, 2, decodeBody(t, w)["total"])
}
