package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"redditradar/internal/db"
	"redditradar/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentCreateValidation(t *testing.T) {
	r := newTestRouter(t)
	_, token := createTestUser(t, "alice", "user", "Free")

	post := models.Post{RedditID: "t3_a", Title: "thread"}
	require.NoError(t, db.DB.Create(&post).Error)
	otherPost := models.Post{RedditID: "t3_b", Title: "other thread"}
	require.NoError(t, db.DB.Create(&otherPost).Error)

	strayParent := models.Comment{RedditID: "t1_stray", PostID: otherPost.ID, Body: "elsewhere"}
	require.NoError(t, db.DB.Create(&strayParent).Error)

	// Unknown post.
	w := doRequest(t, r, http.MethodPost, "/api/comments", token, map[string]interface{}{
		"reddit_id": "t1_a", "post_id": 9999, "body": "hi",
	})
	requireStatus(t, w, http.StatusBadRequest)
	assert.Contains(t, decodeBody(t, w)["errors"], "post_id")

	// Parent on a different post.
	w = doRequest(t, r, http.MethodPost, "/api/comments", token, map[string]interface{}{
		"reddit_id": "t1_a", "post_id": post.ID, "parent_id": strayParent.ID, "body": "hi",
	})
	requireStatus(t, w, http.StatusBadRequest)
	assert.Contains(t, decodeBody(t, w)["errors"], "parent_id")

	// Valid comment defaults the author to the caller.
	w = doRequest(t, r, http.MethodPost, "/api/comments", token, map[string]interface{}{
		"reddit_id": "t1_a", "post_id": post.ID, "body": "hi",
	})
	requireStatus(t, w, http.StatusCreated)
	assert.Equal(t, "alice", decodeBody(t, w)["author"])

	// Duplicate reddit id.
	w = doRequest(t, r, http.MethodPost, "/api/comments", token, map[string]interface{}{
		"reddit_id": "t1_a", "post_id": post.ID, "body": "again",
	})
	requireStatus(t, w, http.StatusBadRequest)
	assert.Contains(t, decodeBody(t, w)["errors"], "reddit_id")
}

func TestCommentDetailEmbedsReplies(t *testing.T) {
	r := newTestRouter(t)

	post := models.Post{RedditID: "t3_a", Title: "thread"}
	require.NoError(t, db.DB.Create(&post).Error)

	root := models.Comment{RedditID: "t1_root", PostID: post.ID, Body: "**bold** claim", Author: "x"}
	require.NoError(t, db.DB.Create(&root).Error)
	reply := models.Comment{RedditID: "t1_reply", PostID: post.ID, ParentID: &root.ID, Body: "reply", Author: "y"}
	require.NoError(t, db.DB.Create(&reply).Error)
	// Only direct replies are embedded.
	deep := models.Comment{RedditID: "t1_deep", PostID: post.ID, ParentID: &reply.ID, Body: "deeper", Author: "z"}
	require.NoError(t, db.DB.Create(&deep).Error)

	w := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/comments/%d", root.ID), "", nil)
	requireStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	assert.Contains(t, body["body_html"], "<strong>bold</strong>")

	replies := body["replies"].([]interface{})
	require.Len(t, replies, 1)
	embedded := replies[0].(map[string]interface{})
	assert.Equal(t, "reply", embedded["body"])
	_, hasNested := embedded["replies"]
	assert.False(t, hasNested, "second-level replies are not expanded")

	// A leaf comment still carries an empty replies array.
	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/comments/%d", deep.ID), "", nil)
	requireStatus(t, w, http.StatusOK)
	assert.Len(t, decodeBody(t, w)["replies"], 0)
}

func TestCommentDeleteCascadesThroughAPI(t *testing.T) {
	r := newTestRouter(t)
	_, adminToken := createTestUser(t, "root", "admin", "Free")

	post := models.Post{RedditID: "t3_a", Title: "thread"}
	require.NoError(t, db.DB.Create(&post).Error)

	root := models.Comment{RedditID: "t1_root", PostID: post.ID, Body: "root", Author: "x"}
	require.NoError(t, db.DB.Create(&root).Error)
	reply := models.Comment{RedditID: "t1_reply", PostID: post.ID, ParentID: &root.ID, Body: "reply", Author: "y"}
	require.NoError(t, db.DB.Create(&reply).Error)

	w := doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/comments/%d", root.ID), adminToken, nil)
	requireStatus(t, w, http.StatusNoContent)

	var count int64
	db.DB.Model(&models.Comment{}).Count(&count)
	assert.EqualValues(t, 0, count)
}
