package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onlyCommentID(t *testing.T, f *fixture) int {
	t.Helper()
	require.Len(t, f.mem.Comments, 1)
	for id := range f.mem.Comments {
		return id
	}
	return 0
}

func TestKnowledgeBasePages(t *testing.T) {
	f := newFixture(t)
	_, c := f.signup("alice@example.com", "alice")
	id := f.mem.AddCategory("Sleep & Recovery")

	rec := f.get("/knowledge-base", c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sleep &amp; Recovery")

	assert.Equal(t, http.StatusOK, f.get(fmt.Sprintf("/knowledge-base/%d", id), c).Code)
	assert.Equal(t, http.StatusNotFound, f.get("/knowledge-base/999", c).Code)
	assert.Equal(t, http.StatusNotFound, f.get("/knowledge-base/abc", c).Code)
}

func TestCommentLifecycle(t *testing.T) {
	f := newFixture(t)
	_, author := f.signup("alice@example.com", "alice")
	_, reader := f.signup("bob@example.com", "bob")
	catID := f.mem.AddCategory("Nutrition Basics")
	catURL := fmt.Sprintf("/knowledge-base/%d", catID)

	rec := f.postForm(catURL+"/comments", url.Values{"content": {"  Protein at every meal  "}}, author)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, catURL, rec.Header().Get("Location"))
	commentID := onlyCommentID(t, f)
	assert.Equal(t, "Protein at every meal", f.mem.Comments[commentID].Content)

	page := f.get(catURL, reader)
	assert.Contains(t, page.Body.String(), "alice")
	assert.NotContains(t, page.Body.String(), fmt.Sprintf("/knowledge-base/comments/%d/delete", commentID))

	like := fmt.Sprintf("/knowledge-base/comments/%d/like", commentID)
	for i := 0; i < 2; i++ {
		rec = f.postForm(like, url.Values{}, reader)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, catURL, rec.Header().Get("Location"))
	}
	assert.Equal(t, 2, f.mem.Comments[commentID].Likes)

	del := fmt.Sprintf("/knowledge-base/comments/%d/delete", commentID)
	assert.Equal(t, http.StatusForbidden, f.postForm(del, url.Values{}, reader).Code)
	assert.Contains(t, f.mem.Comments, commentID)

	rec = f.postForm(del, url.Values{}, author)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, f.mem.Comments)
	assert.Equal(t, http.StatusNotFound, f.postForm(del, url.Values{}, author).Code)
	assert.Equal(t, http.StatusNotFound, f.postForm(like, url.Values{}, author).Code)
}

func TestEmptyCommentRerenders(t *testing.T) {
	f := newFixture(t)
	_, c := f.signup("alice@example.com", "alice")
	catID := f.mem.AddCategory("Hydration")

	rec := f.postForm(fmt.Sprintf("/knowledge-base/%d/comments", catID), url.Values{"content": {"   "}}, c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Comment cannot be empty")
	assert.Empty(t, f.mem.Comments)

	rec = f.postForm("/knowledge-base/999/comments", url.Values{"content": {"hello"}}, c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
