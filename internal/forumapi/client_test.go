package forumapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/mark3labs/chanforum/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", "secret", 2*time.Second)
}

func TestSearchChannels_DecodesCandidates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, searchPath, r.URL.Path)
		assert.Equal(t, "go lang", r.URL.Query().Get("handle"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"id":"c1","display_name":"Gophers","subscriber_count":25000}]`))
	})

	got, err := c.SearchChannels(context.Background(), "go lang")
	require.NoError(t, err)
	assert.Equal(t, []wizard.Candidate{{ID: "c1", DisplayName: "Gophers", SubscriberCount: 25000}}, got)
}

func TestSearchChannels_EmptyArrayIsNotRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	got, err := c.SearchChannels(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchChannels_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"null body", http.StatusOK, "null"},
		{"empty body", http.StatusOK, ""},
		{"quota exceeded", http.StatusTooManyRequests, `{"error":"quota"}`},
		{"bad handle", http.StatusBadRequest, `{"error":"invalid handle"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := c.SearchChannels(context.Background(), "xx")
			require.Error(t, err)
			assert.ErrorIs(t, err, wizard.ErrRejected)
		})
	}
}

func TestSearchChannels_ServerErrorIsTransport(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.SearchChannels(context.Background(), "xx")
	require.Error(t, err)
	assert.NotErrorIs(t, err, wizard.ErrRejected)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.Code)
	assert.Equal(t, "boom", se.Body)
}

func TestStatusError_BodyCutOnRuneBoundary(t *testing.T) {
	body := "a" + strings.Repeat("é", 400)
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(body))
	})

	_, err := c.ListBoards(context.Background())

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.True(t, utf8.ValidString(se.Body))
	assert.Len(t, se.Body, maxErrorBody-1)
	assert.True(t, strings.HasPrefix(body, se.Body))
}

func TestCreateForum_SendsChannelID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, boardsPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "c1", body["channel_id"])
		w.WriteHeader(http.StatusCreated)
	})

	_, err := c.CreateForum(context.Background(), "c1")
	require.NoError(t, err)
}

func TestCreateForum_StatusMapping(t *testing.T) {
	cases := []struct {
		status   int
		rejected bool
	}{
		{http.StatusConflict, true},
		{http.StatusNotFound, true},
		{http.StatusBadRequest, true},
		{http.StatusUnauthorized, false},
		{http.StatusBadGateway, false},
	}

	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			})
			_, err := c.CreateForum(context.Background(), "c1")
			require.Error(t, err)
			assert.Equal(t, tc.rejected, isRejected(err))
		})
	}
}

func TestCreateForum_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, "", time.Second)
	_, err := c.CreateForum(context.Background(), "c1")
	require.Error(t, err)
	assert.False(t, isRejected(err))
}

func TestListBoards_DerivesSlug(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":"b1","name":"Go Gophers Daily","channel_id":"c1","subscribers":12000},
			{"id":"b2","name":"Rust","channel_id":"c2","subscribers":50000,"slug":"rustaceans"}
		]`))
	})

	boards, err := c.ListBoards(context.Background())
	require.NoError(t, err)
	require.Len(t, boards, 2)
	assert.Equal(t, "go-gophers-daily", boards[0].Slug)
	assert.Equal(t, "rustaceans", boards[1].Slug)
}

func TestListBoards_NullIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})

	boards, err := c.ListBoards(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, boards)
	assert.Empty(t, boards)
}

func isRejected(err error) bool {
	return errors.Is(err, wizard.ErrRejected)
}
