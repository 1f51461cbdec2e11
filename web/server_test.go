package web

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uncertainty-go/origerr"
)

func testRecords() []origerr.Record {
	return []origerr.Record{
		{EventID: "ev1", Orid: 1, Smajax: 12.5, Sminax: 4, Strike: 30},
		{EventID: "ev2", Orid: 2, Smajax: math.Inf(1)},
		{EventID: "ev3", Orid: 3, Smajax: 7, Sminax: 7},
	}
}

func TestPublishSkipsUnencodable(t *testing.T) {
	s := NewServer()
	assert.Equal(t, 2, s.Publish(testRecords()))
}

func TestOrigerrEndpoints(t *testing.T) {
	s := NewServer()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/origerr")
	require.NoError(t, err)
	var empty []origerr.Record
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&empty))
	resp.Body.Close()
	assert.Empty(t, empty)

	s.Publish(testRecords())

	tests := []struct {
		path   string
		status int
		event  string
	}{
		{"/origerr/ev1", http.StatusOK, "ev1"},
		{"/origerr/ev3", http.StatusOK, "ev3"},
		{"/origerr/ev2", http.StatusNotFound, ""},
		{"/origerr/nope", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, tt.status, resp.StatusCode)
			if tt.status != http.StatusOK {
				return
			}
			var r origerr.Record
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&r))
			assert.Equal(t, tt.event, r.EventID)
		})
	}

	resp, err = http.Get(ts.URL + "/origerr")
	require.NoError(t, err)
	defer resp.Body.Close()
	var all []origerr.Record
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	require.Len(t, all, 2)
	assert.Equal(t, "ev1", all[0].EventID)
	assert.Equal(t, "ev3", all[1].EventID)
	assert.Equal(t, 12.5, all[0].Smajax)
}

func TestWebsocketSnapshotAndBroadcast(t *testing.T) {
	s := NewServer()
	s.Publish(testRecords())
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() origerr.Record {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		var r origerr.Record
		require.NoError(t, json.Unmarshal(msg, &r))
		return r
	}

	assert.Equal(t, "ev1", read().EventID)
	assert.Equal(t, "ev3", read().EventID)

	b, err := json.Marshal(origerr.Record{EventID: "ev4"})
	require.NoError(t, err)
	s.Hub.Broadcast(b)
	assert.Equal(t, "ev4", read().EventID)
}
