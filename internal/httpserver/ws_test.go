package httpserver

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"github.com/robalobadob/wordsearch/internal/puzzle"
)

func (h *harness) dial(id, origin string) (*websocket.Conn, error) {
	url := "ws" + strings.TrimPrefix(h.ts.URL, "http") + "/puzzle/" + id + "/ws"
	return websocket.Dial(url, "", origin)
}

func roundTrip(t *testing.T, conn *websocket.Conn, msg gestureMsg) gestureReply {
	t.Helper()
	require.NoError(t, websocket.JSON.Send(conn, msg))
	var reply gestureReply
	require.NoError(t, websocket.JSON.Receive(conn, &reply))
	return reply
}

func TestGestureSocketSolvesPuzzle(t *testing.T) {
	h := newHarness(t)
	np := h.newPuzzle(h.client, newPuzzleReq{Seed: 42, Words: testWords})

	conn, err := h.dial(np.PuzzleID, h.ts.URL)
	require.NoError(t, err)
	defer conn.Close()

	var last gestureReply
	for _, w := range np.View.Words {
		hint := roundTrip(t, conn, gestureMsg{Type: "hint", Word: w.Word})
		require.NotNil(t, hint.Hint)
		require.True(t, hint.Hint.Found, w.Word)
		path := hint.Hint.Path

		reply := roundTrip(t, conn, gestureMsg{Type: "begin", Row: path[0].Row, Col: path[0].Col})
		require.True(t, reply.Changed)
		for _, at := range path[1:] {
			reply = roundTrip(t, conn, gestureMsg{Type: "extend", Row: at.Row, Col: at.Col})
			require.True(t, reply.Changed)
		}
		last = roundTrip(t, conn, gestureMsg{Type: "end"})
		require.NotNil(t, last.Result)
		assert.True(t, last.Result.Matched, w.Word)
	}
	assert.True(t, last.Result.Completed)
	assert.Equal(t, puzzle.CompletionMessage, last.View.Status)

	reply := roundTrip(t, conn, gestureMsg{Type: "shout"})
	assert.Equal(t, "unknown type", reply.Error)
}

func TestGestureSocketEndsGestureOnDisconnect(t *testing.T) {
	h := newHarness(t)
	np := h.newPuzzle(h.client, newPuzzleReq{Seed: 5})

	conn, err := h.dial(np.PuzzleID, h.ts.URL)
	require.NoError(t, err)
	reply := roundTrip(t, conn, gestureMsg{Type: "begin", Row: 2, Col: 2})
	require.True(t, reply.Changed)
	assert.Equal(t, puzzle.StateAnchored, reply.View.State)
	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool {
		var v puzzle.View
		h.call(h.client, http.MethodGet, "/puzzle/"+np.PuzzleID, nil, &v)
		return v.State == puzzle.StateIdle
	}, 2*time.Second, 20*time.Millisecond)
}

func TestGestureSocketRejectsForeignOrigin(t *testing.T) {
	h := newHarness(t)
	np := h.newPuzzle(h.client, newPuzzleReq{Seed: 5})

	_, err := h.dial(np.PuzzleID, "http://evil.example")
	assert.Error(t, err)

	_, err = h.dial("missing", h.ts.URL)
	assert.Error(t, err)
}

func TestGestureSocketLeavesForeignGestureOnDisconnect(t *testing.T) {
	h := newHarness(t)
	np := h.newPuzzle(h.client, newPuzzleReq{Seed: 5})

	var g gestureRes
	h.call(h.client, http.MethodPost, "/puzzle/"+np.PuzzleID+"/begin", cellReq{Row: 2, Col: 2}, &g)
	require.True(t, g.Changed)

	// a watcher connects, looks and leaves without ever beginning
	conn, err := h.dial(np.PuzzleID, h.ts.URL)
	require.NoError(t, err)
	reply := roundTrip(t, conn, gestureMsg{Type: "view"})
	assert.Equal(t, puzzle.StateAnchored, reply.View.State)
	reply = roundTrip(t, conn, gestureMsg{Type: "begin", Row: 0, Col: 0})
	assert.False(t, reply.Changed, "gesture already active")
	require.NoError(t, conn.Close())

	assert.Never(t, func() bool {
		var v puzzle.View
		h.call(h.client, http.MethodGet, "/puzzle/"+np.PuzzleID, nil, &v)
		return v.State != puzzle.StateAnchored
	}, 300*time.Millisecond, 20*time.Millisecond)

	h.call(h.client, http.MethodPost, "/puzzle/"+np.PuzzleID+"/extend", cellReq{Row: 2, Col: 3}, &g)
	assert.True(t, g.Changed, "REST gesture still usable")
}
