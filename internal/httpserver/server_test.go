package httpserver

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordsearch/assets"
	"github.com/robalobadob/wordsearch/internal/config"
	"github.com/robalobadob/wordsearch/internal/db"
	"github.com/robalobadob/wordsearch/internal/puzzle"
	"github.com/robalobadob/wordsearch/internal/store"
)

var testWords = []string{"sun", "moon"}

type harness struct {
	t      *testing.T
	ts     *httptest.Server
	client *http.Client
	db     *sql.DB
	srv    *Server
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	sqlDB, err := db.OpenAndMigrate(filepath.Join(t.TempDir(), "app.db"), assets.Migrations())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	s := New(config.Default(), store.NewMemoryStore(), sqlDB, testWords)
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return &harness{t: t, ts: ts, client: newClient(t), db: sqlDB, srv: s}
}

func newClient(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

// call sends body as JSON and decodes the response into out (when non-nil).
func (h *harness) call(c *http.Client, method, path string, body, out any) int {
	h.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, h.ts.URL+path, &buf)
	require.NoError(h.t, err)
	req.Header.Set("Content-Type", "application/json")
	res, err := c.Do(req)
	require.NoError(h.t, err)
	defer res.Body.Close()
	if out != nil {
		require.NoError(h.t, json.NewDecoder(res.Body).Decode(out))
	}
	return res.StatusCode
}

func (h *harness) newPuzzle(c *http.Client, req newPuzzleReq) newPuzzleRes {
	h.t.Helper()
	var res newPuzzleRes
	require.Equal(h.t, http.StatusCreated, h.call(c, http.MethodPost, "/puzzle/new", req, &res))
	return res
}

// solve finds every listed word through the hint endpoint and traces it.
func (h *harness) solve(c *http.Client, id string, words []puzzle.WordView) endRes {
	h.t.Helper()
	var last endRes
	for i, w := range words {
		var hint hintRes
		require.Equal(h.t, http.StatusOK, h.call(c, http.MethodGet, "/puzzle/"+id+"/hint?word="+w.Word, nil, &hint))
		require.True(h.t, hint.Found, w.Word)
		assert.Equal(h.t, puzzle.HintHighlightMs, hint.HighlightMs)

		path := hint.Path
		if i%2 == 1 {
			// trace every other word backwards
			for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
				path[l], path[r] = path[r], path[l]
			}
		}
		var g gestureRes
		h.call(c, http.MethodPost, "/puzzle/"+id+"/begin", cellReq{Row: path[0].Row, Col: path[0].Col}, &g)
		require.True(h.t, g.Changed)
		for _, at := range path[1:] {
			h.call(c, http.MethodPost, "/puzzle/"+id+"/extend", cellReq{Row: at.Row, Col: at.Col}, &g)
			require.True(h.t, g.Changed)
		}
		require.Equal(h.t, http.StatusOK, h.call(c, http.MethodPost, "/puzzle/"+id+"/end", nil, &last))
		require.True(h.t, last.Result.Matched, w.Word)
	}
	return last
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	var body map[string]bool
	assert.Equal(t, http.StatusOK, h.call(h.client, http.MethodGet, "/health", nil, &body))
	assert.True(t, body["ok"])
}

func TestPuzzleFlowToCompletion(t *testing.T) {
	h := newHarness(t)
	np := h.newPuzzle(h.client, newPuzzleReq{Seed: 42, Words: []string{"sun", "moon"}})
	assert.Equal(t, int64(42), np.Seed)
	assert.Equal(t, 15, np.View.Size)
	require.Len(t, np.View.Words, 2)

	last := h.solve(h.client, np.PuzzleID, np.View.Words)
	assert.True(t, last.Result.Completed)
	assert.True(t, last.View.Completed)
	assert.Equal(t, puzzle.CompletionMessage, last.View.Status)
	assert.Equal(t, 2, last.View.Found)

	var status string
	var found int
	require.NoError(t, h.db.QueryRow(`SELECT status, words_found FROM puzzles WHERE id=?`, np.PuzzleID).Scan(&status, &found))
	assert.Equal(t, "completed", status)
	assert.Equal(t, 2, found)
}

func TestGestureNoiseIsNotAnError(t *testing.T) {
	h := newHarness(t)
	np := h.newPuzzle(h.client, newPuzzleReq{Seed: 7})

	var g gestureRes
	assert.Equal(t, http.StatusOK, h.call(h.client, http.MethodPost, "/puzzle/"+np.PuzzleID+"/extend", cellReq{Row: 1, Col: 1}, &g))
	assert.False(t, g.Changed, "extend while idle")

	h.call(h.client, http.MethodPost, "/puzzle/"+np.PuzzleID+"/begin", cellReq{Row: 0, Col: 0}, &g)
	require.True(t, g.Changed)
	h.call(h.client, http.MethodPost, "/puzzle/"+np.PuzzleID+"/extend", cellReq{Row: 5, Col: 5}, &g)
	assert.False(t, g.Changed)
	assert.Equal(t, puzzle.StateAnchored, g.View.State)
	assert.True(t, g.View.Cells[0][0].Selected)

	var end endRes
	h.call(h.client, http.MethodPost, "/puzzle/"+np.PuzzleID+"/end", nil, &end)
	assert.False(t, end.Result.Matched)
	assert.Equal(t, puzzle.StateIdle, end.View.State)
}

func TestNewPuzzleValidation(t *testing.T) {
	h := newHarness(t)
	cases := []struct {
		name string
		req  newPuzzleReq
	}{
		{"punctuation", newPuzzleReq{Words: []string{"sun-set"}}},
		{"too long", newPuzzleReq{Size: 5, Words: []string{"sunstation"}}},
		{"tiny grid", newPuzzleReq{Size: 2}},
		{"huge grid", newPuzzleReq{Size: 500}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var body map[string]string
			assert.Equal(t, http.StatusBadRequest, h.call(h.client, http.MethodPost, "/puzzle/new", tc.req, &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestUnknownPuzzle(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, http.StatusNotFound, h.call(h.client, http.MethodGet, "/puzzle/nope", nil, nil))
	assert.Equal(t, http.StatusNotFound, h.call(h.client, http.MethodGet, "/no/such/route", nil, nil))
}

func TestHintRequiresWord(t *testing.T) {
	h := newHarness(t)
	np := h.newPuzzle(h.client, newPuzzleReq{Seed: 3})
	assert.Equal(t, http.StatusBadRequest, h.call(h.client, http.MethodGet, "/puzzle/"+np.PuzzleID+"/hint", nil, nil))

	var hint hintRes
	h.call(h.client, http.MethodGet, "/puzzle/"+np.PuzzleID+"/hint?word=zzzzzzzzzzzzzzz", nil, &hint)
	assert.False(t, hint.Found)
}

func TestAuthAndStats(t *testing.T) {
	h := newHarness(t)
	creds := credentials{Username: "grayson", Password: "correct horse"}

	// guest history is claimed on signup
	guest := h.newPuzzle(h.client, newPuzzleReq{Seed: 1})
	assert.Equal(t, http.StatusCreated, h.call(h.client, http.MethodPost, "/auth/signup", creds, nil))
	assert.Equal(t, http.StatusConflict, h.call(newClient(t), http.MethodPost, "/auth/signup", creds, nil))

	var me authUser
	require.Equal(t, http.StatusOK, h.call(h.client, http.MethodGet, "/auth/me", nil, &me))
	assert.Equal(t, "grayson", me.Username)

	np := h.newPuzzle(h.client, newPuzzleReq{Seed: 2, Words: testWords})
	h.solve(h.client, np.PuzzleID, np.View.Words)

	var stats map[string]any
	require.Equal(t, http.StatusOK, h.call(h.client, http.MethodGet, "/stats/me", nil, &stats))
	assert.EqualValues(t, 1, stats["puzzlesPlayed"])
	assert.EqualValues(t, 1, stats["puzzlesCompleted"])

	var mine []map[string]any
	require.Equal(t, http.StatusOK, h.call(h.client, http.MethodGet, "/puzzles/mine", nil, &mine))
	ids := []any{}
	for _, m := range mine {
		ids = append(ids, m["id"])
	}
	assert.ElementsMatch(t, []any{guest.PuzzleID, np.PuzzleID}, ids)

	h.call(h.client, http.MethodPost, "/auth/logout", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, h.call(h.client, http.MethodGet, "/auth/me", nil, nil))

	bad := credentials{Username: "grayson", Password: "wrong password"}
	assert.Equal(t, http.StatusUnauthorized, h.call(h.client, http.MethodPost, "/auth/login", bad, nil))
	assert.Equal(t, http.StatusOK, h.call(h.client, http.MethodPost, "/auth/login", creds, nil))
	assert.Equal(t, http.StatusOK, h.call(h.client, http.MethodGet, "/auth/me", nil, nil))
}

func TestSignupValidation(t *testing.T) {
	assert.Error(t, validateSignup("ab", "longenough"))
	assert.Error(t, validateSignup("bad name", "longenough"))
	assert.Error(t, validateSignup("goodname", "short"))
	assert.NoError(t, validateSignup("good_name1", "longenough"))
}

func TestDailyOncePerDay(t *testing.T) {
	h := newHarness(t)

	var first, again dailyNewRes
	require.Equal(t, http.StatusCreated, h.call(h.client, http.MethodPost, "/daily/new", nil, &first))
	require.NotEmpty(t, first.PuzzleID)
	require.NotNil(t, first.View)
	require.Equal(t, http.StatusOK, h.call(h.client, http.MethodPost, "/daily/new", nil, &again))
	assert.Equal(t, first.PuzzleID, again.PuzzleID, "session reused")

	// another player gets the same grid
	var other dailyNewRes
	require.Equal(t, http.StatusCreated, h.call(newClient(t), http.MethodPost, "/daily/new", nil, &other))
	assert.NotEqual(t, first.PuzzleID, other.PuzzleID)
	for r := range first.View.Cells {
		for c := range first.View.Cells[r] {
			assert.Equal(t, first.View.Cells[r][c].Letter, other.View.Cells[r][c].Letter)
		}
	}

	h.solve(h.client, first.PuzzleID, first.View.Words)

	var lb lbRes
	require.Equal(t, http.StatusOK, h.call(h.client, http.MethodGet, "/daily/leaderboard", nil, &lb))
	assert.Equal(t, first.Date, lb.Date)
	assert.Len(t, lb.Top, 1)

	var done dailyNewRes
	require.Equal(t, http.StatusOK, h.call(h.client, http.MethodPost, "/daily/new", nil, &done))
	assert.True(t, done.Played)
	assert.Empty(t, done.PuzzleID)
}

func (h *harness) dailyEntries() map[string]dailyEntry {
	d := h.srv.dailies
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]dailyEntry, len(d.sessions))
	for k, v := range d.sessions {
		out[k] = v
	}
	return out
}

func TestPruneForgetsStaleDailyEntries(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	var today dailyNewRes
	require.Equal(t, http.StatusCreated, h.call(h.client, http.MethodPost, "/daily/new", nil, &today))
	h.srv.dailies.mu.Lock()
	h.srv.dailies.sessions["someone|2000-01-01"] = dailyEntry{PuzzleID: today.PuzzleID, Date: "2000-01-01"}
	h.srv.dailies.mu.Unlock()

	h.srv.prune(ctx)
	entries := h.dailyEntries()
	require.Len(t, entries, 1, "past dates are dropped, live entries stay")
	for _, e := range entries {
		assert.Equal(t, today.PuzzleID, e.PuzzleID)
		assert.Equal(t, today.Date, e.Date)
	}

	// evict every puzzle; the index follows
	h.srv.store.Prune(ctx, -time.Minute)
	assert.Equal(t, 1, h.srv.dailies.prune(ctx))
	assert.Empty(t, h.dailyEntries())

	var again dailyNewRes
	require.Equal(t, http.StatusCreated, h.call(h.client, http.MethodPost, "/daily/new", nil, &again))
	assert.NotEqual(t, today.PuzzleID, again.PuzzleID)
}
