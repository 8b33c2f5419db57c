package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
)

// newTestServer builds a Server with a fresh registry so metrics do not
// collide across tests.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s, err := New(&Config{Registry: prometheus.NewRegistry()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) (*http.Response, []byte) {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("Post(%s) error = %v", url, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	return resp, raw
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	postJSON(t, ts.URL+"/v1/query", queryRequest{HTML: "<p>x</p>", Selector: "p"})

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(raw), "dombili_queries_total") {
		t.Error("metrics output missing dombili_queries_total")
	}
}

func TestHandleQuery(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name       string
		req        queryRequest
		wantStatus int
		wantCount  int
		wantText   string
	}{
		{
			name:       "matches",
			req:        queryRequest{HTML: `<ul><li>a</li><li class="x">b</li></ul>`, Selector: "li"},
			wantStatus: http.StatusOK,
			wantCount:  2,
			wantText:   "a",
		},
		{
			name:       "class selector",
			req:        queryRequest{HTML: `<ul><li>a</li><li class="x">b</li></ul>`, Selector: "li.x"},
			wantStatus: http.StatusOK,
			wantCount:  1,
			wantText:   "b",
		},
		{
			name:       "no matches",
			req:        queryRequest{HTML: "<p>x</p>", Selector: "video"},
			wantStatus: http.StatusOK,
			wantCount:  0,
		},
		{
			name:       "missing selector",
			req:        queryRequest{HTML: "<p>x</p>"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := postJSON(t, ts.URL+"/v1/query", tt.req)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", resp.StatusCode, tt.wantStatus, raw)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var got queryResponse
			if err := json.Unmarshal(raw, &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if got.Count != tt.wantCount {
				t.Errorf("count = %d, want %d", got.Count, tt.wantCount)
			}
			if got.Matches == nil {
				t.Error("matches is null, want array")
			}
			if tt.wantText != "" && got.Matches[0].Text != tt.wantText {
				t.Errorf("matches[0].text = %q, want %q", got.Matches[0].Text, tt.wantText)
			}
		})
	}
}

func TestHandleQueryInvalidJSON(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/v1/query", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestHandleMutate(t *testing.T) {
	ts := newTestServer(t)

	t.Run("applies ops", func(t *testing.T) {
		resp, raw := postJSON(t, ts.URL+"/v1/mutate", mutateRequest{
			HTML: `<div id="d"><span class="ad">x</span><p>keep</p></div>`,
			Ops: []mutationOp{
				{Op: "remove", Selector: ".ad"},
				{Op: "set_attr", Selector: "#d", Name: "data-clean", Value: "1"},
			},
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d: %s", resp.StatusCode, raw)
		}
		var got mutateResponse
		if err := json.Unmarshal(raw, &got); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if got.Applied != 2 {
			t.Errorf("applied = %d, want 2", got.Applied)
		}
		if strings.Contains(got.HTML, "ad") {
			t.Errorf("result %q still contains removed node", got.HTML)
		}
		if !strings.Contains(got.HTML, `data-clean="1"`) {
			t.Errorf("result %q missing set attribute", got.HTML)
		}
	})

	t.Run("unknown op", func(t *testing.T) {
		resp, _ := postJSON(t, ts.URL+"/v1/mutate", mutateRequest{
			HTML: "<p>x</p>",
			Ops:  []mutationOp{{Op: "explode", Selector: "p"}},
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
		}
	})

	t.Run("no ops", func(t *testing.T) {
		resp, _ := postJSON(t, ts.URL+"/v1/mutate", mutateRequest{HTML: "<p>x</p>"})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
		}
	})
}

func TestBodyTooLarge(t *testing.T) {
	s, err := New(&Config{Registry: prometheus.NewRegistry(), MaxBodyBytes: 64})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, _ := postJSON(t, ts.URL+"/v1/query", queryRequest{
		HTML:     strings.Repeat("<p>x</p>", 100),
		Selector: "p",
	})
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusRequestEntityTooLarge)
	}
}

func TestSession(t *testing.T) {
	ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/session"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()
	defer resp.Body.Close()

	roundTrip := func(cmd sessionCommand) sessionReply {
		t.Helper()
		if err := conn.WriteJSON(cmd); err != nil {
			t.Fatalf("WriteJSON() error = %v", err)
		}
		var reply sessionReply
		if err := conn.ReadJSON(&reply); err != nil {
			t.Fatalf("ReadJSON() error = %v", err)
		}
		if reply.ID != cmd.ID {
			t.Fatalf("reply id = %d, want %d", reply.ID, cmd.ID)
		}
		return reply
	}

	if reply := roundTrip(sessionCommand{ID: 1, Cmd: "query", Selector: "p"}); reply.OK {
		t.Error("query before load succeeded, want error")
	}

	if reply := roundTrip(sessionCommand{ID: 2, Cmd: "load", HTML: `<ul><li>a</li><li>b</li></ul>`}); !reply.OK {
		t.Fatalf("load failed: %s", reply.Error)
	}

	reply := roundTrip(sessionCommand{ID: 3, Cmd: "query", Selector: "li"})
	if !reply.OK || reply.Count != 2 {
		t.Errorf("query: ok=%v count=%d, want ok count=2", reply.OK, reply.Count)
	}

	reply = roundTrip(sessionCommand{ID: 4, Cmd: "mutate", Ops: []mutationOp{
		{Op: "append", Selector: "ul", Markup: "<li>c</li>"},
	}})
	if !reply.OK || reply.Applied != 1 {
		t.Errorf("mutate: ok=%v applied=%d, want ok applied=1", reply.OK, reply.Applied)
	}

	reply = roundTrip(sessionCommand{ID: 5, Cmd: "render"})
	if !reply.OK || !strings.Contains(reply.HTML, "<li>c</li>") {
		t.Errorf("render: ok=%v html=%q, want appended item present", reply.OK, reply.HTML)
	}

	if reply := roundTrip(sessionCommand{ID: 6, Cmd: "bogus"}); reply.OK {
		t.Error("unknown command succeeded, want error")
	}

	if reply := roundTrip(sessionCommand{ID: 7, Cmd: "close"}); !reply.OK {
		t.Errorf("close failed: %s", reply.Error)
	}
}
