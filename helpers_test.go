package transmission

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// recordedRequest is one request as seen by a fake daemon.
type recordedRequest struct {
	SessionID     string
	Authorization string
	Accept        string
	ContentType   string
	Method        string
	Arguments     json.RawMessage
	HasArguments  bool
}

// reply is one scripted answer.
type reply struct {
	status    int
	sessionID string
	body      string
}

func challenge(token string) reply {
	return reply{status: http.StatusConflict, sessionID: token, body: "<h1>409: Conflict</h1>"}
}

func success(arguments string) reply {
	return reply{status: http.StatusOK, body: `{"result":"success","arguments":` + arguments + `}`}
}

func failure(result string) reply {
	return reply{status: http.StatusOK, body: `{"result":"` + result + `","arguments":{}}`}
}

// scriptedDaemon answers requests with replies in order. Once the script is
// exhausted the last reply is repeated.
type scriptedDaemon struct {
	*httptest.Server

	mu       sync.Mutex
	replies  []reply
	requests []recordedRequest
}

func newScriptedDaemon(t *testing.T, replies ...reply) *scriptedDaemon {
	t.Helper()
	d := &scriptedDaemon{replies: replies}
	d.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		rec := decodeRecorded(t, r)

		d.mu.Lock()
		d.requests = append(d.requests, rec)
		next := d.replies[0]
		if len(d.replies) > 1 {
			d.replies = d.replies[1:]
		}
		d.mu.Unlock()

		if next.sessionID != "" {
			w.Header().Set(SessionIDHeader, next.sessionID)
		}
		w.WriteHeader(next.status)
		_, _ = io.WriteString(w, next.body)
	}))
	t.Cleanup(d.Close)
	return d
}

func (d *scriptedDaemon) recorded() []recordedRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]recordedRequest, len(d.requests))
	copy(out, d.requests)
	return out
}

func decodeRecorded(t *testing.T, r *http.Request) recordedRequest {
	t.Helper()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		t.Errorf("Failed to read request body: %v", err)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Errorf("Request body is not JSON: %v (%s)", err, body)
	}
	var method string
	_ = json.Unmarshal(envelope["method"], &method)
	args, hasArgs := envelope["arguments"]

	return recordedRequest{
		SessionID:     r.Header.Get(SessionIDHeader),
		Authorization: r.Header.Get("Authorization"),
		Accept:        r.Header.Get("Accept"),
		ContentType:   r.Header.Get("Content-Type"),
		Method:        method,
		Arguments:     args,
		HasArguments:  hasArgs,
	}
}

// sessionDaemon behaves like the real daemon: any request without the
// current session id gets a 409 carrying it.
type sessionDaemon struct {
	*httptest.Server

	mu         sync.Mutex
	token      string
	challenges int
	served     int
}

func newSessionDaemon(t *testing.T, token string, arguments string) *sessionDaemon {
	t.Helper()
	d := &sessionDaemon{token: token}
	d.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d.mu.Lock()
		current := d.token
		if r.Header.Get(SessionIDHeader) != current {
			d.challenges++
			d.mu.Unlock()
			w.Header().Set(SessionIDHeader, current)
			w.WriteHeader(http.StatusConflict)
			return
		}
		d.served++
		d.mu.Unlock()
		_, _ = io.WriteString(w, `{"result":"success","arguments":`+arguments+`}`)
	}))
	t.Cleanup(d.Close)
	return d
}

func (d *sessionDaemon) rotate(token string) {
	d.mu.Lock()
	d.token = token
	d.mu.Unlock()
}

func (d *sessionDaemon) counts() (challenges, served int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.challenges, d.served
}

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	client, err := New(Config{URL: url, Username: "admin", Password: "secret"})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return client
}

func assertJSON(t *testing.T, got json.RawMessage, want string) {
	t.Helper()
	var gotValue, wantValue any
	if err := json.Unmarshal(got, &gotValue); err != nil {
		t.Fatalf("Invalid JSON %s: %v", got, err)
	}
	if err := json.Unmarshal([]byte(want), &wantValue); err != nil {
		t.Fatalf("Invalid expected JSON %s: %v", want, err)
	}
	gotBytes, _ := json.Marshal(gotValue)
	wantBytes, _ := json.Marshal(wantValue)
	if string(gotBytes) != string(wantBytes) {
		t.Errorf("Expected arguments %s, got %s", wantBytes, gotBytes)
	}
}
