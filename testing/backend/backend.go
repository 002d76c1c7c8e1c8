// Package backend is a scripted stand-in for the game backend used by client tests.
package backend

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/julienschmidt/httprouter"
)

type Endpoint string

const (
	HighScores   Endpoint = "high_scores"
	StartSession Endpoint = "session"
	GetGame      Endpoint = "game:get"
	MakeMove     Endpoint = "game:move"
	NewGame      Endpoint = "game:new"
	Login        Endpoint = "login"
)

// Response is what an endpoint answers. Drop closes the connection without answering.
type Response struct {
	Status int
	Body   any
	Drop   bool
}

// Request is a recorded call.
type Request struct {
	Endpoint      Endpoint
	Method        string
	Query         string
	Authorization string
	Cookie        string
	RequestID     string
	Params        httprouter.Params
	Body          []byte
}

type Backend struct {
	*httptest.Server

	mu        sync.Mutex
	responses map[Endpoint]Response
	requests  []Request
	hold      map[Endpoint]*gate
	arrived   map[Endpoint]chan struct{}
}

type gate struct {
	ch   chan struct{}
	once sync.Once
}

func (that *gate) open() {
	that.once.Do(func() { close(that.ch) })
}

func New(t *testing.T) *Backend {
	t.Helper()

	backend := &Backend{
		responses: make(map[Endpoint]Response),
		hold:      make(map[Endpoint]*gate),
		arrived:   make(map[Endpoint]chan struct{}),
	}

	router := httprouter.New()
	router.GET("/high_scores", backend.handle(HighScores))
	router.GET("/session", backend.handle(StartSession))
	router.GET("/session/:session/game", backend.handle(NewGame))
	router.GET("/session/:session/game/:game", backend.handle(GetGame))
	router.POST("/session/:session/game/:game", backend.handle(MakeMove))
	router.POST("/login", backend.handle(Login))

	backend.Server = httptest.NewServer(router)
	t.Cleanup(func() {
		backend.releaseAll()
		backend.Close()
	})

	return backend
}

// Respond sets the answer of an endpoint.
func (that *Backend) Respond(endpoint Endpoint, status int, body any) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.responses[endpoint] = Response{Status: status, Body: body}
}

// Drop makes an endpoint close the connection without a response.
func (that *Backend) Drop(endpoint Endpoint) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.responses[endpoint] = Response{Drop: true}
}

// Hold blocks requests to endpoint until the returned release is called. The arrived
// channel receives once per held request.
func (that *Backend) Hold(endpoint Endpoint) (release func(), arrived <-chan struct{}) {
	that.mu.Lock()
	defer that.mu.Unlock()

	held := &gate{ch: make(chan struct{})}
	signal := make(chan struct{}, 16)
	that.hold[endpoint] = held
	that.arrived[endpoint] = signal

	return held.open, signal
}

// Requests returns the recorded calls to endpoint.
func (that *Backend) Requests(endpoint Endpoint) []Request {
	that.mu.Lock()
	defer that.mu.Unlock()

	var found []Request
	for _, req := range that.requests {
		if req.Endpoint == endpoint {
			found = append(found, req)
		}
	}

	return found
}

func (that *Backend) handle(endpoint Endpoint) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
		body, _ := io.ReadAll(r.Body)

		that.mu.Lock()
		that.requests = append(that.requests, Request{
			Endpoint:      endpoint,
			Method:        r.Method,
			Query:         r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			Cookie:        r.Header.Get("Cookie"),
			RequestID:     r.Header.Get("X-Request-ID"),
			Params:        params,
			Body:          body,
		})
		resp, ok := that.responses[endpoint]
		held := that.hold[endpoint]
		signal := that.arrived[endpoint]
		that.mu.Unlock()

		if held != nil {
			signal <- struct{}{}
			<-held.ch
		}

		if !ok {
			http.NotFound(w, r)
			return
		}

		if resp.Drop {
			if conn, _, err := w.(http.Hijacker).Hijack(); err == nil {
				_ = conn.Close()
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.Status)
		_ = json.NewEncoder(w).Encode(resp.Body)
	}
}

func (that *Backend) releaseAll() {
	that.mu.Lock()
	defer that.mu.Unlock()

	for _, held := range that.hold {
		held.open()
	}
}
