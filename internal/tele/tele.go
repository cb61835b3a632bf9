// Package tele reports kiosk state and forwards submissions to the
// operator side. Delivery is fire-and-forget: a failed send is
// returned for logging and dropped, the kiosk keeps no outbound queue.
package tele

import (
	"context"
	"sync"

	"github.com/moodbox/moodbox/log2"
)

type Config struct { //nolint:maligned
	Enable            bool   `hcl:"enable"`
	KioskId           int    `hcl:"kiosk_id"`
	MqttBroker        string `hcl:"mqtt_broker"`
	MqttPassword      string `hcl:"mqtt_password"`
	MqttLogDebug      bool   `hcl:"mqtt_log_debug"`
	TlsCaFile         string `hcl:"tls_ca_file"`
	NetworkTimeoutSec int    `hcl:"network_timeout_sec"`
	KeepaliveSec      int    `hcl:"keepalive_sec"`
}

type State uint8

const (
	StateInvalid State = iota
	StateBoot
	StateNominal
	StateProblem
)

func (s State) String() string {
	switch s {
	case StateBoot:
		return "Boot"
	case StateNominal:
		return "Nominal"
	case StateProblem:
		return "Problem"
	}
	return "Invalid"
}

// Teler is the kiosk-side telemetry client.
type Teler interface {
	Init(ctx context.Context, log *log2.Log, c Config) error
	Close()
	State(State)
	Error(error)
	// Submit delivers one check-in message. The returned error is
	// informational; callers must not retry or block on it.
	Submit(message string) error
}

func New() Teler { return &tele{} }

type noop struct{}

func (noop) Init(context.Context, *log2.Log, Config) error { return nil }
func (noop) Close()                                        {}
func (noop) State(State)                                   {}
func (noop) Error(error)                                   {}
func (noop) Submit(string) error                           { return nil }

func NewNoop() Teler { return noop{} }

// Mock records everything for tests.
type Mock struct {
	mu          sync.Mutex
	Submissions []string
	States      []State
	Errs        []error
	SubmitErr   error // returned by Submit when set
}

func NewMock() *Mock { return &Mock{} }

func (self *Mock) Init(context.Context, *log2.Log, Config) error { return nil }
func (self *Mock) Close()                                        {}

func (self *Mock) State(s State) {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.States = append(self.States, s)
}

func (self *Mock) Error(e error) {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.Errs = append(self.Errs, e)
}

func (self *Mock) Submit(message string) error {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.Submissions = append(self.Submissions, message)
	return self.SubmitErr
}

func (self *Mock) SubmitLog() []string {
	self.mu.Lock()
	defer self.mu.Unlock()
	return append([]string(nil), self.Submissions...)
}

func (self *Mock) ErrLog() []error {
	self.mu.Lock()
	defer self.mu.Unlock()
	return append([]error(nil), self.Errs...)
}

var _ Teler = &Mock{}
