package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu            sync.Mutex
	requestCount  map[string]int64
	errorCount    map[string]int64
	inboundCount  map[string]int64
	deliveryOK    int64
	deliveryFail  int64
	snapshotOK    int64
	snapshotFail  int64
}

// Counters is a point-in-time copy of the tracked values.
type Counters struct {
	Inbound          map[string]int64 `json:"inbound"`
	DeliveredOK      int64            `json:"delivered_ok"`
	DeliveredFailed  int64            `json:"delivered_failed"`
	SnapshotsOK      int64            `json:"snapshots_ok"`
	SnapshotsFailed  int64            `json:"snapshots_failed"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
		inboundCount: make(map[string]int64),
	}
}

// RecordRequest increments counters for HTTP requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments HTTP error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordInbound counts an accepted user submission by payload kind.
func (m *Metrics) RecordInbound(kind string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inboundCount[kind]++
}

// RecordDelivery counts one outbound notification attempt.
func (m *Metrics) RecordDelivery(ok bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if ok {
		m.deliveryOK++
	} else {
		m.deliveryFail++
	}
}

// RecordSnapshot counts one snapshot write attempt.
func (m *Metrics) RecordSnapshot(ok bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if ok {
		m.snapshotOK++
	} else {
		m.snapshotFail++
	}
}

// Snapshot copies the bot-level counters for the ops surface.
func (m *Metrics) Snapshot() Counters {
	if m == nil {
		return Counters{Inbound: map[string]int64{}}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	inbound := make(map[string]int64, len(m.inboundCount))
	for k, v := range m.inboundCount {
		inbound[k] = v
	}
	return Counters{
		Inbound:         inbound,
		DeliveredOK:     m.deliveryOK,
		DeliveredFailed: m.deliveryFail,
		SnapshotsOK:     m.snapshotOK,
		SnapshotsFailed: m.snapshotFail,
	}
}
