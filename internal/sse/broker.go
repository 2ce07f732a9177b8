// Package sse implements a Server-Sent Events broker for planner change notifications.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"
)

// Event represents an SSE event to broadcast.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Event types sent to clients.
const (
	TypeItemPrefix      = "item."
	TypeItemsChanged    = "items.changed"
	TypeSettingsChanged = "settings.changed"
)

type itemEventReq struct {
	action string
	id     int64
}

// event is item.<action> with the item id; listing-wide changes carry no id.
func (r itemEventReq) event() Event {
	data := map[string]int64{}
	if r.id != 0 {
		data["id"] = r.id
	}
	return Event{Type: TypeItemPrefix + r.action, Data: data}
}

// Broker manages SSE client connections and broadcasts events.
//
// A single event loop goroutine owns the client set and the throttle
// timestamp. Public methods talk to it over channels.
type Broker struct {
	refreshMin time.Duration

	subscribeCh   chan chan []byte
	unsubscribeCh chan chan []byte
	publishCh     chan Event
	itemEventCh   chan itemEventReq
	countReqCh    chan chan int

	stopCh  chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
}

// NewBroker creates a broker that sends at most one items.changed event per
// refreshThrottle interval.
func NewBroker(refreshThrottle time.Duration) *Broker {
	if refreshThrottle <= 0 {
		refreshThrottle = 2 * time.Second
	}

	b := &Broker{
		refreshMin:    refreshThrottle,
		subscribeCh:   make(chan chan []byte),
		unsubscribeCh: make(chan chan []byte),
		publishCh:     make(chan Event, 256),
		itemEventCh:   make(chan itemEventReq, 256),
		countReqCh:    make(chan chan int),
		stopCh:        make(chan struct{}),
		stopped:       make(chan struct{}),
	}

	go b.run()
	return b
}

// clients is the subscriber set. Only the run goroutine touches it.
type clients map[chan []byte]struct{}

// send drops the frame for subscribers whose buffer is full; a slow reader
// must not stall the others.
func (c clients) send(frame []byte) {
	for ch := range c {
		select {
		case ch <- frame:
		default:
		}
	}
}

func (c clients) closeAll() {
	for ch := range c {
		close(ch)
		delete(c, ch)
	}
}

// frame renders event in the text/event-stream wire format.
func frame(event Event) ([]byte, error) {
	payload, err := json.Marshal(event.Data)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event.Type, payload)), nil
}

func (b *Broker) run() {
	defer close(b.stopped)

	subs := clients{}
	var lastRefresh time.Time

	emit := func(event Event) {
		if f, err := frame(event); err == nil {
			subs.send(f)
		}
	}

	for {
		select {
		case <-b.stopCh:
			subs.closeAll()
			return

		case ch := <-b.subscribeCh:
			subs[ch] = struct{}{}

		case ch := <-b.unsubscribeCh:
			if _, ok := subs[ch]; ok {
				delete(subs, ch)
				close(ch)
			}

		case event := <-b.publishCh:
			emit(event)

		case req := <-b.itemEventCh:
			emit(req.event())
			// items.changed is leading-edge throttled; bursts of edits refresh once.
			if now := time.Now(); now.Sub(lastRefresh) >= b.refreshMin {
				lastRefresh = now
				emit(Event{Type: TypeItemsChanged, Data: map[string]string{}})
			}

		case resp := <-b.countReqCh:
			resp <- len(subs)
		}
	}
}

// Close stops the event loop and ends every open stream. It is safe to call twice.
func (b *Broker) Close() {
	if b.closed.CompareAndSwap(false, true) {
		close(b.stopCh)
	}
	<-b.stopped
}

// Subscribe registers a stream and returns the channel its frames arrive on.
// After Close the returned channel is already closed.
func (b *Broker) Subscribe() chan []byte {
	ch := make(chan []byte, 64)
	if b.closed.Load() {
		close(ch)
		return ch
	}

	select {
	case b.subscribeCh <- ch:
	case <-b.stopped:
		close(ch)
	}

	return ch
}

// Unsubscribe drops a stream registered with Subscribe.
func (b *Broker) Unsubscribe(ch chan []byte) {
	if b.closed.Load() {
		return
	}
	select {
	case b.unsubscribeCh <- ch:
	case <-b.stopped:
	}
}

// ClientCount reports how many streams are open.
func (b *Broker) ClientCount() int {
	if b.closed.Load() {
		return 0
	}

	resp := make(chan int, 1)
	select {
	case b.countReqCh <- resp:
	case <-b.stopped:
		return 0
	}

	select {
	case n := <-resp:
		return n
	case <-b.stopped:
		return 0
	}
}

// Publish queues event for every open stream.
func (b *Broker) Publish(event Event) {
	if b.closed.Load() {
		return
	}
	select {
	case b.publishCh <- event:
	case <-b.stopped:
	}
}

// PublishItemEvent publishes an item.<action> event and a throttled
// items.changed event. An id of 0 marks a change to a whole listing.
func (b *Broker) PublishItemEvent(action string, id int64) {
	if b.closed.Load() {
		return
	}
	select {
	case b.itemEventCh <- itemEventReq{action: action, id: id}:
	case <-b.stopped:
	}
}

// PublishSettingsEvent tells clients the calendar settings changed.
func (b *Broker) PublishSettingsEvent(settings any) {
	b.Publish(Event{Type: TypeSettingsChanged, Data: settings})
}

// KeepAlive is the interval of comment frames on an idle stream.
const KeepAlive = 30 * time.Second

// ServeHTTP streams events to one client until it disconnects or the broker closes.
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	ping := time.NewTicker(KeepAlive)
	defer ping.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ping.C:
			// A comment line keeps idle proxies from closing the stream.
			if _, err := w.Write([]byte(": ping\n\n")); err != nil {
				return
			}
			flusher.Flush()
		case msg, ok := <-ch:
			if !ok {
				return
			}
			_, _ = w.Write(msg)
			flusher.Flush()
		}
	}
}
