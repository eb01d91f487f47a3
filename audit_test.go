package labelkit

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestChannelSinkDeliversEvents(t *testing.T) {
	sink := NewChannelSink(4)
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 4}, sink)
	defer d.Close()

	d.Emit(context.Background(), AuditEvent{EventType: AuditLogin, UserID: 1, Success: true})

	select {
	case event := <-sink.Events():
		if event.EventType != AuditLogin || event.UserID != 1 || !event.Success {
			t.Fatalf("unexpected event: %+v", event)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for audit event")
	}
}

func TestJSONWriterSinkWritesOneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), AuditEvent{EventType: AuditLogout, Success: true})
	sink.Emit(context.Background(), AuditEvent{EventType: AuditForcedLogout, Error: "401"})

	scanner := bufio.NewScanner(&buf)
	var types []string
	for scanner.Scan() {
		var event AuditEvent
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			t.Fatalf("invalid json line: %v", err)
		}
		types = append(types, event.EventType)
	}
	if len(types) != 2 || types[0] != AuditLogout || types[1] != AuditForcedLogout {
		t.Fatalf("unexpected event types: %v", types)
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	// A channel sink nobody drains yet, so the dispatch buffer saturates.
	sink := NewChannelSink(1)
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 1, DropIfFull: true}, sink)

	for i := 0; i < 64; i++ {
		d.Emit(context.Background(), AuditEvent{EventType: AuditLogin})
	}

	if d.Dropped() == 0 {
		t.Fatal("expected dropped events with saturated buffer")
	}

	// Unblock the delivery goroutine so Close can drain.
	go func() {
		for range sink.Events() {
		}
	}()
	d.Close()
}

func TestDispatcherDrainsOnClose(t *testing.T) {
	var buf bytes.Buffer
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 16}, NewJSONWriterSink(&buf))

	for i := 0; i < 8; i++ {
		d.Emit(context.Background(), AuditEvent{EventType: AuditLogin, UserID: int64(i)})
	}
	d.Close()

	scanner := bufio.NewScanner(&buf)
	lines := 0
	for scanner.Scan() {
		lines++
	}
	if lines != 8 {
		t.Fatalf("expected all 8 events flushed on close, got %d", lines)
	}
}

func TestDisabledDispatcherIsNil(t *testing.T) {
	d := newAuditDispatcher(AuditConfig{Enabled: false}, NoOpSink{})
	if d != nil {
		t.Fatal("disabled audit must yield a nil dispatcher")
	}
	// Nil receivers are safe.
	d.Emit(context.Background(), AuditEvent{})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("nil dispatcher must report zero drops")
	}
}
