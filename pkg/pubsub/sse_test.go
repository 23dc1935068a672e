package pubsub

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ritzau/graphsketch/pkg/model"
)

// collect drains whatever arrives on sub within wait
func collect(sub Subscription, wait time.Duration) []int {
	var versions []int
	for {
		select {
		case ev := <-sub.Events():
			versions = append(versions, ev.Version)
		case <-time.After(wait):
			return versions
		}
	}
}

func TestReplay(t *testing.T) {
	tests := []struct {
		name      string
		config    TopicConfig
		published int
		want      []int
	}{
		{"nothing kept", TopicConfig{}, 3, nil},
		{"last of three kept", TopicConfig{BufferSize: 3}, 5, []int{5}},
		{"all of three kept", TopicConfig{BufferSize: 3, ReplayAll: true}, 5, []int{3, 4, 5}},
		{"buffer larger than history", TopicConfig{BufferSize: 10, ReplayAll: true}, 2, []int{1, 2}},
		{"nothing published", TopicConfig{BufferSize: 1}, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := NewSSEPublisher()
			defer pub.Close()
			pub.ConfigureTopic(TopicGraph, tt.config)

			for i := 1; i <= tt.published; i++ {
				if err := pub.Publish(TopicGraph, EventSnapshot, model.Status{Vertices: i}); err != nil {
					t.Fatalf("Failed to publish %d: %v", i, err)
				}
			}

			sub, err := pub.Subscribe(context.Background(), TopicGraph)
			if err != nil {
				t.Fatalf("Failed to subscribe: %v", err)
			}
			defer sub.Close()

			got := collect(sub, 30*time.Millisecond)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected replayed versions %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Expected replayed versions %v, got %v", tt.want, got)
					break
				}
			}
		})
	}
}

func TestLiveEventsFollowReplay(t *testing.T) {
	pub := NewSSEPublisher()
	defer pub.Close()
	pub.ConfigureTopic(TopicGraph, TopicConfig{BufferSize: 1})

	pub.Publish(TopicGraph, EventSnapshot, model.Status{Vertices: 1})
	sub, err := pub.Subscribe(context.Background(), TopicGraph)
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}
	defer sub.Close()
	pub.Publish(TopicGraph, EventSnapshot, model.Status{Vertices: 2})

	got := collect(sub, 30*time.Millisecond)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("Expected replay then live event [1 2], got %v", got)
	}

	// Other topics do not leak into the subscription
	pub.Publish("other", EventSnapshot, nil)
	if extra := collect(sub, 30*time.Millisecond); len(extra) != 0 {
		t.Errorf("Received events from another topic: %v", extra)
	}
}

func TestReplayCarriesLatestSnapshot(t *testing.T) {
	pub := NewSSEPublisher()
	defer pub.Close()
	pub.ConfigureTopic(TopicGraph, TopicConfig{BufferSize: 1})

	for i := 1; i <= 2; i++ {
		snap := model.NewSnapshot()
		snap.Status = model.Status{Vertices: i, Components: i}
		if err := pub.Publish(TopicGraph, EventSnapshot, snap); err != nil {
			t.Fatalf("Failed to publish: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub, err := pub.Subscribe(ctx, TopicGraph)
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	select {
	case event := <-sub.Events():
		var snap model.Snapshot
		if err := json.Unmarshal(event.Data, &snap); err != nil {
			t.Fatalf("Failed to decode snapshot: %v", err)
		}
		if snap.Status.Vertices != 2 {
			t.Errorf("Expected latest snapshot with 2 vertices, got %d", snap.Status.Vertices)
		}
		if event.Type != EventSnapshot || event.Topic != TopicGraph {
			t.Errorf("Unexpected event header %s/%s", event.Topic, event.Type)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeout waiting for replayed snapshot")
	}
}

func TestContextCancelUnsubscribes(t *testing.T) {
	pub := NewSSEPublisher()
	defer pub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	if _, err := pub.Subscribe(ctx, TopicGraph); err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}
	if pub.Subscribers(TopicGraph) != 1 {
		t.Fatalf("Expected 1 subscriber, got %d", pub.Subscribers(TopicGraph))
	}

	cancel()
	deadline := time.Now().Add(time.Second)
	for pub.Subscribers(TopicGraph) != 0 {
		if time.Now().After(deadline) {
			t.Fatal("Subscription not removed after context cancellation")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestClosedPublisher(t *testing.T) {
	pub := NewSSEPublisher()
	sub, err := pub.Subscribe(context.Background(), TopicGraph)
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	pub.Close()

	if _, ok := <-sub.Events(); ok {
		t.Error("Expected events channel to be closed")
	}
	if err := pub.Publish(TopicGraph, EventSnapshot, nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed from Publish, got %v", err)
	}
	if _, err := pub.Subscribe(context.Background(), TopicGraph); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed from Subscribe, got %v", err)
	}
}

func TestWriteSSE(t *testing.T) {
	var buf bytes.Buffer
	event := Event{Topic: TopicGraph, Type: EventSnapshot, Data: json.RawMessage(`{"mode":"create"}`), Version: 7}

	if err := WriteSSE(&buf, event); err != nil {
		t.Fatalf("WriteSSE failed: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "event: graph_state\nid: 7\ndata: {") {
		t.Errorf("Unexpected SSE framing: %q", out)
	}
	if !strings.HasSuffix(out, "}\n\n") {
		t.Errorf("SSE message must end with a blank line: %q", out)
	}
	if !strings.Contains(out, `"data":{"mode":"create"}`) {
		t.Errorf("Payload missing from message: %q", out)
	}
}
