package events

import "testing"

func TestEmitterNotifiesSubscribers(t *testing.T) {
	emitter := New()

	var got []string
	emitter.Subscribe(TopicHistoryChanged, func(topic string) {
		got = append(got, topic)
	})

	emitter.Emit(TopicHistoryChanged)
	emitter.Emit(TopicMemoryChanged)

	if len(got) != 1 || got[0] != TopicHistoryChanged {
		t.Fatalf("expected one history notification, got %v", got)
	}
}

func TestEmitterUnsubscribeStopsDelivery(t *testing.T) {
	emitter := New()

	calls := 0
	unsubscribe := emitter.Subscribe(TopicMemoryChanged, func(string) { calls++ })

	emitter.Emit(TopicMemoryChanged)
	unsubscribe()
	emitter.Emit(TopicMemoryChanged)

	if calls != 1 {
		t.Fatalf("expected 1 call after unsubscribe, got %d", calls)
	}
}
