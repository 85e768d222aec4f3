package sse

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishSubscribe(t *testing.T) {
	hub := NewHub()
	a, cancelA := hub.Subscribe(TopicAttendance)
	b, cancelB := hub.Subscribe(TopicAttendance)
	other, cancelOther := hub.Subscribe("other")
	defer cancelB()
	defer cancelOther()

	assert.Equal(t, 2, hub.SubscriberCount(TopicAttendance))

	hub.Publish(TopicAttendance, Event{Name: "ping", Data: 1})
	assert.Equal(t, "ping", (<-a).Name)
	assert.Equal(t, "ping", (<-b).Name)
	assert.Len(t, other, 0)

	cancelA()
	cancelA()
	_, open := <-a
	assert.False(t, open)
	assert.Equal(t, 1, hub.SubscriberCount(TopicAttendance))
}

func TestHub_DropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe(TopicAttendance)
	defer cancel()

	for i := 0; i < subscriberBuffer+5; i++ {
		hub.Publish(TopicAttendance, Event{Name: "tick", Data: i})
	}
	assert.Len(t, ch, subscriberBuffer)
	assert.Equal(t, 0, (<-ch).Data)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Event{Name: "attendance.checked_in", Data: map[string]string{"id": "r1"}}))
	assert.Equal(t, "event: attendance.checked_in\ndata: {\"id\":\"r1\"}\n\n", buf.String())
}
