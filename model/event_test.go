package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventTransition_AllowedPaths(t *testing.T) {
	tests := []struct {
		from string
		to   string
	}{
		{EventDraft, EventPublished},
		{EventDraft, EventCancelled},
		{EventPublished, EventPostponed},
		{EventPublished, EventCancelled},
		{EventPublished, EventCompleted},
		{EventPostponed, EventPublished},
		{EventPostponed, EventCancelled},
	}

	for _, test := range tests {
		event := &Event{Status: test.from}
		assert.NoError(t, event.Transition(test.to), "%s -> %s", test.from, test.to)
		assert.Equal(t, test.to, event.Status)
	}
}

func TestEventTransition_RejectedPaths(t *testing.T) {
	tests := []struct {
		from string
		to   string
	}{
		{EventDraft, EventCompleted},
		{EventDraft, EventPostponed},
		{EventCancelled, EventPublished},
		{EventCompleted, EventPublished},
		{EventCompleted, EventPostponed},
		{EventCancelled, EventDraft},
	}

	for _, test := range tests {
		event := &Event{Status: test.from}
		assert.Error(t, event.Transition(test.to), "%s -> %s", test.from, test.to)
		assert.Equal(t, test.from, event.Status)
	}
}

func TestEventParseDate(t *testing.T) {
	event := &Event{Date: "2026-09-14"}
	date, err := event.ParseDate()
	assert.NoError(t, err)
	assert.Equal(t, 2026, date.Year())
	assert.Equal(t, 14, date.Day())

	event = &Event{Date: "14/09/2026"}
	date, err = event.ParseDate()
	assert.NoError(t, err)
	assert.Equal(t, 14, date.Day())

	event = &Event{Date: ""}
	_, err = event.ParseDate()
	assert.Error(t, err)

	event = &Event{Date: "ngày mai"}
	_, err = event.ParseDate()
	assert.Error(t, err)
}
