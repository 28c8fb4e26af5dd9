package queue

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEmail struct {
	recipientEmail string
	recipientName  string
	subject        string
	body           string
}

type fakeEmailLog struct {
	inserted []recordedEmail
}

func (f *fakeEmailLog) InsertSent(_ context.Context, recipientEmail, recipientName, subject, body string) error {
	f.inserted = append(f.inserted, recordedEmail{recipientEmail, recipientName, subject, body})
	return nil
}

func TestHandleMessageWritesEmailLog(t *testing.T) {
	ev := BookingConfirmedEvent{
		BookingID:    42,
		UserName:     "Ana Petrova",
		UserEmail:    "ana@example.com",
		HotelName:    "Seaside Resort",
		CheckInDate:  "2025-07-01",
		CheckOutDate: "2025-07-04",
		TotalCost:    450,
		ConfirmedAt:  "2025-06-20T10:00:00Z",
	}
	payload, err := json.Marshal(ev)
	require.NoError(t, err)

	logs := &fakeEmailLog{}
	require.NoError(t, handleMessage(payload, logs))

	require.Len(t, logs.inserted, 1)
	got := logs.inserted[0]
	assert.Equal(t, "ana@example.com", got.recipientEmail)
	assert.Equal(t, "Ana Petrova", got.recipientName)
	assert.Equal(t, "Booking #42 confirmed", got.subject)
	assert.Contains(t, got.body, "Seaside Resort")
	assert.Contains(t, got.body, "2025-07-01")
	assert.Contains(t, got.body, "450.00")
}

func TestHandleMessageRejectsGarbage(t *testing.T) {
	logs := &fakeEmailLog{}
	assert.Error(t, handleMessage([]byte("not json"), logs))
	assert.Empty(t, logs.inserted)
}
