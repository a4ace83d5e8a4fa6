package transport

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brson/muddy2/midi"
	"github.com/brson/muddy2/miditest"
)

func TestPump_DecodesFromEOFTerminatedReader(t *testing.T) {
	// NoteOn ch0, then a second NoteOn under running status whose data
	// bytes are interrupted by a Real-Time byte.
	wire := []byte{0x90, 60, 100, 0x3C, 0xF8, 0x40}

	p := midi.NewParser()
	out := make(chan midi.Message, 10)
	anomalies := make(chan Anomaly, 10)

	err := Pump(context.Background(), bytes.NewReader(wire), p, out, anomalies)
	require.NoError(t, err)
	close(out)
	close(anomalies)

	var messages []midi.Message
	for m := range out {
		messages = append(messages, m)
	}
	require.Len(t, messages, 3)

	noteOn := messages[0].(midi.ChannelMessage)
	assert.Equal(t, uint8(0), noteOn.Channel.Value())

	_, ok := noteOn.Body.(midi.NoteOn)
	assert.True(t, ok)

	rt, ok := messages[1].(midi.SystemRealTimeMessage)
	require.True(t, ok)
	assert.Equal(t, byte(0xF8), rt.Status)

	secondNoteOn := messages[2].(midi.ChannelMessage)
	_, ok = secondNoteOn.Body.(midi.NoteOn)
	assert.True(t, ok, "running status should resume the NoteOn under channel 0")

	var anomalyList []Anomaly
	for a := range anomalies {
		anomalyList = append(anomalyList, a)
	}
	assert.Empty(t, anomalyList)
}

func TestPump_SurfacesAnomalies(t *testing.T) {
	// A stray data byte with no running status, then a clean NoteOn.
	wire := []byte{0x45, 0x90, 60, 100}

	p := midi.NewParser()
	out := make(chan midi.Message, 10)
	anomalies := make(chan Anomaly, 10)

	err := Pump(context.Background(), bytes.NewReader(wire), p, out, anomalies)
	require.NoError(t, err)
	close(out)
	close(anomalies)

	var anomalyList []Anomaly
	for a := range anomalies {
		anomalyList = append(anomalyList, a)
	}
	require.Len(t, anomalyList, 1)
	assert.Equal(t, midi.OutcomeUnexpectedDataByte, anomalyList[0].Kind)

	var messages []midi.Message
	for m := range out {
		messages = append(messages, m)
	}
	require.Len(t, messages, 1)
}

func TestPump_StopsOnContextCancel(t *testing.T) {
	r, w := io.Pipe()
	defer r.Close()

	p := midi.NewParser()
	out := make(chan midi.Message)
	anomalies := make(chan Anomaly)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Pump(ctx, r, p, out, anomalies)
	}()

	cancel()
	w.Close()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Pump did not return after context cancellation")
	}
}

func TestPump_FragmentedOverPty(t *testing.T) {
	h, err := miditest.Open()
	require.NoError(t, err)
	defer h.Close()

	wire := []byte{0x90, 60, 100, 0x80, 60, 0}

	p := midi.NewParser()
	out := make(chan midi.Message, 10)
	anomalies := make(chan Anomaly, 10)

	done := make(chan error, 1)
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		done <- Pump(ctx, h.Master, p, out, anomalies)
	}()

	require.NoError(t, h.FeedFragments(wire, []int{1, 1, 1, 1, 1, 1}, 5*time.Millisecond))

	var messages []midi.Message
	for len(messages) < 2 {
		select {
		case m := <-out:
			messages = append(messages, m)
		case <-time.After(3 * time.Second):
			t.Fatal("did not receive both fragmented messages in time")
		}
	}
	require.Len(t, messages, 2)

	cancel()
	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Pump did not return after context cancellation")
	}
}
