package textcodec

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEmitCodecCreated(_ *testing.T) {
	// Should not panic
	emitCodecCreated(context.Background(), ',', 1)
}

func TestEmitProcessorCreated(_ *testing.T) {
	emitProcessorCreated(context.Background(), "application/json", "Message")
}

func TestEmitComplete_Success(_ *testing.T) {
	emitComplete(context.Background(), SignalMarshalComplete, "application/json", "Message", 128, 10*time.Millisecond, 2, nil)
}

func TestEmitComplete_Error(_ *testing.T) {
	emitComplete(context.Background(), SignalUnmarshalComplete, "application/json", "Message", 0, 10*time.Millisecond, 2, errors.New("test error"))
}

func TestEmitComplete_NoSerializer(_ *testing.T) {
	emitComplete(context.Background(), SignalEscapeComplete, "", "Message", 0, time.Millisecond, 0, nil)
}
