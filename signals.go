package textcodec

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for textcodec events.
var (
	SignalCodecCreated      = capitan.NewSignal("textcodec.codec.created", "Codec instantiated")
	SignalProcessorCreated  = capitan.NewSignal("textcodec.processor.created", "Processor instantiated")
	SignalEscapeComplete    = capitan.NewSignal("textcodec.escape.complete", "Escape operation finished")
	SignalUnescapeComplete  = capitan.NewSignal("textcodec.unescape.complete", "Unescape operation finished")
	SignalMarshalComplete   = capitan.NewSignal("textcodec.marshal.complete", "Marshal operation finished")
	SignalUnmarshalComplete = capitan.NewSignal("textcodec.unmarshal.complete", "Unmarshal operation finished")
)

// Keys for typed event data.
var (
	KeyEscape      = capitan.NewStringKey("escape")
	KeyTableSize   = capitan.NewIntKey("table_size")
	KeyContentType = capitan.NewStringKey("content_type")
	KeyTypeName    = capitan.NewStringKey("type_name")
	KeySize        = capitan.NewIntKey("size")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyFieldCount  = capitan.NewIntKey("field_count")
	KeyError       = capitan.NewErrorKey("error")
)

// emitCodecCreated emits an event when a codec is built.
func emitCodecCreated(ctx context.Context, escape rune, tableSize int) {
	capitan.Emit(ctx, SignalCodecCreated,
		KeyEscape.Field(string(escape)),
		KeyTableSize.Field(tableSize),
	)
}

// emitProcessorCreated emits an event when a processor is created.
func emitProcessorCreated(ctx context.Context, contentType, typeName string) {
	capitan.Emit(ctx, SignalProcessorCreated,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
	)
}

// emitComplete emits a completion event for a processor operation.
// Failed operations are emitted at error severity.
func emitComplete(ctx context.Context, signal capitan.Signal, contentType, typeName string, size int, duration time.Duration, fields int, err error) {
	out := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
		KeyFieldCount.Field(fields),
	}
	if err != nil {
		out = append(out, KeyError.Field(err))
		capitan.Error(ctx, signal, out...)
		return
	}
	capitan.Emit(ctx, signal, out...)
}
