package textcodec

// Cloner allows types to provide deep copy logic.
// Implementing this interface is required for use with Processor.
//
// Escape and Marshal transform a clone, never the caller's value, so Clone
// must return a copy whose string slices and maps are not shared with the
// receiver:
//
//	func (m Message) Clone() Message {
//	    tags := make([]string, len(m.Tags))
//	    copy(tags, m.Tags)
//	    return Message{ID: m.ID, Body: m.Body, Tags: tags}
//	}
//
// For types with only value fields, Clone can return the receiver:
//
//	func (m Note) Clone() Note { return m }
type Cloner[T any] interface {
	Clone() T
}
