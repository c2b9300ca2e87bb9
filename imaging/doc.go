// Package imaging is the AWS HealthImaging data-plane layer.
//
// It covers the three leaf operations of a fetch run:
//
//   - Resolver: retrieve and decode the image set metadata document
//   - Enumerate: flatten the metadata tree into frame descriptors
//   - FrameFetcher: retrieve a single frame's pixel payload
//
// The HealthImaging client is injected as the narrow API interface, so tests
// and callers can substitute a fake service without touching global state.
//
// # Metadata shape
//
// An image set metadata document is a single JSON object with one Study,
// mapping series IDs to series, instance IDs to instances, and listing the
// image frames of each instance:
//
//	Study → Series{id → Instances{id → ImageFrames[]}}
//
// Object key order is the document order and is preserved by the decoder;
// it determines the frame processing order downstream.
package imaging
