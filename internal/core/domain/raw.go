package domain

import "encoding/json"

// RawNotice is one undecoded record returned by a source adapter, tagged
// with the API that produced it. The payload keeps the source's native
// shape; typed decoding happens only inside the matching normaliser.
type RawNotice struct {
	// API identifies the source that produced this record.
	API SourceAPI

	// Data is the record in the source's native JSON shape.
	Data json.RawMessage
}
