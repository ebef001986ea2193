package models

import "encoding/json"

// Quote is an exchange rate captured from the provider together with the raw
// response payload it was parsed from. The raw payload is what gets cached;
// everything in it besides the rate is opaque to this service.
type Quote struct {
	Rate float64
	Raw  json.RawMessage
}
