package keyspace

import "encoding/json"

// wireValue is the JSON-visible shape of a Value: a variant tag plus
// whichever field Kind selects. Empty/zero fields for the unselected
// variant are omitted from the encoded form.
type wireValue struct {
	Kind     string   `json:"kind"`
	Scalar   string   `json:"scalar,omitempty"`
	Sequence []string `json:"sequence,omitempty"`
}

func toWireValue(v Value) wireValue {
	switch v.Kind {
	case KindSequence:
		return wireValue{Kind: "sequence", Sequence: v.Sequence}
	default:
		return wireValue{Kind: "scalar", Scalar: v.Scalar}
	}
}

func fromWireValue(w wireValue) Value {
	if w.Kind == "sequence" {
		return NewSequence(w.Sequence)
	}
	return NewScalar(w.Scalar)
}

// wireEntry encodes an Entry as the two-element JSON array
// [value, optional-expiry] that spec's on-disk format calls for, rather
// than as a JSON object.
type wireEntry struct {
	Value  wireValue
	Expiry *int64
}

func (w wireEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{w.Value, w.Expiry})
}

func (w *wireEntry) UnmarshalJSON(data []byte) error {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if err := json.Unmarshal(pair[0], &w.Value); err != nil {
		return err
	}
	if len(pair[1]) == 0 || string(pair[1]) == "null" {
		w.Expiry = nil
		return nil
	}
	var expiry int64
	if err := json.Unmarshal(pair[1], &expiry); err != nil {
		return err
	}
	w.Expiry = &expiry
	return nil
}

// Serialize renders the entire keyspace as a JSON object mapping key to
// [value, optional-expiry]. Key order in the emitted object is
// unspecified.
func (s *Store) Serialize() ([]byte, error) {
	out := make(map[string]wireEntry, s.cache.Len())
	for key, entry := range s.cache.All() {
		out[key] = wireEntry{Value: toWireValue(entry.Value), Expiry: entry.Expiry}
	}
	return json.Marshal(out)
}

// Deserialize clears the store and reinserts every entry decoded from
// data. Recency after a Deserialize is insertion order, which — since Go
// map iteration order is randomized — is itself unspecified, matching
// spec's "ignoring recency order" round-trip contract.
func (s *Store) Deserialize(data []byte) error {
	var decoded map[string]wireEntry
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	s.cache.Clear()
	for key, we := range decoded {
		s.cache.Put(key, Entry{Value: fromWireValue(we.Value), Expiry: we.Expiry})
	}
	return nil
}
