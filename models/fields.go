package models

// Fields is a decoded JSON object as received from a client: values are
// string, bool, float64, nil, []any or map[string]any. Services validate the
// key set and the dynamic value types before anything reaches storage.
type Fields map[string]any
