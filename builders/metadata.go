package builders

type metadataState int

const (
	metadataUnset metadataState = iota
	metadataPresent
	metadataNull
)

// Metadata tracks three distinct states for a metadata object: never set
// (omitted from the wire request), set to key/value pairs, or explicitly
// cleared (sent as JSON null so the server removes existing metadata).
type Metadata struct {
	state  metadataState
	values map[string]string
}

// Set upserts a single key. It transitions a cleared or unset Metadata to
// the present state.
func (m *Metadata) Set(key, value string) {
	if m.state != metadataPresent || m.values == nil {
		m.values = map[string]string{}
	}
	m.state = metadataPresent
	m.values[key] = value
}

// Replace swaps the entire map, discarding any previous keys.
func (m *Metadata) Replace(values map[string]string) {
	m.state = metadataPresent
	m.values = map[string]string{}
	for k, v := range values {
		m.values[k] = v
	}
}

// Clear marks the metadata for explicit removal. The wire request carries
// JSON null.
func (m *Metadata) Clear() {
	m.state = metadataNull
	m.values = nil
}

// IsZero reports whether the metadata was never touched.
func (m Metadata) IsZero() bool {
	return m.state == metadataUnset
}

// wire returns the value to embed in a request struct under an omitempty
// pointer field. Unset metadata and present-but-empty maps both collapse to
// nil so the field is omitted; cleared metadata returns a pointer to a nil
// map, which marshals as JSON null.
func (m Metadata) wire() *map[string]string {
	switch m.state {
	case metadataPresent:
		if len(m.values) == 0 {
			return nil
		}
		out := make(map[string]string, len(m.values))
		for k, v := range m.values {
			out[k] = v
		}
		return &out
	case metadataNull:
		var null map[string]string
		return &null
	default:
		return nil
	}
}
