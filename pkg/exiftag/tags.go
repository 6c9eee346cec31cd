// Package exiftag expands metadata text templates and extracts EXIF tags
// from image files into a plain tag mapping.
package exiftag

// TagMap is an ordered mapping from metadata tag names to formatted values.
type TagMap struct {
	names  []string
	values map[string]string
}

// NewTagMap creates an empty tag map.
func NewTagMap() *TagMap {
	return &TagMap{values: map[string]string{}}
}

// Set stores a tag value, keeping first-insertion order.
func (m *TagMap) Set(name, value string) {
	if _, ok := m.values[name]; !ok {
		m.names = append(m.names, name)
	}
	m.values[name] = value
}

// Get looks up a tag value.
func (m *TagMap) Get(name string) (string, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Names returns the tag names in insertion order.
func (m *TagMap) Names() []string {
	return m.names
}

// Len returns the number of tags.
func (m *TagMap) Len() int {
	return len(m.names)
}
