package models

// Alias maps a header name to its column position.
type Alias struct {
	// Name is the header text.
	Name string `json:"name"`
	// Index is the 1-based column position, the same key the Record uses.
	Index int `json:"index"`
}

// Aliases is an ordered alias table.
type Aliases []Alias

// AliasesFromHeader builds an alias table from header values.
// Duplicate names keep their first position; empty names are skipped.
func AliasesFromHeader(header []string) Aliases {
	seen := make(map[string]bool, len(header))
	var aliases Aliases
	for i, name := range header {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		aliases = append(aliases, Alias{Name: name, Index: i + 1})
	}
	return aliases
}

// Index returns the position aliased by name.
func (a Aliases) Index(name string) (int, bool) {
	for _, alias := range a {
		if alias.Name == name {
			return alias.Index, true
		}
	}
	return 0, false
}

// Map returns the table as a name to position map.
func (a Aliases) Map() map[string]int {
	m := make(map[string]int, len(a))
	for _, alias := range a {
		m[alias.Name] = alias.Index
	}
	return m
}
