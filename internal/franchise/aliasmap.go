package franchise

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// AliasMap maps a canonical franchise name to the raw titles that fold into
// it. Static configuration; it is never derived from data.
type AliasMap map[string][]string

// DefaultAliases is the built-in franchise grouping used when no alias config
// is supplied.
func DefaultAliases() AliasMap {
	return AliasMap{
		"Naruto Franchise": {"Naruto", "Naruto: Shippuuden"},
	}
}

// LoadAliases reads an AliasMap from a JSON file and validates it.
func LoadAliases(path string) (AliasMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading alias map: %w", err)
	}
	var m AliasMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing alias map: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate enforces the disjointness invariant: no raw title may belong to
// two canonical franchises.
func (m AliasMap) Validate() error {
	seen := make(map[string]string)
	canonicals := make([]string, 0, len(m))
	for c := range m {
		canonicals = append(canonicals, c)
	}
	sort.Strings(canonicals) // deterministic error reporting
	for _, canonical := range canonicals {
		for _, raw := range m[canonical] {
			if prev, ok := seen[raw]; ok {
				return fmt.Errorf("alias %q claimed by both %q and %q", raw, prev, canonical)
			}
			seen[raw] = canonical
		}
	}
	return nil
}

// resolver is the inverted map used during normalization.
type resolver map[string]string

func (m AliasMap) resolver() resolver {
	r := make(resolver)
	for canonical, raws := range m {
		for _, raw := range raws {
			r[raw] = canonical
		}
	}
	return r
}

// canonical maps a raw title to its franchise; identity when unmapped.
func (r resolver) canonical(title string) string {
	if c, ok := r[title]; ok {
		return c
	}
	return title
}
