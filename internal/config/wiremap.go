package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ytget/image-predictor/internal/model"
)

// Separators of the wire map text form "resnet50=resnet,efficientnet=efficientnet"
const (
	WirePairSeparator  = ","
	WireValueSeparator = "="
)

// WireMap translates internal model ids to the identifiers the server expects
type WireMap map[model.ModelID]string

// DefaultWireMap returns the table the reference server understands
func DefaultWireMap() WireMap {
	return WireMap{
		model.ModelResNet50:     "resnet",
		model.ModelEfficientNet: "efficientnet",
	}
}

// Resolve returns the wire identifier for id. Ids without an entry are sent as is.
func (m WireMap) Resolve(id model.ModelID) string {
	if wire, ok := m[id]; ok && wire != "" {
		return wire
	}
	return string(id)
}

// WireIdentifier implements predict.WireResolver
func (m WireMap) WireIdentifier(id model.ModelID) string {
	return m.Resolve(id)
}

// Merge returns a copy of m with the entries of override applied on top
func (m WireMap) Merge(override WireMap) WireMap {
	merged := make(WireMap, len(m)+len(override))
	for id, wire := range m {
		merged[id] = wire
	}
	for id, wire := range override {
		merged[id] = wire
	}
	return merged
}

// WireValues returns the distinct wire identifiers, sorted
func (m WireMap) WireValues() []string {
	seen := make(map[string]bool, len(m))
	values := make([]string, 0, len(m))
	for _, wire := range m {
		if wire != "" && !seen[wire] {
			seen[wire] = true
			values = append(values, wire)
		}
	}
	sort.Strings(values)
	return values
}

// String renders the map in its text form, sorted by internal id
func (m WireMap) String() string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)

	pairs := make([]string, 0, len(ids))
	for _, id := range ids {
		pairs = append(pairs, id+WireValueSeparator+m[model.ModelID(id)])
	}
	return strings.Join(pairs, WirePairSeparator)
}

// ParseWireMap parses "internal=wire,internal=wire". Internal ids must
// belong to the catalog.
func ParseWireMap(text string) (WireMap, error) {
	result := WireMap{}
	text = strings.TrimSpace(text)
	if text == "" {
		return result, nil
	}

	for _, pair := range strings.Split(text, WirePairSeparator) {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		internal, wire, found := strings.Cut(pair, WireValueSeparator)
		internal = strings.TrimSpace(internal)
		wire = strings.TrimSpace(wire)
		if !found || internal == "" || wire == "" {
			return nil, fmt.Errorf("invalid model map entry %q", pair)
		}

		id := model.ModelID(internal)
		if !id.Valid() {
			return nil, fmt.Errorf("unknown model in model map: %s", internal)
		}
		result[id] = wire
	}
	return result, nil
}
