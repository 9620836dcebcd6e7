package sdk

import (
	"github.com/TM9657/flow-like-sdk-go/jsonlite"
)

// NodeScores rates a node on the catalog quality axes, each 0-100.
type NodeScores struct {
	Privacy     uint8 `json:"privacy"`
	Security    uint8 `json:"security"`
	Performance uint8 `json:"performance"`
	Governance  uint8 `json:"governance"`
	Reliability uint8 `json:"reliability"`
	Cost        uint8 `json:"cost"`
}

// ToJSON renders the scores object.
func (s NodeScores) ToJSON() string {
	return jsonlite.NewBuilder().
		BeginObject().
		Key("privacy").Uint(uint64(s.Privacy)).
		Key("security").Uint(uint64(s.Security)).
		Key("performance").Uint(uint64(s.Performance)).
		Key("governance").Uint(uint64(s.Governance)).
		Key("reliability").Uint(uint64(s.Reliability)).
		Key("cost").Uint(uint64(s.Cost)).
		EndObject().
		String()
}

// PinDefinition describes one typed connection point of a node. The optional
// fields are pointers so that "not set" and "set to empty" stay distinct on
// the wire.
type PinDefinition struct {
	Name         string   `json:"name"`
	FriendlyName string   `json:"friendly_name"`
	Description  string   `json:"description"`
	PinType      PinType  `json:"pin_type"`
	DataType     DataType `json:"data_type"`
	DefaultValue *string  `json:"default_value,omitempty"`
	ValueType    *string  `json:"value_type,omitempty"`
	Schema       *string  `json:"schema,omitempty"`
}

// InputPin declares an input pin.
func InputPin(name, friendlyName, description string, dataType DataType) PinDefinition {
	return PinDefinition{
		Name:         name,
		FriendlyName: friendlyName,
		Description:  description,
		PinType:      PinInput,
		DataType:     dataType,
	}
}

// OutputPin declares an output pin.
func OutputPin(name, friendlyName, description string, dataType DataType) PinDefinition {
	return PinDefinition{
		Name:         name,
		FriendlyName: friendlyName,
		Description:  description,
		PinType:      PinOutput,
		DataType:     dataType,
	}
}

// WithDefault sets the pin's default value. The value is raw JSON text and is
// emitted verbatim, so a string default must arrive pre-quoted.
func (p PinDefinition) WithDefault(rawJSON string) PinDefinition {
	p.DefaultValue = &rawJSON
	return p
}

// WithValueType marks the pin as a container of the given kind, e.g. "Array",
// "HashMap" or "HashSet".
func (p PinDefinition) WithValueType(valueType string) PinDefinition {
	p.ValueType = &valueType
	return p
}

// WithSchema attaches a JSON Schema document to the pin. The schema travels
// as a string value, not as nested JSON.
func (p PinDefinition) WithSchema(schema string) PinDefinition {
	p.Schema = &schema
	return p
}

// ToJSON renders the pin in wire field order. Unset optional fields are
// omitted entirely.
func (p PinDefinition) ToJSON() string {
	b := jsonlite.NewBuilder().
		BeginObject().
		Key("name").Str(p.Name).
		Key("friendly_name").Str(p.FriendlyName).
		Key("description").Str(p.Description).
		Key("pin_type").Str(string(p.PinType)).
		Key("data_type").Str(string(p.DataType))
	if p.DefaultValue != nil {
		b.Key("default_value").Raw(*p.DefaultValue)
	}
	if p.ValueType != nil {
		b.Key("value_type").Str(*p.ValueType)
	}
	if p.Schema != nil {
		b.Key("schema").Str(*p.Schema)
	}
	return b.EndObject().String()
}

// NodeDefinition is the complete self-description a node hands to the host:
// identity, catalog metadata, pins and the permission namespaces it needs.
type NodeDefinition struct {
	Name         string          `json:"name"`
	FriendlyName string          `json:"friendly_name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Icon         *string         `json:"icon,omitempty"`
	Pins         []PinDefinition `json:"pins"`
	Scores       *NodeScores     `json:"scores,omitempty"`
	LongRunning  bool            `json:"long_running"`
	Docs         *string         `json:"docs,omitempty"`
	Permissions  []string        `json:"permissions,omitempty"`
	ABIVersion   uint32          `json:"abi_version"`
}

// NewNodeDefinition returns a definition stamped with the current ABI
// version.
func NewNodeDefinition(name, friendlyName, description, category string) NodeDefinition {
	return NodeDefinition{
		Name:         name,
		FriendlyName: friendlyName,
		Description:  description,
		Category:     category,
		ABIVersion:   ABIVersion,
	}
}

// AddPin appends a pin. Pin order is preserved on the wire; boards display
// pins in declaration order.
func (n *NodeDefinition) AddPin(pin PinDefinition) *NodeDefinition {
	n.Pins = append(n.Pins, pin)
	return n
}

// SetIcon sets the catalog icon reference.
func (n *NodeDefinition) SetIcon(icon string) *NodeDefinition {
	n.Icon = &icon
	return n
}

// SetScores attaches quality scores.
func (n *NodeDefinition) SetScores(scores NodeScores) *NodeDefinition {
	n.Scores = &scores
	return n
}

// SetDocs attaches long-form documentation.
func (n *NodeDefinition) SetDocs(docs string) *NodeDefinition {
	n.Docs = &docs
	return n
}

// SetLongRunning marks the node as long running so hosts schedule it off the
// latency-sensitive path.
func (n *NodeDefinition) SetLongRunning(v bool) *NodeDefinition {
	n.LongRunning = v
	return n
}

// AddPermission declares a host capability namespace the node needs, e.g.
// "http" or "storage". Calls into undeclared namespaces are denied at
// runtime.
func (n *NodeDefinition) AddPermission(perm string) *NodeDefinition {
	n.Permissions = append(n.Permissions, perm)
	return n
}

// ToJSON renders the definition: required fields first in fixed order, then
// the optional fields only when set.
func (n *NodeDefinition) ToJSON() string {
	b := jsonlite.NewBuilder().
		BeginObject().
		Key("name").Str(n.Name).
		Key("friendly_name").Str(n.FriendlyName).
		Key("description").Str(n.Description).
		Key("category").Str(n.Category).
		Key("pins").BeginArray()
	for _, pin := range n.Pins {
		b.Raw(pin.ToJSON())
	}
	b.EndArray().
		Key("long_running").Bool(n.LongRunning).
		Key("abi_version").Uint(uint64(n.ABIVersion))
	if n.Icon != nil {
		b.Key("icon").Str(*n.Icon)
	}
	if n.Scores != nil {
		b.Key("scores").Raw(n.Scores.ToJSON())
	}
	if n.Docs != nil {
		b.Key("docs").Str(*n.Docs)
	}
	if len(n.Permissions) > 0 {
		b.Key("permissions").BeginArray()
		for _, p := range n.Permissions {
			b.Str(p)
		}
		b.EndArray()
	}
	return b.EndObject().String()
}
