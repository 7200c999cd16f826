package document

// WarningType categorizes conversion warnings.
type WarningType string

const (
	WarningUnknownNode         WarningType = "unknown_node"
	WarningUnknownMark         WarningType = "unknown_mark"
	WarningDroppedFeature      WarningType = "dropped_feature"
	WarningMissingAttribute    WarningType = "missing_attribute"
	WarningUnresolvedReference WarningType = "unresolved_reference"
	WarningParseFailed         WarningType = "parse_failed"
)

// Warning represents a non-fatal issue encountered during conversion.
type Warning struct {
	Type     WarningType `json:"type"`
	NodeType string      `json:"nodeType,omitempty"`
	Message  string      `json:"message"`
}
