package converter

// Result holds the output of a conversion.
type Result struct {
	Markdown string    `json:"markdown"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// WarningType categorizes conversion warnings.
type WarningType string

const (
	WarningUnknownAttribute WarningType = "unknown_attribute"
	WarningUnknownEmbed     WarningType = "unknown_embed"
	WarningDroppedFeature   WarningType = "dropped_feature"
	WarningUnclosedFence    WarningType = "unclosed_fence"
	WarningClampedValue     WarningType = "clamped_value"

	// WarningUnresolvedReference is emitted when a hook cannot resolve a link or image.
	WarningUnresolvedReference WarningType = "unresolved_reference"
)

// Warning represents a non-fatal issue encountered during conversion.
type Warning struct {
	Type    WarningType `json:"type"`
	Element string      `json:"element,omitempty"`
	Message string      `json:"message"`
}
