package generation

// Model identifies a Suno model version.
type Model string

const (
	ModelV3_5     Model = "V3_5"
	ModelV4       Model = "V4"
	ModelV4_5     Model = "V4_5"
	ModelV4_5Plus Model = "V4_5PLUS"
	ModelV5       Model = "V5"
)

// DefaultModel is used when a request does not name one.
const DefaultModel = ModelV5

// Length limits enforced before submission.
const (
	TitleLimit        = 80
	SimplePromptLimit = 500
)

// Valid reports whether m names a supported model version.
func (m Model) Valid() bool {
	switch m {
	case ModelV3_5, ModelV4, ModelV4_5, ModelV4_5Plus, ModelV5:
		return true
	}
	return false
}

// PromptLimit returns the custom-mode prompt length limit for the model.
func (m Model) PromptLimit() int {
	switch m {
	case ModelV4_5, ModelV4_5Plus, ModelV5:
		return 5000
	default:
		return 3000
	}
}

// StyleLimit returns the style length limit for the model.
func (m Model) StyleLimit() int {
	switch m {
	case ModelV4_5, ModelV4_5Plus, ModelV5:
		return 1000
	default:
		return 200
	}
}
