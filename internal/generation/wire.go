package generation

// RequestSpec is the wire form of a generation request as accepted by the API
// and stored on the job row. It flattens both modes; Request() picks the
// variant the custom_mode flag selects.
type RequestSpec struct {
	CustomMode   bool   `json:"custom_mode"`
	Model        string `json:"model"`
	Prompt       string `json:"prompt"`
	Style        string `json:"style,omitempty"`
	Title        string `json:"title,omitempty"`
	Instrumental bool   `json:"instrumental"`
	VocalGender  string `json:"vocal_gender,omitempty"`
	NegativeTags string `json:"negative_tags,omitempty"`

	StyleWeight         float64 `json:"style_weight,omitempty"`
	WeirdnessConstraint float64 `json:"weirdness_constraint,omitempty"`
	AudioWeight         float64 `json:"audio_weight,omitempty"`
}

// Request converts the wire form into the validated request variant.
func (s RequestSpec) Request() Request {
	model := Model(s.Model)
	if s.Model == "" {
		model = DefaultModel
	}
	tuning := Tuning{
		Model:               model,
		Instrumental:        s.Instrumental,
		VocalGender:         s.VocalGender,
		NegativeTags:        s.NegativeTags,
		StyleWeight:         s.StyleWeight,
		WeirdnessConstraint: s.WeirdnessConstraint,
		AudioWeight:         s.AudioWeight,
	}
	if s.CustomMode {
		return CustomRequest{
			Tuning: tuning,
			Prompt: s.Prompt,
			Style:  s.Style,
			Title:  s.Title,
		}
	}
	return SimpleRequest{
		Tuning: tuning,
		Prompt: s.Prompt,
	}
}
