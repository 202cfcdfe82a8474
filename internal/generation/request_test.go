package generation

import (
	"strings"
	"testing"
)

func TestCustomRequestMissingStyleAndTitle(t *testing.T) {
	req := CustomRequest{
		Tuning: Tuning{Model: ModelV5, Instrumental: true},
	}
	errs := req.Validate()
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), errs)
	}
	if !strings.Contains(errs[0].Error(), "style") {
		t.Fatalf("first error should mention style: %v", errs[0])
	}
	if !strings.Contains(errs[1].Error(), "title") {
		t.Fatalf("second error should mention title: %v", errs[1])
	}
}

func TestCustomRequestPromptRequiredUnlessInstrumental(t *testing.T) {
	req := CustomRequest{
		Tuning: Tuning{Model: ModelV5},
		Style:  "Jazz",
		Title:  "Night Drive",
	}
	errs := req.Validate()
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "prompt") {
		t.Fatalf("expected a single prompt error, got %v", errs)
	}

	req.Instrumental = true
	if errs := req.Validate(); len(errs) != 0 {
		t.Fatalf("instrumental request should validate, got %v", errs)
	}
}

func TestCustomRequestLengthLimits(t *testing.T) {
	req := CustomRequest{
		Tuning: Tuning{Model: ModelV3_5},
		Prompt: strings.Repeat("a", 3001),
		Style:  strings.Repeat("s", 201),
		Title:  strings.Repeat("t", 81),
	}
	errs := req.Validate()
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), errs)
	}
	if !strings.Contains(errs[0].Error(), "3000") {
		t.Fatalf("prompt error should reference 3000: %v", errs[0])
	}
	if !strings.Contains(errs[1].Error(), "200") {
		t.Fatalf("style error should reference 200: %v", errs[1])
	}
	if !strings.Contains(errs[2].Error(), "80") {
		t.Fatalf("title error should reference 80: %v", errs[2])
	}
}

func TestCustomRequestHigherLimitsForNewerModels(t *testing.T) {
	req := CustomRequest{
		Tuning: Tuning{Model: ModelV4_5Plus},
		Prompt: strings.Repeat("a", 4000),
		Style:  strings.Repeat("s", 900),
		Title:  "ok",
	}
	if errs := req.Validate(); len(errs) != 0 {
		t.Fatalf("expected no errors for V4_5PLUS limits, got %v", errs)
	}
}

func TestSimpleRequestPromptRequired(t *testing.T) {
	req := SimpleRequest{Tuning: Tuning{Model: ModelV5}, Prompt: "   "}
	errs := req.Validate()
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "prompt") {
		t.Fatalf("expected a single prompt error, got %v", errs)
	}
}

func TestSimpleRequestPromptLengthLimit(t *testing.T) {
	req := SimpleRequest{Tuning: Tuning{Model: ModelV5}, Prompt: strings.Repeat("a", 501)}
	errs := req.Validate()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	if !strings.Contains(errs[0].Error(), "500") {
		t.Fatalf("error should reference the 500 character limit: %v", errs[0])
	}
}

func TestLengthLimitsCountCharactersNotBytes(t *testing.T) {
	// 500 two-byte runes: 1000 bytes, exactly at the character limit.
	simple := SimpleRequest{Tuning: Tuning{Model: ModelV5}, Prompt: strings.Repeat("ñ", 500)}
	if errs := simple.Validate(); len(errs) != 0 {
		t.Fatalf("500-character multi-byte prompt should validate, got %v", errs)
	}

	over := SimpleRequest{Tuning: Tuning{Model: ModelV5}, Prompt: strings.Repeat("ñ", 501)}
	errs := over.Validate()
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "current: 501 characters") {
		t.Fatalf("expected a 501-character error, got %v", errs)
	}

	custom := CustomRequest{
		Tuning: Tuning{Model: ModelV3_5},
		Prompt: strings.Repeat("ñ", 3000),
		Style:  strings.Repeat("ñ", 200),
		Title:  strings.Repeat("ñ", 80),
	}
	if errs := custom.Validate(); len(errs) != 0 {
		t.Fatalf("at-limit multi-byte custom request should validate, got %v", errs)
	}
}

func TestSimpleRequestRejectsUnknownModel(t *testing.T) {
	req := SimpleRequest{Tuning: Tuning{Model: "V99"}, Prompt: "a calm piano piece"}
	errs := req.Validate()
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "model") {
		t.Fatalf("expected a model error, got %v", errs)
	}
}

func TestPayloadRequiredKeys(t *testing.T) {
	req := SimpleRequest{Tuning: Tuning{Model: ModelV5}, Prompt: "  lofi beats  "}
	payload := req.Payload()

	if payload["customMode"] != false {
		t.Fatalf("customMode mismatch: %v", payload["customMode"])
	}
	if payload["instrumental"] != false {
		t.Fatalf("instrumental mismatch: %v", payload["instrumental"])
	}
	if payload["model"] != "V5" {
		t.Fatalf("model mismatch: %v", payload["model"])
	}
	if payload["callBackUrl"] != CallbackPlaceholder {
		t.Fatalf("callBackUrl mismatch: %v", payload["callBackUrl"])
	}
	if payload["prompt"] != "lofi beats" {
		t.Fatalf("prompt should be trimmed: %v", payload["prompt"])
	}
}

func TestPayloadOmitsDefaultWeights(t *testing.T) {
	req := SimpleRequest{
		Tuning: Tuning{Model: ModelV5, StyleWeight: DefaultWeight, WeirdnessConstraint: 0, AudioWeight: DefaultWeight},
		Prompt: "x",
	}
	payload := req.Payload()
	for _, key := range []string{"styleWeight", "weirdnessConstraint", "audioWeight"} {
		if _, ok := payload[key]; ok {
			t.Fatalf("%s should be omitted at default value", key)
		}
	}
}

func TestPayloadRoundsNonDefaultWeights(t *testing.T) {
	req := SimpleRequest{
		Tuning: Tuning{Model: ModelV5, StyleWeight: 0.723, WeirdnessConstraint: 0.9, AudioWeight: 0.005},
		Prompt: "x",
	}
	payload := req.Payload()
	if payload["styleWeight"] != 0.72 {
		t.Fatalf("styleWeight mismatch: %v", payload["styleWeight"])
	}
	if payload["weirdnessConstraint"] != 0.9 {
		t.Fatalf("weirdnessConstraint mismatch: %v", payload["weirdnessConstraint"])
	}
	if payload["audioWeight"] != 0.01 {
		t.Fatalf("audioWeight mismatch: %v", payload["audioWeight"])
	}
}

func TestPayloadVocalGender(t *testing.T) {
	auto := SimpleRequest{Tuning: Tuning{Model: ModelV5, VocalGender: VocalGenderAuto}, Prompt: "x"}
	if _, ok := auto.Payload()["vocalGender"]; ok {
		t.Fatalf("vocalGender auto should be omitted")
	}

	forced := SimpleRequest{Tuning: Tuning{Model: ModelV5, VocalGender: "f"}, Prompt: "x"}
	if got := forced.Payload()["vocalGender"]; got != "f" {
		t.Fatalf("vocalGender mismatch: %v", got)
	}
}

func TestCustomPayloadIncludesStyleAndTitle(t *testing.T) {
	req := CustomRequest{
		Tuning: Tuning{Model: ModelV4, NegativeTags: " Heavy Metal "},
		Prompt: "verse one",
		Style:  " Jazz ",
		Title:  " Night Drive ",
	}
	payload := req.Payload()
	if payload["customMode"] != true {
		t.Fatalf("customMode mismatch: %v", payload["customMode"])
	}
	if payload["style"] != "Jazz" || payload["title"] != "Night Drive" {
		t.Fatalf("style/title mismatch: %v / %v", payload["style"], payload["title"])
	}
	if payload["negativeTags"] != "Heavy Metal" {
		t.Fatalf("negativeTags mismatch: %v", payload["negativeTags"])
	}
}

func TestRequestSpecSelectsVariant(t *testing.T) {
	custom := RequestSpec{CustomMode: true, Model: "V4", Prompt: "p", Style: "s", Title: "t"}
	if _, ok := custom.Request().(CustomRequest); !ok {
		t.Fatalf("expected CustomRequest")
	}

	simple := RequestSpec{Prompt: "p"}
	req, ok := simple.Request().(SimpleRequest)
	if !ok {
		t.Fatalf("expected SimpleRequest")
	}
	if req.Model != DefaultModel {
		t.Fatalf("expected default model, got %s", req.Model)
	}
}
