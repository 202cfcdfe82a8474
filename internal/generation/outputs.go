package generation

import (
	"fmt"
	"strings"
)

// Output slot status values.
const (
	StatusComplete = "complete"
	StatusError    = "error"
)

const lyricsPreviewLimit = 50

// Outputs is the fixed set of slots a generation run populates. Every slot is
// written exactly once per run: the failure baseline first, overwritten on
// success. Callers never observe a half-populated success state.
type Outputs struct {
	Status         string `json:"status"`
	TaskID         string `json:"task_id,omitempty"`
	AudioTrack1    *Asset `json:"audio_track_1,omitempty"`
	AudioTrack2    *Asset `json:"audio_track_2,omitempty"`
	CoverImage     *Asset `json:"cover_image,omitempty"`
	GeneratedTitle string `json:"generated_title"`
	Tags           string `json:"tags"`
	Lyrics         string `json:"lyrics"`
	Summary        string `json:"summary"`
}

// baselineOutputs is the safe failure state: empty slots, error status.
func baselineOutputs() Outputs {
	return Outputs{
		Status:  StatusError,
		Summary: "Generation failed",
	}
}

// generatedTitle picks the title for the primary track, with a fixed
// placeholder when the service returned none.
func generatedTitle(track Track) string {
	if title := strings.TrimSpace(track.Title); title != "" {
		return title
	}
	return "Untitled"
}

// buildSummary renders the human-readable result details for a completed run.
func buildSummary(taskID string, tracks []Track) string {
	primary := tracks[0]
	lines := []string{
		fmt.Sprintf("✓ Generated %d track variation(s)", len(tracks)),
		fmt.Sprintf("Title: %s", primary.Title),
		fmt.Sprintf("Tags: %s", primary.Tags),
		fmt.Sprintf("Lyrics: %s", previewLyrics(primary.Prompt)),
		fmt.Sprintf("Task ID: %s", taskID),
		fmt.Sprintf("Model: %s", primary.ModelName),
		"",
		"Track Details:",
	}
	for i, track := range tracks {
		lines = append(lines,
			fmt.Sprintf("%d. Duration: %gs", i+1, track.Duration),
			fmt.Sprintf("   Audio: %s", track.AudioURL),
		)
		if i < len(tracks)-1 {
			lines = append(lines, "")
		}
	}
	return strings.Join(lines, "\n")
}

// previewLyrics truncates at a character boundary so multi-byte lyrics never
// produce a torn rune in the summary.
func previewLyrics(lyrics string) string {
	runes := []rune(lyrics)
	if len(runes) > lyricsPreviewLimit {
		return string(runes[:lyricsPreviewLimit]) + "..."
	}
	return lyrics
}
