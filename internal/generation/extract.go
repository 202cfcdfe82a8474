package generation

import (
	"encoding/json"
	"strings"

	"sunogen/internal/suno"
)

// Track is one normalized track variation extracted from a completed task.
// The audio URL is what makes an entry a track; everything else is optional.
type Track struct {
	AudioURL  string
	ImageURL  string
	Title     string
	Duration  float64
	Tags      string
	Prompt    string
	ModelName string
}

// extractTracks pulls the track list out of a completion payload. Any level
// that is missing or not the expected shape degrades to zero tracks; entries
// without an audio URL are dropped. Input order is preserved, so the first
// entry stays the primary track.
func extractTracks(info *suno.RecordInfo) []Track {
	if info == nil || len(info.Response) == 0 {
		return nil
	}
	var response struct {
		SunoData []suno.TrackData `json:"sunoData"`
	}
	if err := json.Unmarshal(info.Response, &response); err != nil {
		return nil
	}

	var tracks []Track
	for _, item := range response.SunoData {
		if strings.TrimSpace(item.AudioURL) == "" {
			continue
		}
		tracks = append(tracks, Track{
			AudioURL:  item.AudioURL,
			ImageURL:  item.ImageURL,
			Title:     item.Title,
			Duration:  item.Duration,
			Tags:      item.Tags,
			Prompt:    item.Prompt,
			ModelName: item.ModelName,
		})
	}
	return tracks
}
