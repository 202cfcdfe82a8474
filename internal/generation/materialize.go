package generation

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// AssetStore persists downloaded bytes under a key and maps stored keys to
// publicly reachable URLs.
type AssetStore interface {
	Write(ctx context.Context, key string, data []byte) (string, error)
	PublicURL(key string) string
}

// Asset references generated binary content: either persisted to durable
// storage or passing through the original remote URL when download or
// persistence failed.
type Asset struct {
	URL       string `json:"url"`
	Filename  string `json:"filename,omitempty"`
	Persisted bool   `json:"persisted"`
}

// materialize downloads the content behind url and persists it under filename.
// Every failure degrades to a pass-through reference wrapping the remote URL;
// one bad download must not void an otherwise successful generation.
func (p *Pipeline) materialize(ctx context.Context, url, filename string) Asset {
	data, err := p.download(ctx, url)
	if err != nil {
		p.logger.Warn().Err(err).Str("url", sanitizeURLForLog(url)).Msg("generation: download failed, passing through remote url")
		return Asset{URL: url}
	}
	if p.store == nil {
		return Asset{URL: url}
	}
	key, err := p.store.Write(ctx, filename, data)
	if err != nil {
		p.logger.Warn().Err(err).Str("filename", filename).Msg("generation: persist failed, passing through remote url")
		return Asset{URL: url}
	}
	p.logger.Info().Str("filename", filename).Msg("generation: asset persisted")
	return Asset{URL: p.store.PublicURL(key), Filename: filename, Persisted: true}
}

// download fetches the full byte content behind url. Binary payloads can be
// large, so the download client carries its own, longer timeout than the
// metadata calls.
func (p *Pipeline) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := p.downloads.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("fetch: empty body")
	}
	return data, nil
}

func (p *Pipeline) trackFilename(index int) string {
	return fmt.Sprintf("suno_track%d_%d.mp3", index, p.now().Unix())
}

func (p *Pipeline) coverFilename() string {
	return fmt.Sprintf("suno_cover_%d.jpeg", p.now().Unix())
}

func sanitizeURLForLog(url string) string {
	if i := strings.IndexByte(url, '?'); i >= 0 {
		return url[:i]
	}
	return url
}
