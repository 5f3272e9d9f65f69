package generation

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/culturahq/cultura-api/internal/domain"
)

// generatedPayload is the JSON object the model is instructed to return:
// one array of enriched items per category.
type generatedPayload struct {
	Movies []domain.GeneratedMediaItem `json:"movies"`
	Series []domain.GeneratedMediaItem `json:"series"`
	Music  []domain.GeneratedMediaItem `json:"music"`
	Books  []domain.GeneratedMediaItem `json:"books"`
}

// maxItemsPerCategory caps how many generated items a category keeps.
const maxItemsPerCategory = 3

// ExtractResult is the outcome of extracting structured data from a model
// reply. Extraction never fails: when the reply cannot be used, Enhanced
// is false and CardData carries the caller's original values unchanged.
type ExtractResult struct {
	CardData domain.CardData
	Enhanced bool
}

// ExtractCardData parses the raw model reply into enhanced card data.
// The reply may wrap the JSON object in prose; the slice between the
// first '{' and the last '}' is what gets parsed. Each category's items
// are re-serialized as a JSON array string into the matching field,
// falling back per field to the original value when a category came back
// empty.
func ExtractCardData(content string, original domain.CardData, log *slog.Logger) ExtractResult {
	if log == nil {
		log = slog.Default()
	}

	fallback := ExtractResult{CardData: original, Enhanced: false}

	if strings.TrimSpace(content) == "" {
		log.Debug("model reply has no content, keeping original card data")
		return fallback
	}

	first := strings.IndexByte(content, '{')
	last := strings.LastIndexByte(content, '}')
	if first == -1 || last == -1 || last <= first {
		log.Warn("model reply contains no JSON object, keeping original card data")
		return fallback
	}

	var payload generatedPayload
	if err := json.Unmarshal([]byte(content[first:last+1]), &payload); err != nil {
		log.Warn("failed to parse model reply as JSON, keeping original card data",
			slog.String("error", err.Error()))
		return fallback
	}

	if payload.Movies == nil || payload.Series == nil || payload.Music == nil || payload.Books == nil {
		log.Warn("model reply is missing required category arrays, keeping original card data")
		return fallback
	}

	return ExtractResult{
		CardData: domain.CardData{
			Movies: serializeCategory(payload.Movies, original.Movies),
			Series: serializeCategory(payload.Series, original.Series),
			Music:  serializeCategory(payload.Music, original.Music),
			Books:  serializeCategory(payload.Books, original.Books),
		},
		Enhanced: true,
	}
}

// serializeCategory renders a category's items back to a JSON array
// string, truncated to the allowed maximum. An empty category falls back
// to the original field value.
func serializeCategory(items []domain.GeneratedMediaItem, original string) string {
	if len(items) == 0 {
		return original
	}

	if len(items) > maxItemsPerCategory {
		items = items[:maxItemsPerCategory]
	}

	encoded, err := json.Marshal(items)
	if err != nil {
		// Marshalling plain structs cannot realistically fail; keep the
		// original value rather than propagate.
		return original
	}

	return string(encoded)
}
