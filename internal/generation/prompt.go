package generation

import (
	"fmt"
	"strings"

	"github.com/culturahq/cultura-api/internal/domain"
)

// SystemMessage is the system prompt fixed for all enhancement calls.
const SystemMessage = "You are a cultural content expert that enhances and structures " +
	"information about movies, series, music, and books. For each category, extract and " +
	"enhance information including titles, years, genres and descriptions. ALWAYS respond " +
	"with valid JSON in the exact format described in the user prompt. Do not include any " +
	"explanation or formatting outside of the JSON."

// promptTemplate carries the instruction block sent with every
// enhancement request. The four %s verbs receive the user's category
// values.
const promptTemplate = `Analyze the user's cultural items (movies, TV series, music, books) and return them in a structured JSON format.

Parse the user's input for each category and return up to 3 items per category with the following information:
1. Title
2. Year of release/publication
3. One or two genres
4. A 1-2 sentence personal note explaining why it's interesting
5. Image URL - must be a real, valid URL starting with https:// (use null if not available)
6. Info URL - must be a real, valid URL starting with https:// (use null if not available)

Here is the user's content:
MOVIES: %s
SERIES: %s
MUSIC: %s
BOOKS: %s

Return your response as a JSON object with EXACTLY this structure:
{
  "movies": [{"title": "...", "year": 2023, "genres": ["..."], "note": "...", "imageUrl": "https://..." , "infoUrl": "https://..."}],
  "series": [...],
  "music": [...],
  "books": [...]
}

IMPORTANT:
- For imageUrl and infoUrl, provide ONLY real, valid URLs starting with https://
- If you cannot provide a real URL, set the value to the JSON null value (not the string "null")
- For movies and series, prefer IMDb URLs (e.g. https://www.imdb.com/...)
- For books, prefer Goodreads URLs
- Do not use placeholder text or template strings
- Ensure your response is ONLY valid JSON with no additional text or comments`

// BuildPrompt turns card data into the single instruction string sent as
// the user message. It trusts the caller-supplied data and has no side
// effects.
func BuildPrompt(data domain.CardData) string {
	return fmt.Sprintf(promptTemplate,
		strings.TrimSpace(data.Movies),
		strings.TrimSpace(data.Series),
		strings.TrimSpace(data.Music),
		strings.TrimSpace(data.Books),
	)
}
