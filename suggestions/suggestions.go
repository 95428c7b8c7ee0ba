package suggestions

import (
	"net/http"
	"sort"
	"strings"

	"github.com/julienschmidt/httprouter"

	"fjwuems/globals"
	"fjwuems/rdx"
	"fjwuems/utils"
)

const maxSuggestions = 10

// Suggestion is one autocomplete hit.
type Suggestion struct {
	EventID string `json:"eventid"`
	Title   string `json:"title"`
}

// SuggestEvents serves title autocomplete from the Redis hash the
// indexing worker maintains. Matching is a case-insensitive substring
// scan; the hash stays small enough that a full HGetAll is fine.
func SuggestEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	if query == "" {
		utils.RespondWithJSON(w, http.StatusOK, []Suggestion{})
		return
	}

	entries, err := rdx.Conn.HGetAll(globals.Ctx, "suggest:events").Result()
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Suggestion lookup failed")
		return
	}

	matches := []Suggestion{}
	for id, title := range entries {
		if strings.Contains(strings.ToLower(title), query) {
			matches = append(matches, Suggestion{EventID: id, Title: title})
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Title < matches[j].Title })
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}

	utils.RespondWithJSON(w, http.StatusOK, matches)
}
