package stats

import "github.com/tgriffin/lineupiq/internal/models"

// Universe enumerates the distinct (player, team) pairs with any
// statistical footprint in the target week or the look-back window.
// This is the reporting scope: players absent this week but seen
// recently still get a projected record. Discovery order is preserved
// (target week first, then look-back weeks oldest first); it fixes the
// tie order of the final sorted output.
func (s *Source) Universe(week, lookback int) []models.PlayerRef {
	seen := make(map[string]int) // key -> index into refs
	var refs []models.PlayerRef

	gather := func(w int) {
		for _, cat := range Categories {
			for _, r := range s.CategoryRows(cat, w) {
				name, team := Identity(r)
				if name == "" || team == "" {
					continue
				}
				ref := models.PlayerRef{Name: name, Team: team, RawPos: RowPos(r)}
				if i, ok := seen[ref.Key()]; ok {
					if refs[i].RawPos == "" && ref.RawPos != "" {
						refs[i].RawPos = ref.RawPos
					}
					continue
				}
				seen[ref.Key()] = len(refs)
				refs = append(refs, ref)
			}
		}
	}

	gather(week)
	start := week - lookback
	if start < 1 {
		start = 1
	}
	for w := start; w < week; w++ {
		gather(w)
	}

	return refs
}
