package fleet

import (
	"sort"
	"strings"

	"github.com/motovision/motovision/internal/api"
	"github.com/motovision/motovision/internal/status"
)

// Section is one yard's slice of the grouped vehicle list.
type Section struct {
	Titulo string
	Motos  []api.Moto
}

// GroupByPatio partitions vehicles into sections keyed by yard name.
// Vehicles without a yard fall into a placeholder section titled with the
// given label. Sections are sorted by title ascending; within a section
// vehicles are ordered by derived sector, then plate, for a stable layout.
func GroupByPatio(motos []api.Moto, unknownLabel string) []Section {
	byYard := make(map[string][]api.Moto)
	for _, m := range motos {
		title := strings.TrimSpace(m.NomePatio)
		if title == "" {
			title = unknownLabel
		}
		byYard[title] = append(byYard[title], m)
	}

	sections := make([]Section, 0, len(byYard))
	for title, group := range byYard {
		sort.Slice(group, func(i, j int) bool {
			si, sj := setorRank(group[i].Status), setorRank(group[j].Status)
			if si != sj {
				return si < sj
			}
			return group[i].Placa < group[j].Placa
		})
		sections = append(sections, Section{Titulo: title, Motos: group})
	}

	sort.Slice(sections, func(i, j int) bool {
		return sections[i].Titulo < sections[j].Titulo
	})
	return sections
}

// setorRank orders vehicles by the sector derived from their status.
// Unrecognized statuses sort after sector G.
func setorRank(s string) string {
	if p := status.SetorPreview(s); p != nil {
		return p.Setor
	}
	return "Z"
}
