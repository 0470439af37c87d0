package layout

import "github.com/median-ltd/invoice-studio/internal/domain/entity"

// Paginate trocea la lista de ítems de forma codiciosa: hasta first ítems en
// la primera página y hasta other en cada una de las siguientes. La
// concatenación de los trozos reproduce la lista original exactamente una
// vez, en orden, sin huecos ni duplicados. Una lista vacía produce
// exactamente una página vacía.
func Paginate(items []entity.LineItem, first, other int) [][]entity.LineItem {
	if first < 1 {
		first = 1
	}
	if other < 1 {
		other = 1
	}

	var pages [][]entity.LineItem
	start := 0

	end := min(len(items), first)
	pages = append(pages, items[start:end])
	start = end

	for start < len(items) {
		end = min(len(items), start+other)
		pages = append(pages, items[start:end])
		start = end
	}
	return pages
}
