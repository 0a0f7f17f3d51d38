package checkout

// CartLine is one cart entry: a package plus how many of it. Quantity is
// always >= 1; removing the last unit removes the line.
type CartLine struct {
	Package
	Quantity int `json:"quantity"`
}

// mergeLine applies the add-to-cart rule: an existing line for the same
// package id gains one unit, otherwise a new line is appended.
func mergeLine(lines []CartLine, pkg Package) []CartLine {
	for i := range lines {
		if lines[i].ID == pkg.ID {
			lines[i].Quantity++
			return lines
		}
	}

	return append(lines, CartLine{Package: pkg, Quantity: 1})
}

// normalizeLines drops malformed persisted lines and clamps quantities,
// so a cart slot written by an older client still loads.
func normalizeLines(lines []CartLine) []CartLine {
	out := lines[:0]

	for _, l := range lines {
		if l.Validate() != nil {
			continue
		}
		if l.Quantity < 1 {
			l.Quantity = 1
		}

		out = append(out, l)
	}

	return out
}

func totalCents(lines []CartLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.PriceCents * int64(l.Quantity)
	}

	return total
}
