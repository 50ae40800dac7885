package internal

// SynthesizeIdent builds prefix + final segment of entry + suffix as a new
// identifier. The token is positioned at pos, the marker's position, not at
// the entry's declaration, so diagnostics point at the template.
func SynthesizeIdent(prefix string, entry SubstitutionEntry, suffix string, pos Position, lead string) (Token, error) {
	segment, ok := entry.FinalSegment()
	if !ok {
		return Token{}, NewInvalidShapeError(entry, pos)
	}
	ident := NewIdentToken(prefix+segment+suffix, pos)
	ident.Lead = lead
	return ident, nil
}
