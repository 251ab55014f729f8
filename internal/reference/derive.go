package reference

// Derive expands provider records into entries, in provider order.
//
// A record with neither root nor suffixes yields one entry with an empty code.
// Otherwise each suffix yields root+suffix; a root without suffixes yields nothing.
func Derive(countries []ProviderCountry) []CountryEntry {
	entries := make([]CountryEntry, 0, len(countries))
	for _, c := range countries {
		if c.Root == "" && len(c.Suffixes) == 0 {
			entries = append(entries, CountryEntry{Name: c.Name})
			continue
		}
		for _, suffix := range c.Suffixes {
			entries = append(entries, CountryEntry{Name: c.Name, CallingCode: c.Root + suffix})
		}
	}
	return entries
}
