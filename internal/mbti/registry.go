package mbti

var index = func() map[string]int {
	m := make(map[string]int, len(catalog))
	for i, a := range catalog {
		m[a.Type] = i
	}
	return m
}()

// AllTypes returns the archetype codes in catalog order
func AllTypes() []string {
	types := make([]string, len(catalog))
	for i, a := range catalog {
		types[i] = a.Type
	}
	return types
}

// Create returns the archetype registered under typ
func Create(typ string) (Archetype, error) {
	i, ok := index[typ]
	if !ok {
		return Archetype{}, &UnknownArchetypeError{Type: typ}
	}
	return catalog[i], nil
}

// Profiles returns the scoring profile of every archetype in catalog order
func Profiles() []Profile {
	profiles := make([]Profile, len(catalog))
	for i, a := range catalog {
		profiles[i] = a.Profile()
	}
	return profiles
}

// Descriptions returns the display text of every archetype keyed by code
func Descriptions() map[string]Description {
	out := make(map[string]Description, len(catalog))
	for _, a := range catalog {
		out[a.Type] = a.Description
	}
	return out
}

// Describe returns the display text for a single archetype
func Describe(typ string) (Description, error) {
	a, err := Create(typ)
	if err != nil {
		return Description{}, err
	}
	return a.Description, nil
}

// Size returns the number of archetypes in the catalog
func Size() int {
	return len(catalog)
}

// LegacyTypes returns the codes of the four-type team roster
func LegacyTypes() []string {
	types := make([]string, len(legacyCatalog))
	for i, p := range legacyCatalog {
		types[i] = p.Name
	}
	return types
}

// LegacyProfiles returns the four-type team roster on the five-factor shape
func LegacyProfiles() []LegacyProfile {
	return append([]LegacyProfile(nil), legacyCatalog...)
}
