package binder

// Names of the parts a multipart JSON:API request must carry.
const (
	PartEntity = "entity"
	PartFile   = "file"
)

// RequiredParts lists the required part names in the order they are checked.
var RequiredParts = []string{PartEntity, PartFile}

// PartSet maps a required part name to its part.
type PartSet map[string]*Part

// Entity returns the JSON:API document part.
func (s PartSet) Entity() *Part {
	return s[PartEntity]
}

// File returns the binary file part.
func (s PartSet) File() *Part {
	return s[PartFile]
}

// ExtractParts picks the required parts out of parsed parts.
// Extra parts are ignored. Bodies are not inspected.
// When a required part is absent it returns a *MissingRequiredPartError
// naming the first missing part, "entity" before "file".
func ExtractParts(parts []*Part) (PartSet, error) {
	byName := make(map[string]*Part, len(parts))
	for _, p := range parts {
		if p != nil {
			byName[p.Name] = p
		}
	}

	set := make(PartSet, len(RequiredParts))
	for _, name := range RequiredParts {
		p, ok := byName[name]
		if !ok {
			return nil, &MissingRequiredPartError{Name: name}
		}
		set[name] = p
	}

	return set, nil
}
