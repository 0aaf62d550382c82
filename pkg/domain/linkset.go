package domain

// LanguageValue is one title* entry: a title value tagged with its language.
type LanguageValue struct {
	Value    string `json:"value"`
	Language string `json:"language"`
}

// LinkTargetObject is one target descriptor inside a linkset group.
// EncryptionMethod, AccessRole, and Method are omitted entirely when unset;
// a literal "none" encryption method is preserved as-is.
type LinkTargetObject struct {
	Href             string          `json:"href"`
	Title            string          `json:"title,omitempty"`
	TitleStar        []LanguageValue `json:"title*,omitempty"`
	Type             string          `json:"type,omitempty"`
	Hreflang         []string        `json:"hreflang,omitempty"`
	EncryptionMethod string          `json:"encryptionMethod,omitempty"`
	AccessRole       []string        `json:"accessRole,omitempty"`
	Method           string          `json:"method,omitempty"`
	Rel              []string        `json:"rel,omitempty"`
}

// LinkContextObject is the wire-level linkset document: an anchor URI plus a
// mapping from extension-relation URI to ordered target descriptors. It is a
// derived, recomputable view and is never the source of truth for matching.
type LinkContextObject struct {
	Anchor    string
	Relations map[string][]LinkTargetObject
}

// MarshalJSON flattens the relation map next to the anchor key.
func (c LinkContextObject) MarshalJSON() ([]byte, error) {
	return marshalAnchored(c.Anchor, c.Relations)
}

// UnmarshalJSON restores the anchor and relation entries.
func (c *LinkContextObject) UnmarshalJSON(data []byte) error {
	anchor, relations, err := unmarshalAnchored(data)
	if err != nil {
		return err
	}
	c.Anchor = anchor
	c.Relations = relations
	return nil
}
