package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RecordMeta captures identifiers and audit fields shared across entities.
type RecordMeta struct {
	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"updated_at"`
	DeletedAt time.Time `bun:",soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// EnsureID assigns a UUID when the struct is about to be persisted.
func (m *RecordMeta) EnsureID() {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
}

// StringList stores []string as JSON.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	return json.Marshal([]string(s))
}

func (s *StringList) Scan(value any) error {
	if s == nil {
		return errors.New("StringList: Scan on nil pointer")
	}
	switch v := value.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		return json.Unmarshal(v, (*[]string)(s))
	case string:
		return json.Unmarshal([]byte(v), (*[]string)(s))
	default:
		return fmt.Errorf("StringList: unsupported type %T", value)
	}
}

// LinkRecord is one registered target for an identifier. The four default
// flags are scoped increasingly narrow: DefaultLinkType over the whole record
// set, DefaultIanaLanguage within a link type, DefaultContext within a
// link type + language, DefaultMimeType within link type + language + context.
type LinkRecord struct {
	LinkID           string     `json:"linkId,omitempty"`
	TargetURL        string     `json:"targetUrl"`
	Title            string     `json:"title,omitempty"`
	LinkType         string     `json:"linkType,omitempty"`
	IanaLanguage     string     `json:"ianaLanguage,omitempty"`
	Context          string     `json:"context,omitempty"`
	MimeType         string     `json:"mimeType,omitempty"`
	Active           bool       `json:"active"`
	FWQS             bool       `json:"fwqs"`
	DefaultLinkType  bool       `json:"defaultLinkType"`
	DefaultIanaLang  bool       `json:"defaultIanaLanguage"`
	DefaultContext   bool       `json:"defaultContext"`
	DefaultMimeType  bool       `json:"defaultMimeType"`
	EncryptionMethod string     `json:"encryptionMethod,omitempty"`
	AccessRole       StringList `json:"accessRole,omitempty"`
	Method           string     `json:"method,omitempty"`
	CreatedAt        time.Time  `json:"createdAt,omitempty"`
	UpdatedAt        time.Time  `json:"updatedAt,omitempty"`
}

// IsPublic reports whether the link is visible without an access role.
func (l LinkRecord) IsPublic() bool {
	return len(l.AccessRole) == 0
}

// HasAccessRole reports whether the normalized role URI grants visibility.
func (l LinkRecord) HasAccessRole(role string) bool {
	for _, r := range l.AccessRole {
		if r == role {
			return true
		}
	}
	return false
}

// LinkRecordList persists []LinkRecord as a JSON column.
type LinkRecordList []LinkRecord

func (l LinkRecordList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("null"), nil
	}
	return json.Marshal([]LinkRecord(l))
}

func (l *LinkRecordList) Scan(value any) error {
	if l == nil {
		return errors.New("LinkRecordList: Scan on nil pointer")
	}
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, (*[]LinkRecord)(l))
	case string:
		return json.Unmarshal([]byte(v), (*[]LinkRecord)(l))
	default:
		return fmt.Errorf("LinkRecordList: unsupported type %T", value)
	}
}

// Clone returns a deep copy so callers can mutate without aliasing storage.
func (l LinkRecordList) Clone() LinkRecordList {
	if l == nil {
		return nil
	}
	out := make(LinkRecordList, len(l))
	for i, rec := range l {
		out[i] = rec
		out[i].AccessRole = append(StringList(nil), rec.AccessRole...)
	}
	return out
}

// ActiveOnly returns the active records, preserving input order.
func (l LinkRecordList) ActiveOnly() LinkRecordList {
	out := make(LinkRecordList, 0, len(l))
	for _, rec := range l {
		if rec.Active {
			out = append(out, rec)
		}
	}
	return out
}

// LinkChange records one link mutation inside a version history entry. The
// Previous* fields snapshot the state before an update; a change carrying a
// PreviousTargetURL is a traceable prior target for that link id.
type LinkChange struct {
	LinkID               string `json:"linkId"`
	Action               string `json:"action"`
	PreviousTargetURL    string `json:"previousTargetUrl,omitempty"`
	PreviousMimeType     string `json:"previousMimeType,omitempty"`
	PreviousIanaLanguage string `json:"previousIanaLanguage,omitempty"`
	PreviousLinkType     string `json:"previousLinkType,omitempty"`
	PreviousContext      string `json:"previousContext,omitempty"`
}

// VersionHistoryEntry groups the changes applied by one mutation.
type VersionHistoryEntry struct {
	Version   int          `json:"version"`
	UpdatedAt time.Time    `json:"updatedAt"`
	Changes   []LinkChange `json:"changes"`
}

// VersionHistoryList persists []VersionHistoryEntry as a JSON column.
// History is append-only and owned by the identifier record.
type VersionHistoryList []VersionHistoryEntry

func (v VersionHistoryList) Value() (driver.Value, error) {
	if v == nil {
		return []byte("null"), nil
	}
	return json.Marshal([]VersionHistoryEntry(v))
}

func (v *VersionHistoryList) Scan(value any) error {
	if v == nil {
		return errors.New("VersionHistoryList: Scan on nil pointer")
	}
	switch val := value.(type) {
	case nil:
		*v = nil
		return nil
	case []byte:
		return json.Unmarshal(val, (*[]VersionHistoryEntry)(v))
	case string:
		return json.Unmarshal([]byte(val), (*[]VersionHistoryEntry)(v))
	default:
		return fmt.Errorf("VersionHistoryList: unsupported type %T", value)
	}
}

// IdentifierRecord owns the ordered links registered for one identifier.
// QualifierPath is a /key/value/key/value... string, "/" when unqualified.
type IdentifierRecord struct {
	bun.BaseModel `bun:"table:identifier_records"`
	RecordMeta

	Namespace         string             `bun:",nullzero,notnull,unique:identifier_key" json:"namespace"`
	IdentificationKey string             `bun:",nullzero,notnull,unique:identifier_key" json:"identificationKey"`
	Qualifier         string             `bun:",nullzero,notnull,unique:identifier_key" json:"qualifier"`
	QualifierPath     string             `bun:",nullzero,notnull,default:'/',unique:identifier_key" json:"qualifierPath"`
	Active            bool               `bun:",nullzero" json:"active"`
	Version           int                `bun:",nullzero" json:"version,omitempty"`
	Links             LinkRecordList     `bun:"type:jsonb,nullzero" json:"links"`
	VersionHistory    VersionHistoryList `bun:"type:jsonb,nullzero" json:"versionHistory,omitempty"`
	// CachedLinkset is a stale artifact left by older writers; resolution
	// never trusts it and strips it opportunistically on read.
	CachedLinkset json.RawMessage `bun:"linkset,type:jsonb,nullzero" json:"linkset,omitempty"`
}

// FindLink returns the link with the given id, or nil.
func (r *IdentifierRecord) FindLink(linkID string) *LinkRecord {
	for i := range r.Links {
		if r.Links[i].LinkID == linkID {
			return &r.Links[i]
		}
	}
	return nil
}

// LanguageContext pairs a requested language with a context token.
type LanguageContext struct {
	IanaLanguage string `json:"ianaLanguage"`
	Context      string `json:"context"`
}

// DescriptiveAttributes carries the request's content-negotiation inputs.
type DescriptiveAttributes struct {
	LinkType             string            `json:"linkType,omitempty"`
	AccessRole           string            `json:"accessRole,omitempty"`
	MimeTypes            []string          `json:"mimeTypes,omitempty"`
	IanaLanguageContexts []LanguageContext `json:"ianaLanguageContexts,omitempty"`
}

// ResolvedLink is the unified resolution result handed to transports.
type ResolvedLink struct {
	TargetURL          string       `json:"targetUrl,omitempty"`
	MimeType           string       `json:"mimeType"`
	Data               ResolvedData `json:"data"`
	FWQS               bool         `json:"fwqs,omitempty"`
	LinkHeaderText     string       `json:"linkHeaderText"`
	LinkHeaderTextFull string       `json:"linkHeaderTextFull"`
}

// ResolvedData wraps the linkset documents included in the response body.
type ResolvedData struct {
	Linkset []LinkContextObject `json:"linkset"`
}

// Change actions recorded in version history.
const (
	ChangeActionCreated     = "created"
	ChangeActionUpdated     = "updated"
	ChangeActionSoftDeleted = "soft_deleted"
	ChangeActionHardDeleted = "hard_deleted"

	// LinkTypeAll requests the full linkset instead of a single target.
	LinkTypeAll = "all"
)

// ScopeKey joins lowercased parts into a case-insensitive grouping key.
func ScopeKey(parts ...string) string {
	lowered := make([]string, len(parts))
	for i, part := range parts {
		lowered[i] = strings.ToLower(part)
	}
	return strings.Join(lowered, "|")
}
