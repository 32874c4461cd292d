package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// PersonRecord is a sponsored individual as returned by the content API.
// Only ID is guaranteed; the name fields and creation time are optional.
type PersonRecord struct {
	ID        string
	FirstName string
	LastName  string
	CreatedAt *time.Time
}

// NormalizedName is the duplicate-detection key: first and last name joined
// by one space, trimmed and lowercased. Internal whitespace is kept as is.
func (p PersonRecord) NormalizedName() string {
	return NormalizeName(p.FirstName, p.LastName)
}

// NormalizeName builds the duplicate-detection key from raw name parts.
func NormalizeName(first, last string) string {
	return strings.ToLower(strings.TrimSpace(first + " " + last))
}

// CollectionResponse is the envelope of a content API collection query.
// Data is nil when the response carried no "data" field (or carried null).
type CollectionResponse struct {
	Data *[]CollectionItem `json:"data"`
	Meta *CollectionMeta   `json:"meta,omitempty"`
}

// CollectionMeta carries the pagination block when the API includes one.
type CollectionMeta struct {
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination mirrors the content API pagination metadata.
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// CollectionItem is one entry of the collection. Older API versions nest the
// fields under "attributes"; newer ones put them on the item itself.
type CollectionItem struct {
	ID         RecordID          `json:"id"`
	Attributes *PersonAttributes `json:"attributes,omitempty"`
	PersonAttributes
}

// PersonAttributes holds the optional person fields.
type PersonAttributes struct {
	FirstName *string    `json:"firstName,omitempty"`
	LastName  *string    `json:"lastName,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// ErrMissingID is returned when a collection item has no usable id.
var ErrMissingID = errors.New("record id missing")

// Record validates the item and converts it into a PersonRecord.
func (it CollectionItem) Record() (PersonRecord, error) {
	if it.ID == "" {
		return PersonRecord{}, ErrMissingID
	}

	attrs := it.PersonAttributes
	if it.Attributes != nil {
		attrs = *it.Attributes
	}

	return PersonRecord{
		ID:        string(it.ID),
		FirstName: deref(attrs.FirstName),
		LastName:  deref(attrs.LastName),
		CreatedAt: attrs.CreatedAt,
	}, nil
}

// RecordID is an opaque identifier. The content API emits numeric ids, some
// deployments emit strings; both decode to the same textual form.
type RecordID string

// UnmarshalJSON accepts a JSON number or string.
func (id *RecordID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = RecordID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("record id must be a number or string: %w", err)
	}
	*id = RecordID(n.String())
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
