package hbapi

import (
	"encoding/json"
	"strconv"
)

// SiteType selects the provisioning mode for a new site.
type SiteType string

const (
	// SiteTypeNew provisions an empty site.
	SiteTypeNew SiteType = "new"

	// SiteTypeClone provisions a copy of an existing site. It is only valid
	// through SitesClient.Clone, never through Create.
	SiteTypeClone SiteType = "clone"
)

// ID is a remote resource identifier. The API is inconsistent about whether
// it serializes ids as numbers or digit strings, so ID decodes both.
type ID int64

// UnmarshalJSON accepts both 42 and "42".
func (id *ID) UnmarshalJSON(data []byte) error {
	var raw json.Number

	err := json.Unmarshal(data, &raw)
	if err != nil {
		// Quoted string form.
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		raw = json.Number(s)
	}

	n, err := raw.Int64()
	if err != nil {
		return err
	}

	*id = ID(n)

	return nil
}

// String returns the decimal form used in request paths.
func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// SiteRecord is the raw site resource as returned by the sites endpoints.
type SiteRecord struct {
	ID      ID     `json:"id"                yaml:"id"`
	Name    string `json:"name"              yaml:"name"`
	StackID ID     `json:"stack_id"          yaml:"stack_id"`
	Type    string `json:"type,omitempty"    yaml:"type,omitempty"`
	Created string `json:"created,omitempty" yaml:"created,omitempty"`
}

// MetadataRecord is one metadata entry for a site. The provider returns
// arbitrary keys; tags and domains are carried inside and split out by the
// Site wrapper.
type MetadataRecord struct {
	SiteID ID                     `json:"site_id"           yaml:"site_id"`
	Fields map[string]interface{} `json:"fields"            yaml:"fields"`
	Tags   []TagRecord            `json:"tags,omitempty"    yaml:"tags,omitempty"`
	Dom    []DomainRecord         `json:"domains,omitempty" yaml:"domains,omitempty"`
}

// TagRecord is a tag as returned by the tags endpoints (name + id pair).
type TagRecord struct {
	ID   ID     `json:"id"   yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// DomainRecord is a hostname bound to a site. At most one record per site
// carries Primary=true.
type DomainRecord struct {
	ID      ID     `json:"id"                 yaml:"id"`
	Name    string `json:"domain"             yaml:"domain"`
	Primary bool   `json:"primary"            yaml:"primary"`
	SiteID  ID     `json:"site_id,omitempty"  yaml:"site_id,omitempty"`
	Created string `json:"created,omitempty"  yaml:"created,omitempty"`
}

// TagMap maps tag names to their remote ids.
type TagMap map[string]ID

// Envelope is the uniform response wrapper every endpoint returns.
type Envelope struct {
	Success *bool           `json:"success"`
	Result  json.RawMessage `json:"result"`
}
