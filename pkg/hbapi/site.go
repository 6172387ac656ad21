package hbapi

import (
	"context"
	"sync"
)

// SiteOperations is the per-site remote surface the Site wrapper delegates
// to. It is implemented by the sites client in internal/client; Sites are
// only built from resource-client results, never assembled by hand.
type SiteOperations interface {
	Metadata(ctx context.Context, id ID) ([]MetadataRecord, error)
	AddTag(ctx context.Context, id ID, tag string) (TagMap, error)
	DeleteTag(ctx context.Context, id ID, tagID ID) (bool, error)
	AddDomain(ctx context.Context, id ID, hostname string) (ID, error)
	SetPrimaryDomain(ctx context.Context, id ID, domainID ID) (bool, error)
	DeleteDomain(ctx context.Context, id ID, domainID ID) (bool, error)
	Clone(ctx context.Context, name string, stackID ID, sourceID ID) (*Site, error)
	Delete(ctx context.Context, id ID) (bool, error)
}

// Site presents one remote site as a local object. Metadata, tags, and
// domains are fetched together on first access and cached; mutations go
// through the remote API and update the shadow copy only on success.
//
// A Site is safe for concurrent use; all state is guarded by one lock.
// After a successful Delete every method fails with ErrorKindSiteDeleted.
type Site struct {
	mu  sync.Mutex
	ops SiteOperations
	rec SiteRecord

	metadata map[string]interface{}
	tags     TagMap
	domains  map[string]DomainRecord
	fetched  bool
	deleted  bool
}

// NewSite wraps a raw site record. ops must not be nil: sites are built by
// the sites client, which passes itself in.
func NewSite(ops SiteOperations, rec SiteRecord) (*Site, error) {
	if ops == nil {
		return nil, ErrNilOperations
	}

	return &Site{
		ops:      ops,
		rec:      rec,
		metadata: make(map[string]interface{}),
		tags:     make(TagMap),
		domains:  make(map[string]DomainRecord),
	}, nil
}

// ID returns the site's remote identifier.
func (s *Site) ID() ID {
	return s.rec.ID
}

// Name returns the site name.
func (s *Site) Name() string {
	return s.rec.Name
}

// StackID returns the id of the stack hosting the site.
func (s *Site) StackID() ID {
	return s.rec.StackID
}

// Record returns a copy of the raw site record.
func (s *Site) Record() SiteRecord {
	return s.rec
}

func (s *Site) failIfDeletedLocked() error {
	if s.deleted {
		return NewError(ErrorKindSiteDeleted, "site %s is deleted", s.rec.ID)
	}

	return nil
}

// ensureShadowLocked performs the one-time metadata fetch that populates
// metadata, tags, and domains together. Callers hold s.mu.
func (s *Site) ensureShadowLocked(ctx context.Context) error {
	if s.fetched {
		return nil
	}

	records, err := s.ops.Metadata(ctx, s.rec.ID)
	if err != nil {
		return err
	}

	if len(records) != 1 {
		return NewError(ErrorKindMalformedResponse,
			"expected exactly one metadata record for site %s, got %d", s.rec.ID, len(records))
	}

	record := records[0]

	s.metadata = make(map[string]interface{}, len(record.Fields))
	for k, v := range record.Fields {
		s.metadata[k] = v
	}

	s.tags = make(TagMap, len(record.Tags))
	for _, tag := range record.Tags {
		s.tags[tag.Name] = tag.ID
	}

	s.domains = make(map[string]DomainRecord, len(record.Dom))
	for _, dom := range record.Dom {
		s.domains[dom.Name] = dom
	}

	s.fetched = true

	return nil
}

// Metadata returns the site's metadata map, fetching it on first access.
func (s *Site) Metadata(ctx context.Context) (map[string]interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failIfDeletedLocked(); err != nil {
		return nil, err
	}

	if err := s.ensureShadowLocked(ctx); err != nil {
		return nil, err
	}

	out := make(map[string]interface{}, len(s.metadata))
	for k, v := range s.metadata {
		out[k] = v
	}

	return out, nil
}

// Tags returns the site's tag map (name to id), fetching metadata on first
// access. The fetch is shared with Metadata and Domains: at most one network
// call populates all three.
func (s *Site) Tags(ctx context.Context) (TagMap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failIfDeletedLocked(); err != nil {
		return nil, err
	}

	if err := s.ensureShadowLocked(ctx); err != nil {
		return nil, err
	}

	return s.copyTagsLocked(), nil
}

func (s *Site) copyTagsLocked() TagMap {
	out := make(TagMap, len(s.tags))
	for name, id := range s.tags {
		out[name] = id
	}

	return out
}

// Domains returns the site's domain records keyed by hostname, fetching
// metadata on first access.
func (s *Site) Domains(ctx context.Context) (map[string]DomainRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failIfDeletedLocked(); err != nil {
		return nil, err
	}

	if err := s.ensureShadowLocked(ctx); err != nil {
		return nil, err
	}

	return s.copyDomainsLocked(), nil
}

func (s *Site) copyDomainsLocked() map[string]DomainRecord {
	out := make(map[string]DomainRecord, len(s.domains))
	for name, dom := range s.domains {
		out[name] = dom
	}

	return out
}

// AddTag attaches a tag to the site. The server returns the full tag list,
// which replaces the local cache wholesale, so stale local tags are dropped.
func (s *Site) AddTag(ctx context.Context, tag string) (TagMap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failIfDeletedLocked(); err != nil {
		return nil, err
	}

	tags, err := s.ops.AddTag(ctx, s.rec.ID, tag)
	if err != nil {
		return nil, err
	}

	s.tags = make(TagMap, len(tags))
	for name, id := range tags {
		s.tags[name] = id
	}

	return s.copyTagsLocked(), nil
}

// DeleteTag detaches a tag by name. Unknown names are a no-op. The local
// entry is removed only when the server confirms the deletion.
func (s *Site) DeleteTag(ctx context.Context, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failIfDeletedLocked(); err != nil {
		return err
	}

	if err := s.ensureShadowLocked(ctx); err != nil {
		return err
	}

	tagID, ok := s.tags[tag]
	if !ok {
		return nil
	}

	deleted, err := s.ops.DeleteTag(ctx, s.rec.ID, tagID)
	if err != nil {
		return err
	}

	if deleted {
		delete(s.tags, tag)
	}

	return nil
}

// AddDomain binds a hostname to the site and records it locally with the id
// the server returned.
func (s *Site) AddDomain(ctx context.Context, hostname string) (DomainRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failIfDeletedLocked(); err != nil {
		return DomainRecord{}, err
	}

	domainID, err := s.ops.AddDomain(ctx, s.rec.ID, hostname)
	if err != nil {
		return DomainRecord{}, err
	}

	dom := DomainRecord{ID: domainID, Name: hostname, SiteID: s.rec.ID}
	s.domains[hostname] = dom

	return dom, nil
}

// SetPrimaryDomain makes hostname the site's canonical domain. The hostname
// must already be attached to the site. Calling it for the current primary
// is a no-op with no network call. On success the previous primary is
// demoted and the new one promoted in one step, so at most one domain is
// ever primary.
func (s *Site) SetPrimaryDomain(ctx context.Context, hostname string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failIfDeletedLocked(); err != nil {
		return err
	}

	if err := s.ensureShadowLocked(ctx); err != nil {
		return err
	}

	return s.promoteLocked(ctx, hostname)
}

func (s *Site) promoteLocked(ctx context.Context, hostname string) error {
	target, ok := s.domains[hostname]
	if !ok {
		return NewError(ErrorKindDomainNotFound, "domain %q is not attached to site %s", hostname, s.rec.ID)
	}

	if target.Primary {
		return nil
	}

	changed, err := s.ops.SetPrimaryDomain(ctx, s.rec.ID, target.ID)
	if err != nil {
		return err
	}

	if !changed {
		return nil
	}

	for name, dom := range s.domains {
		if dom.Primary {
			dom.Primary = false
			s.domains[name] = dom
		}
	}

	target.Primary = true
	s.domains[hostname] = target

	return nil
}

// DeleteDomain unbinds a hostname from the site. Unknown hostnames are a
// no-op. The remote API rejects deleting the primary domain, so when the
// target is primary another domain is promoted first; deleting the site's
// only domain is rejected outright rather than left to the server.
func (s *Site) DeleteDomain(ctx context.Context, hostname string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failIfDeletedLocked(); err != nil {
		return err
	}

	if err := s.ensureShadowLocked(ctx); err != nil {
		return err
	}

	target, ok := s.domains[hostname]
	if !ok {
		return nil
	}

	if target.Primary {
		replacement := ""

		for name := range s.domains {
			if name != hostname {
				replacement = name

				break
			}
		}

		if replacement == "" {
			return NewError(ErrorKindInvalidArgument,
				"cannot delete %q: it is the only domain of site %s", hostname, s.rec.ID)
		}

		if err := s.promoteLocked(ctx, replacement); err != nil {
			return err
		}
	}

	deleted, err := s.ops.DeleteDomain(ctx, s.rec.ID, target.ID)
	if err != nil {
		return err
	}

	if deleted {
		delete(s.domains, hostname)
	}

	return nil
}

// Clone provisions a copy of this site on the given stack.
func (s *Site) Clone(ctx context.Context, name string, stackID ID) (*Site, error) {
	s.mu.Lock()

	if err := s.failIfDeletedLocked(); err != nil {
		s.mu.Unlock()

		return nil, err
	}

	id := s.rec.ID
	s.mu.Unlock()

	// Clone runs unlocked: it only reads the id and the remote call can be
	// slow.
	return s.ops.Clone(ctx, name, stackID, id)
}

// Delete removes the site remotely. On confirmed success the object becomes
// terminally unusable; on failure it stays usable.
func (s *Site) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failIfDeletedLocked(); err != nil {
		return err
	}

	deleted, err := s.ops.Delete(ctx, s.rec.ID)
	if err != nil {
		return err
	}

	if deleted {
		s.deleted = true
	}

	return nil
}

// Deleted reports whether the site was deleted through this object.
func (s *Site) Deleted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deleted
}
