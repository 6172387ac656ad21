package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/hostbridge-io/hbapi/internal/constants"
	"github.com/hostbridge-io/hbapi/pkg/hbapi"
)

// sitesCacheKey is the cache key holding the serialized site listing.
const sitesCacheKey = "sites"

// SitesClient implements hbapi.SitesClient. It also implements
// hbapi.SiteOperations, so every Site it hands out delegates its mutations
// back here.
type SitesClient struct {
	session *Client
}

var _ hbapi.SiteOperations = (*SitesClient)(nil)

func (c *SitesClient) wrap(records []hbapi.SiteRecord) ([]*hbapi.Site, error) {
	sites := make([]*hbapi.Site, 0, len(records))

	for _, rec := range records {
		site, err := hbapi.NewSite(c, rec)
		if err != nil {
			return nil, err
		}

		sites = append(sites, site)
	}

	return sites, nil
}

// List returns all sites of the account. The listing is fetched once and
// then served from the cache until a successful Create, Clone, or Delete
// invalidates it; it is never refreshed automatically.
func (c *SitesClient) List(ctx context.Context) ([]*hbapi.Site, error) {
	transport, err := c.session.session()
	if err != nil {
		return nil, err
	}

	if entry, err := c.session.cache.Get(ctx, sitesCacheKey); err == nil {
		var records []hbapi.SiteRecord

		if err := json.Unmarshal(entry.Data, &records); err == nil {
			return c.wrap(records)
		}
		// Undecodable cache entry: fall through to a fresh fetch.
	}

	resp, err := transport.Get(ctx, c.session.path(constants.PathSites), nil)
	if err != nil {
		return nil, fmt.Errorf("listing sites: %w", err)
	}

	records, err := decodeResult[[]hbapi.SiteRecord](resp, "listing sites")
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(records); err == nil {
		_ = c.session.cache.Set(ctx, sitesCacheKey, &hbapi.CacheEntry{
			Data:      data,
			ExpiresAt: time.Now().Add(constants.DefaultCacheTTL),
		})
	}

	return c.wrap(records)
}

// Get returns the cached site with the given id, listing first if needed.
func (c *SitesClient) Get(ctx context.Context, id hbapi.ID) (*hbapi.Site, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}

	sites, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, site := range sites {
		if site.ID() == id {
			return site, nil
		}
	}

	return nil, hbapi.NewError(hbapi.ErrorKindRequestFailed, "site %s not found", id)
}

// Metadata returns the raw metadata records for a site.
func (c *SitesClient) Metadata(ctx context.Context, id hbapi.ID) ([]hbapi.MetadataRecord, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}

	transport, err := c.session.session()
	if err != nil {
		return nil, err
	}

	resp, err := transport.Get(ctx, c.session.path(constants.PathSites+"/"+id.String()), nil)
	if err != nil {
		return nil, fmt.Errorf("getting site metadata: %w", err)
	}

	return decodeResult[[]hbapi.MetadataRecord](resp, "getting site metadata")
}

func (c *SitesClient) create(ctx context.Context, op string, params url.Values) (*hbapi.Site, error) {
	transport, err := c.session.session()
	if err != nil {
		return nil, err
	}

	resp, err := transport.Post(ctx, c.session.path(constants.PathSites), params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	record, err := decodeResult[hbapi.SiteRecord](resp, op)
	if err != nil {
		return nil, err
	}

	// The listing no longer matches remote state; drop it so the next List
	// refetches.
	_ = c.session.cache.Delete(ctx, sitesCacheKey)

	return hbapi.NewSite(c, record)
}

// Create provisions a new site on the given stack. Cloning goes through
// Clone, never through Create.
func (c *SitesClient) Create(ctx context.Context, name string, stackID hbapi.ID, siteType hbapi.SiteType) (*hbapi.Site, error) {
	if err := ValidateSiteName(name); err != nil {
		return nil, err
	}

	if err := ValidateID(stackID); err != nil {
		return nil, err
	}

	if siteType == hbapi.SiteTypeClone {
		return nil, hbapi.NewError(hbapi.ErrorKindInvalidArgument,
			"site type %q requires Clone with a source site", siteType)
	}

	if siteType == "" {
		siteType = hbapi.SiteTypeNew
	}

	params := url.Values{}
	params.Set("name", name)
	params.Set("stack_id", stackID.String())
	params.Set("type", string(siteType))

	return c.create(ctx, "creating site", params)
}

// Clone provisions a copy of the source site on the given stack.
func (c *SitesClient) Clone(ctx context.Context, name string, stackID hbapi.ID, sourceID hbapi.ID) (*hbapi.Site, error) {
	if err := ValidateSiteName(name); err != nil {
		return nil, err
	}

	if err := ValidateID(stackID); err != nil {
		return nil, err
	}

	if err := ValidateID(sourceID); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("name", name)
	params.Set("stack_id", stackID.String())
	params.Set("type", string(hbapi.SiteTypeClone))
	params.Set("source_id", sourceID.String())

	return c.create(ctx, "cloning site", params)
}

// Delete removes a site and returns the server's confirmation. The listing
// cache is invalidated only when the server confirms.
func (c *SitesClient) Delete(ctx context.Context, id hbapi.ID) (bool, error) {
	if err := ValidateID(id); err != nil {
		return false, err
	}

	transport, err := c.session.session()
	if err != nil {
		return false, err
	}

	resp, err := transport.Delete(ctx, c.session.path(constants.PathSites+"/"+id.String()), nil)
	if err != nil {
		return false, fmt.Errorf("deleting site: %w", err)
	}

	deleted, err := decodeResult[bool](resp, "deleting site")
	if err != nil {
		return false, err
	}

	if deleted {
		_ = c.session.cache.Delete(ctx, sitesCacheKey)
	}

	return deleted, nil
}

// SiteOperations delegates: tag and domain mutations initiated through a
// Site go through the session's tags/domains clients.

// AddTag implements hbapi.SiteOperations.
func (c *SitesClient) AddTag(ctx context.Context, id hbapi.ID, tag string) (hbapi.TagMap, error) {
	return c.session.tags.Add(ctx, id, tag)
}

// DeleteTag implements hbapi.SiteOperations.
func (c *SitesClient) DeleteTag(ctx context.Context, id hbapi.ID, tagID hbapi.ID) (bool, error) {
	return c.session.tags.Delete(ctx, id, tagID)
}

// AddDomain implements hbapi.SiteOperations.
func (c *SitesClient) AddDomain(ctx context.Context, id hbapi.ID, hostname string) (hbapi.ID, error) {
	return c.session.domains.Add(ctx, id, hostname)
}

// SetPrimaryDomain implements hbapi.SiteOperations.
func (c *SitesClient) SetPrimaryDomain(ctx context.Context, id hbapi.ID, domainID hbapi.ID) (bool, error) {
	return c.session.domains.SetPrimary(ctx, id, domainID)
}

// DeleteDomain implements hbapi.SiteOperations.
func (c *SitesClient) DeleteDomain(ctx context.Context, id hbapi.ID, domainID hbapi.ID) (bool, error) {
	return c.session.domains.Delete(ctx, id, domainID)
}
