package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hostbridge-io/hbapi/internal/constants"
	"github.com/hostbridge-io/hbapi/pkg/hbapi"
)

// DomainsClient implements hbapi.DomainsClient.
type DomainsClient struct {
	session *Client
}

// List returns the domain records bound to a site.
func (c *DomainsClient) List(ctx context.Context, siteID hbapi.ID) ([]hbapi.DomainRecord, error) {
	if err := ValidateID(siteID); err != nil {
		return nil, err
	}

	transport, err := c.session.session()
	if err != nil {
		return nil, err
	}

	resp, err := transport.Get(ctx, c.session.path(constants.PathDomains+"/"+siteID.String()), nil)
	if err != nil {
		return nil, fmt.Errorf("listing domains: %w", err)
	}

	return decodeResult[[]hbapi.DomainRecord](resp, "listing domains")
}

// Add binds a hostname to a site and returns the new domain's id.
func (c *DomainsClient) Add(ctx context.Context, siteID hbapi.ID, hostname string) (hbapi.ID, error) {
	if err := ValidateID(siteID); err != nil {
		return 0, err
	}

	if err := ValidateHostname(hostname); err != nil {
		return 0, err
	}

	transport, err := c.session.session()
	if err != nil {
		return 0, err
	}

	params := url.Values{}
	params.Set("domain", hostname)

	resp, err := transport.Post(ctx, c.session.path(constants.PathDomains+"/"+siteID.String()), params)
	if err != nil {
		return 0, fmt.Errorf("adding domain: %w", err)
	}

	return decodeResult[hbapi.ID](resp, "adding domain")
}

// SetPrimary marks a domain as the site's canonical hostname and returns
// the server's confirmation.
func (c *DomainsClient) SetPrimary(ctx context.Context, siteID hbapi.ID, domainID hbapi.ID) (bool, error) {
	if err := ValidateID(siteID); err != nil {
		return false, err
	}

	if err := ValidateID(domainID); err != nil {
		return false, err
	}

	transport, err := c.session.session()
	if err != nil {
		return false, err
	}

	params := url.Values{}
	params.Set("domain_id", domainID.String())

	resp, err := transport.Put(ctx, c.session.path(constants.PathDomains+"/"+siteID.String()), params)
	if err != nil {
		return false, fmt.Errorf("setting primary domain: %w", err)
	}

	return decodeResult[bool](resp, "setting primary domain")
}

// Delete unbinds a domain and returns the server's confirmation. The server
// rejects deleting the current primary domain.
func (c *DomainsClient) Delete(ctx context.Context, siteID hbapi.ID, domainID hbapi.ID) (bool, error) {
	if err := ValidateID(siteID); err != nil {
		return false, err
	}

	if err := ValidateID(domainID); err != nil {
		return false, err
	}

	transport, err := c.session.session()
	if err != nil {
		return false, err
	}

	params := url.Values{}
	params.Set("domain_id", domainID.String())

	resp, err := transport.Delete(ctx, c.session.path(constants.PathDomains+"/"+siteID.String()), params)
	if err != nil {
		return false, fmt.Errorf("deleting domain: %w", err)
	}

	return decodeResult[bool](resp, "deleting domain")
}
