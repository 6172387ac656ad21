package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hostbridge-io/hbapi/internal/constants"
	"github.com/hostbridge-io/hbapi/pkg/hbapi"
)

// TagsClient implements hbapi.TagsClient.
type TagsClient struct {
	session *Client
}

func tagMapFromRecords(records []hbapi.TagRecord) hbapi.TagMap {
	tags := make(hbapi.TagMap, len(records))
	for _, rec := range records {
		tags[rec.Name] = rec.ID
	}

	return tags
}

// List returns the tags of a site as a name-to-id map.
func (c *TagsClient) List(ctx context.Context, siteID hbapi.ID) (hbapi.TagMap, error) {
	if err := ValidateID(siteID); err != nil {
		return nil, err
	}

	transport, err := c.session.session()
	if err != nil {
		return nil, err
	}

	resp, err := transport.Get(ctx, c.session.path(constants.PathTags+"/"+siteID.String()), nil)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	records, err := decodeResult[[]hbapi.TagRecord](resp, "listing tags")
	if err != nil {
		return nil, err
	}

	return tagMapFromRecords(records), nil
}

// Add attaches a tag to a site. The server returns the site's full tag list
// after the change.
func (c *TagsClient) Add(ctx context.Context, siteID hbapi.ID, tag string) (hbapi.TagMap, error) {
	if err := ValidateID(siteID); err != nil {
		return nil, err
	}

	transport, err := c.session.session()
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("tag", tag)

	resp, err := transport.Post(ctx, c.session.path(constants.PathTags+"/"+siteID.String()), params)
	if err != nil {
		return nil, fmt.Errorf("adding tag: %w", err)
	}

	records, err := decodeResult[[]hbapi.TagRecord](resp, "adding tag")
	if err != nil {
		return nil, err
	}

	return tagMapFromRecords(records), nil
}

// Delete detaches a tag by id and returns the server's confirmation.
func (c *TagsClient) Delete(ctx context.Context, siteID hbapi.ID, tagID hbapi.ID) (bool, error) {
	if err := ValidateID(siteID); err != nil {
		return false, err
	}

	if err := ValidateID(tagID); err != nil {
		return false, err
	}

	transport, err := c.session.session()
	if err != nil {
		return false, err
	}

	params := url.Values{}
	params.Set("tag_id", tagID.String())

	resp, err := transport.Delete(ctx, c.session.path(constants.PathTags+"/"+siteID.String()), params)
	if err != nil {
		return false, fmt.Errorf("deleting tag: %w", err)
	}

	return decodeResult[bool](resp, "deleting tag")
}
