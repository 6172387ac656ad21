package client

import (
	"regexp"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/hostbridge-io/hbapi/pkg/hbapi"
)

// Validation patterns shared by all resource clients. Enforced before any
// network call so a bad argument never costs a round trip.
var (
	// siteNamePattern: letters, digits, and single hyphens between
	// non-empty segments.
	siteNamePattern = regexp.MustCompile(`^[A-Za-z0-9]+(-[A-Za-z0-9]+)*$`)

	// hostnamePattern: the loose charset the provider accepts for domains.
	hostnamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
)

// ValidateID checks that a resource id is positive.
func ValidateID(id hbapi.ID) error {
	if id <= 0 {
		return hbapi.NewError(hbapi.ErrorKindInvalidArgument, "invalid id: %d", int64(id))
	}

	return nil
}

// ParseID converts an id-like string into an ID. Only decimal digit strings
// with a numeric value greater than zero are accepted; signs, spaces, and
// float-like forms are rejected.
func ParseID(s string) (hbapi.ID, error) {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, hbapi.NewError(hbapi.ErrorKindInvalidArgument, "invalid id: %q", s)
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, hbapi.NewError(hbapi.ErrorKindInvalidArgument, "invalid id: %q", s)
	}

	return hbapi.ID(n), nil
}

// ValidateSiteName checks a candidate site name against the provider's
// naming rule.
func ValidateSiteName(name string) error {
	err := validation.Validate(name,
		validation.Required,
		validation.Match(siteNamePattern),
	)
	if err != nil {
		return hbapi.NewError(hbapi.ErrorKindInvalidArgument, "invalid site name %q: %v", name, err)
	}

	return nil
}

// ValidateHostname checks a candidate domain hostname.
func ValidateHostname(hostname string) error {
	err := validation.Validate(hostname,
		validation.Required,
		validation.Match(hostnamePattern),
	)
	if err != nil {
		return hbapi.NewError(hbapi.ErrorKindInvalidArgument, "invalid hostname %q: %v", hostname, err)
	}

	return nil
}
