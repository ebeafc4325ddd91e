package headers

import (
	"slices"
	"strings"
)

// Well-known header names. The split mirrors where a name may legitimately
// appear; the "unstandard" groups are names without an RFC home that are
// nevertheless all over the wire.
var (
	generalHeaders = []string{
		"Cache-Control",
		"Connection",
		"Permanent",
		"Content-Length",
		"Content-MD5",
		"Content-Type",
		"Date",
		"Keep-Alive",
		"Pragma",
		"Upgrade",
		"Via",
		"Warning",
	}

	unstandardGeneralHeaders = []string{
		"X-Request-ID",
		"X-Correlation-ID",
	}

	requestHeaders = []string{
		"A-IM",
		"Accept",
		"Accept-Charset",
		"Accept-Encoding",
		"Accept-Language",
		"Accept-Datetime",
		"Access-Control-Request-Method",
		"Access-Control-Request-Headers",
		"Authorization",
		"Cookie",
		"Expect",
		"Forwarded",
		"From",
		"Host",
		"HTTP2-Settings",
		"If-Match",
		"If-Modified-Since",
		"If-None-Match",
		"If-Range",
		"If-Unmodified-Since",
		"Max-Forwards",
		"Origin",
		"Proxy-Authorization",
		"Range",
		"Referer",
		"TE",
		"User-Agent",
	}

	unstandardRequestHeaders = []string{
		"Upgrade-Insecure-Requests",
		"X-Requested-With",
		"DNT",
		"X-Forwarded-For",
		"X-Forwarded-Host",
		"X-Forwarded-Proto",
		"Front-End-Https",
		"X-Http-Method-Override",
		"X-ATT-DeviceId",
		"X-Wap-Profile",
		"Proxy-Connection",
		"X-UIDH",
		"X-Csrf-Token",
		"Save-Data",
	}

	responseHeaders = []string{
		"Access-Control-Allow-Origin",
		"Access-Control-Allow-Credentials",
		"Access-Control-Expose-Headers",
		"Access-Control-Max-Age",
		"Access-Control-Allow-Methods",
		"Access-Control-Allow-Headers",
		"Accept-Patch",
		"Accept-Ranges",
		"Age",
		"Allow",
		"Alt-Svc",
		"Content-Disposition",
		"Content-Encoding",
		"Content-Language",
		"Content-Location",
		"Content-Range",
		"Delta-Base",
		"ETag",
		"Expires",
		"IM",
		"Last-Modified",
		"Link",
		"Location",
		"P3P",
		"Proxy-Authenticate",
		"Public-Key-Pins",
		"Retry-After",
		"Server",
		"Set-Cookie",
		"Strict-Transport-Security",
		"Trailer",
		"Transfer-Encoding",
		"Tk",
		"Vary",
		"WWW-Authenticate",
		"X-Frame-Options",
	}

	unstandardResponseHeaders = []string{
		"Content-Security-Policy",
		"X-Content-Security-Policy",
		"X-WebKit-CSP",
		"Refresh",
		"Status",
		"Timing-Allow-Origin",
		"X-Content-Duration",
		"X-Content-Type-Options",
		"X-Powered-By",
		"X-UA-Compatible",
		"X-XSS-Protection",
	}
)

// Catalog is the set of well-known header names for one message kind. The
// names are pre-sorted case-insensitively, which fixes the rendering order
// of known slots once and for all; positions index into that order.
type Catalog struct {
	names []string
	index map[string]int
}

func newCatalog(groups ...[]string) *Catalog {
	var names []string
	for _, group := range groups {
		names = append(names, group...)
	}

	slices.SortFunc(names, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})

	index := make(map[string]int, len(names))
	for i, name := range names {
		index[Normalize(name)] = i
	}

	return &Catalog{names: names, index: index}
}

var (
	requestCatalog  = newCatalog(generalHeaders, requestHeaders, unstandardGeneralHeaders, unstandardRequestHeaders)
	responseCatalog = newCatalog(generalHeaders, responseHeaders, unstandardGeneralHeaders, unstandardResponseHeaders)
)

// Request returns the catalog of header names recognized in requests.
func Request() *Catalog {
	return requestCatalog
}

// Response returns the catalog of header names recognized in responses.
func Response() *Catalog {
	return responseCatalog
}

// Names returns the catalog's canonical spellings in their fixed order. The
// returned slice must not be modified.
func (c *Catalog) Names() []string {
	return c.names
}

// Len returns the number of names in the catalog.
func (c *Catalog) Len() int {
	return len(c.names)
}

// Pos returns the position of the name in the catalog's fixed order. The
// name is matched under normalization.
func (c *Catalog) Pos(name string) (int, bool) {
	pos, found := c.index[Normalize(name)]
	return pos, found
}

// Has indicates whether the name belongs to the catalog.
func (c *Catalog) Has(name string) bool {
	_, found := c.Pos(name)
	return found
}

// Name returns the canonical spelling at the given position.
func (c *Catalog) Name(pos int) string {
	return c.names[pos]
}
