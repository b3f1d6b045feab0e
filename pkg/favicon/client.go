package favicon

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"regexp"
	"strings"
	"syscall"
	"time"

	"newtab-go/pkg/icons"

	"github.com/PuerkitoBio/goquery"
)

// maxIconBytes bounds how much of a favicon response is read
const maxIconBytes = 1 << 20

var hostPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?(\.[a-z0-9]([a-z0-9-]*[a-z0-9])?)*$`)

// numericLabel matches a last label that makes the name an IP in disguise
// (127.1, 2130706433)
var numericLabel = regexp.MustCompile(`(^|\.)[0-9]+$`)

// Raster formats the proxy will serve. SVG can carry script and is never
// proxied.
var imageTypes = map[string]bool{
	"image/png":                true,
	"image/x-icon":             true,
	"image/vnd.microsoft.icon": true,
	"image/gif":                true,
	"image/jpeg":               true,
	"image/webp":               true,
	"image/bmp":                true,
	"image/avif":               true,
}

// Reserved ranges net/netip has no predicate for
var blockedPrefixes = []netip.Prefix{
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("198.18.0.0/15"),
	netip.MustParsePrefix("64:ff9b::/96"),
}

// Image is a fetched favicon.
type Image struct {
	ContentType string
	Data        []byte
}

// Client fetches favicons server-side for the favicon proxy.
type Client struct {
	serviceURL string
	siteScheme string

	// client talks to the configured favicon service
	client *http.Client
	// site talks to shortcut sites and only dials public addresses
	site *http.Client
}

// NewClient creates a client for a favicon service URL template
// containing {host}.
func NewClient(serviceURL string, timeout time.Duration) *Client {
	if serviceURL == "" {
		serviceURL = icons.DefaultFaviconURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	c := &Client{
		serviceURL: serviceURL,
		siteScheme: "https",
		client: &http.Client{
			Timeout: timeout,
		},
	}
	dialer := &net.Dialer{Timeout: timeout, Control: publicOnly}
	c.site = &http.Client{
		Timeout:       timeout,
		Transport:     &http.Transport{DialContext: dialer.DialContext},
		CheckRedirect: c.checkRedirect,
	}
	return c
}

// ValidHost reports whether host is a plain public DNS name: no port, no IP
// literal, nothing under localhost.
func ValidHost(host string) bool {
	if len(host) > 253 || !hostPattern.MatchString(host) {
		return false
	}
	if numericLabel.MatchString(host) {
		return false
	}
	return host != "localhost" && !strings.HasSuffix(host, ".localhost")
}

// publicOnly is a net.Dialer Control hook refusing every address that is
// not a public unicast address. It runs after DNS resolution, so names
// pointing at internal addresses are refused too.
func publicOnly(network, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return err
	}
	if !publicAddr(addr.Unmap()) {
		return &FetchError{Type: ErrorTypeBlocked, Host: host, Message: "refusing non-public address"}
	}
	return nil
}

func publicAddr(addr netip.Addr) bool {
	if !addr.IsGlobalUnicast() || addr.IsPrivate() {
		return false
	}
	for _, p := range blockedPrefixes {
		if p.Contains(addr) {
			return false
		}
	}
	return true
}

// sameSite reports whether iconURL may be fetched for host: the site
// scheme, no explicit port, and host itself or one of its subdomains.
func (c *Client) sameSite(host string, iconURL *url.URL) bool {
	if iconURL.Scheme != c.siteScheme || iconURL.Port() != "" || iconURL.User != nil {
		return false
	}
	iconHost := strings.ToLower(iconURL.Hostname())
	if !ValidHost(iconHost) {
		return false
	}
	return iconHost == host || strings.HasSuffix(iconHost, "."+host)
}

// checkRedirect keeps site requests on the site they started on
func (c *Client) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= 5 {
		return fmt.Errorf("stopped after %d redirects", len(via))
	}
	host := strings.ToLower(via[0].URL.Hostname())
	if !c.sameSite(host, req.URL) {
		return &FetchError{Type: ErrorTypeBlocked, Host: host, Message: "redirect leaves the site"}
	}
	return nil
}

// Fetch asks the favicon service for the icon of host.
func (c *Client) Fetch(ctx context.Context, host string) (*Image, error) {
	host = strings.ToLower(host)
	if !ValidHost(host) {
		return nil, &FetchError{Type: ErrorTypeInvalidHost, Host: host, Message: "invalid host"}
	}
	return c.fetchImage(ctx, c.client, host, icons.FaviconURL(c.serviceURL, host))
}

// Discover loads the site's home page and returns the absolute URL of the
// icon it declares in a <link rel="icon"> (or apple-touch-icon) element.
func (c *Client) Discover(ctx context.Context, host string) (string, error) {
	host = strings.ToLower(host)
	if !ValidHost(host) {
		return "", &FetchError{Type: ErrorTypeInvalidHost, Host: host, Message: "invalid host"}
	}

	base, _ := url.Parse(c.siteScheme + "://" + host + "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return "", classify(host, err)
	}

	resp, err := c.site.Do(req)
	if err != nil {
		return "", classify(host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", newStatusError(host, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxIconBytes))
	if err != nil {
		return "", &FetchError{Type: ErrorTypeInvalidResponse, Host: host, Message: "failed to parse page", Cause: err}
	}

	href := bestIconHref(doc)
	if href == "" {
		return "", &FetchError{Type: ErrorTypeNotFound, Host: host, Message: "page declares no icon"}
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", &FetchError{Type: ErrorTypeInvalidResponse, Host: host, Message: "invalid icon href", Cause: err}
	}
	return base.ResolveReference(ref).String(), nil
}

// FetchURL downloads an icon from an absolute URL, usually one returned by
// Discover. The URL must stay on host (or a subdomain) over the site scheme.
func (c *Client) FetchURL(ctx context.Context, host, iconURL string) (*Image, error) {
	host = strings.ToLower(host)
	if !ValidHost(host) {
		return nil, &FetchError{Type: ErrorTypeInvalidHost, Host: host, Message: "invalid host"}
	}
	u, err := url.Parse(iconURL)
	if err != nil || !c.sameSite(host, u) {
		return nil, &FetchError{Type: ErrorTypeBlocked, Host: host, Message: fmt.Sprintf("icon url %q is not on the site", iconURL)}
	}
	return c.fetchImage(ctx, c.site, host, u.String())
}

// bestIconHref prefers apple-touch icons (large) over plain icons.
func bestIconHref(doc *goquery.Document) string {
	var touch, plain string
	doc.Find("link[rel][href]").Each(func(_ int, s *goquery.Selection) {
		rel := strings.ToLower(s.AttrOr("rel", ""))
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" {
			return
		}
		for _, r := range strings.Fields(rel) {
			switch r {
			case "apple-touch-icon", "apple-touch-icon-precomposed":
				if touch == "" {
					touch = href
				}
			case "icon":
				if plain == "" {
					plain = href
				}
			}
		}
	})
	if touch != "" {
		return touch
	}
	return plain
}

func (c *Client) fetchImage(ctx context.Context, hc *http.Client, host, target string) (*Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &FetchError{Type: ErrorTypeInvalidHost, Host: host, Message: "failed to build request", Cause: err}
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, classify(host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newStatusError(host, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxIconBytes))
	if err != nil {
		return nil, classify(host, err)
	}
	if len(data) == 0 {
		return nil, &FetchError{Type: ErrorTypeInvalidResponse, Host: host, Message: "empty response"}
	}

	// the declared type and the sniffed one must both be raster images
	declared, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	sniffed, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	if declared == "" {
		declared = sniffed
	}
	if !imageTypes[declared] || (sniffed != "application/octet-stream" && !imageTypes[sniffed]) {
		return nil, &FetchError{Type: ErrorTypeInvalidResponse, Host: host, Message: fmt.Sprintf("not a raster image: %s", declared)}
	}

	return &Image{ContentType: declared, Data: data}, nil
}
