package icons

import (
	"strings"

	"newtab-go/pkg/models"
	"newtab-go/pkg/shortcuts"
)

// Kind says where an icon comes from.
type Kind string

const (
	KindPreset  Kind = "preset"  // inline SVG embedded with the preset table
	KindBundled Kind = "bundled" // static asset served by this application
	KindRemote  Kind = "remote"  // favicon service, may fail to load
)

const (
	DefaultFaviconURL = "https://s2.googleusercontent.com/s2/favicons?domain_url=https://{host}&sz=256"

	GitHubIconPath  = "/static/icons/github-shortcut.svg"
	OfflineIconPath = "/static/icons/offline.svg"
)

// Icon is the resolved icon for one launcher tile. For remote icons
// FallbackSrc replaces Src when the image fails to load; there is no retry
// and no timeout.
type Icon struct {
	Kind        Kind
	SVG         string
	Src         string
	FallbackSrc string
}

// Fallback returns the icon to show after Src failed to load.
func (i Icon) Fallback() Icon {
	if i.Kind != KindRemote || i.FallbackSrc == "" {
		return i
	}
	return Icon{Kind: KindBundled, Src: i.FallbackSrc}
}

// View converts the icon to its JSON shape. fallback_src is set only when
// the icon has a fallback to switch to.
func (i Icon) View() models.IconView {
	v := models.IconView{
		Kind: string(i.Kind),
		SVG:  i.SVG,
		Src:  i.Src,
	}
	if fb := i.Fallback(); fb != i {
		v.FallbackSrc = fb.Src
	}
	return v
}

// Options configures the remote part of icon resolution.
type Options struct {
	// FaviconURL is a template with a {host} placeholder.
	FaviconURL string
	// ProxyPath, when set, routes remote favicons through this server
	// (e.g. "/icons/favicon/") instead of the browser calling the service.
	ProxyPath string
}

// Resolver picks an icon for a shortcut URL.
type Resolver struct {
	presets    map[string]string
	faviconURL string
	proxyPath  string
}

// NewResolver creates a resolver that knows the given presets' icons
func NewResolver(presets []shortcuts.Preset, opts Options) *Resolver {
	if opts.FaviconURL == "" {
		opts.FaviconURL = DefaultFaviconURL
	}
	return &Resolver{
		presets:    shortcuts.PresetIcons(presets),
		faviconURL: opts.FaviconURL,
		proxyPath:  opts.ProxyPath,
	}
}

// Resolve returns the preset icon when the scheme-stripped URL matches a
// preset, otherwise a remote favicon with the offline placeholder as its
// fallback.
func (r *Resolver) Resolve(rawURL string) Icon {
	if svg, ok := r.presets[shortcuts.StripScheme(strings.TrimSpace(rawURL))]; ok {
		return Icon{Kind: KindPreset, SVG: svg}
	}

	host := shortcuts.Hostname(rawURL)
	switch host {
	case "":
		return Icon{Kind: KindBundled, Src: OfflineIconPath}
	case "github.com":
		return Icon{Kind: KindBundled, Src: GitHubIconPath}
	}

	return Icon{
		Kind:        KindRemote,
		Src:         r.RemoteURL(host),
		FallbackSrc: OfflineIconPath,
	}
}

// RemoteURL returns the favicon URL the browser should load for host
func (r *Resolver) RemoteURL(host string) string {
	if r.proxyPath != "" {
		return strings.TrimSuffix(r.proxyPath, "/") + "/" + host
	}
	return FaviconURL(r.faviconURL, host)
}

// FaviconURL fills the {host} placeholder of a favicon service template
func FaviconURL(template, host string) string {
	return strings.ReplaceAll(template, "{host}", host)
}
