package icons

import (
	"testing"

	"newtab-go/pkg/shortcuts"
)

func TestResolvePresetIcon(t *testing.T) {
	r := NewResolver(shortcuts.DefaultPresets(), Options{})

	for _, u := range []string{"youtube.com", "https://youtube.com", "https://youtube.com/", "http://x.com"} {
		icon := r.Resolve(u)
		if icon.Kind != KindPreset || icon.SVG == "" {
			t.Fatalf("%s: expected preset icon, got %+v", u, icon)
		}
	}
}

func TestResolveRemoteFavicon(t *testing.T) {
	r := NewResolver(shortcuts.DefaultPresets(), Options{})

	icon := r.Resolve("https://news.ycombinator.com/item?id=1")
	if icon.Kind != KindRemote {
		t.Fatalf("expected remote icon, got %+v", icon)
	}
	want := "https://s2.googleusercontent.com/s2/favicons?domain_url=https://news.ycombinator.com&sz=256"
	if icon.Src != want {
		t.Fatalf("src = %q, want %q", icon.Src, want)
	}
	if icon.FallbackSrc != OfflineIconPath {
		t.Fatalf("fallback = %q", icon.FallbackSrc)
	}

	fb := icon.Fallback()
	if fb.Kind != KindBundled || fb.Src != OfflineIconPath {
		t.Fatalf("fallback icon = %+v", fb)
	}
	if v := icon.View(); v.FallbackSrc != OfflineIconPath || v.Src != want {
		t.Fatalf("view = %+v", v)
	}
}

func TestResolvePathOnPresetHostIsRemote(t *testing.T) {
	r := NewResolver(shortcuts.DefaultPresets(), Options{})

	icon := r.Resolve("https://youtube.com/feed/subscriptions")
	if icon.Kind != KindRemote {
		t.Fatalf("expected remote icon, got %+v", icon)
	}
}

func TestResolveGitHubUsesBundledIcon(t *testing.T) {
	r := NewResolver(nil, Options{})

	icon := r.Resolve("github.com/golang/go")
	if icon.Kind != KindBundled || icon.Src != GitHubIconPath {
		t.Fatalf("got %+v", icon)
	}
	if icon.Fallback() != icon {
		t.Fatalf("bundled icons have no fallback")
	}
	if v := icon.View(); v.FallbackSrc != "" {
		t.Fatalf("bundled view fallback = %q", v.FallbackSrc)
	}
}

func TestResolveUnparsableURL(t *testing.T) {
	r := NewResolver(nil, Options{})

	icon := r.Resolve("https://%zz")
	if icon.Kind != KindBundled || icon.Src != OfflineIconPath {
		t.Fatalf("got %+v", icon)
	}
}

func TestResolveThroughProxy(t *testing.T) {
	r := NewResolver(nil, Options{ProxyPath: "/icons/favicon/"})

	icon := r.Resolve("example.org/path")
	if icon.Src != "/icons/favicon/example.org" {
		t.Fatalf("src = %q", icon.Src)
	}
}

func TestCustomFaviconTemplate(t *testing.T) {
	r := NewResolver(nil, Options{FaviconURL: "https://icons.example/{host}.png"})

	if got := r.Resolve("go.dev").Src; got != "https://icons.example/go.dev.png" {
		t.Fatalf("src = %q", got)
	}
}
