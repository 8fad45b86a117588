// Package navigate opens node URLs outside the graph view.
package navigate

import (
	"fmt"
	"net/url"
	"os/exec"
	"path"
	"runtime"
	"strings"
)

// Target is a resolved navigation destination.
type Target struct {
	NodeID string `json:"node_id"`
	URL    string `json:"url"`
}

// Resolver turns relative node URLs into absolute ones.
type Resolver struct {
	base *url.URL
}

// NewResolver creates a resolver. An empty base leaves URLs untouched.
func NewResolver(base string) (*Resolver, error) {
	if base == "" {
		return &Resolver{}, nil
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path = path.Dir(u.Path) + "/"
	}
	return &Resolver{base: u}, nil
}

// Resolve returns the absolute form of raw.
func (r *Resolver) Resolve(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("no url to open")
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing url %q: %w", raw, err)
	}
	if r.base == nil || ref.IsAbs() {
		return ref.String(), nil
	}
	return r.base.ResolveReference(ref).String(), nil
}

// Open hands target to the platform's default handler, which opens it in
// a new browser tab or document viewer.
func Open(target string) error {
	cmd, err := openCommand(runtime.GOOS, target)
	if err != nil {
		return err
	}
	return cmd.Start()
}

// openCommand returns the command used to open target on goos.
func openCommand(goos, target string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", target), nil
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", target), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}
