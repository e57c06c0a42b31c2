package httpclient

import (
	"context"
	"net"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

var (
	ErrHTTPDisallowed    = errors.New("requests to insecure HTTP endpoints is disallowed")
	ErrIPsDisallowed     = errors.New("requests to IP addresses are disallowed")
	ErrPrivateDisallowed = errors.New("requests to private IP address ranges are disallowed")
	ErrDomainDisallowed  = errors.New("requests to this domain are disallowed")
	ErrPortDisallowed    = errors.New("requests to this port are disallowed")
)

// Rules governs which URLs a module may reach.
//
// Domain patterns match label by label: "*" matches exactly one label, and a
// leading "*" matches one or more, so "*.example.com" covers "a.b.example.com"
// but not "example.com". AllowedDomains takes precedence over BlockedDomains.
type Rules struct {
	AllowedDomains []string `json:"allowedDomains,omitempty" yaml:"allowedDomains"`
	BlockedDomains []string `json:"blockedDomains,omitempty" yaml:"blockedDomains"`
	AllowedPorts   []int    `json:"allowedPorts,omitempty" yaml:"allowedPorts" validate:"dive,min=1,max=65535"`
	BlockedPorts   []int    `json:"blockedPorts,omitempty" yaml:"blockedPorts" validate:"dive,min=1,max=65535"`
	AllowIPs       bool     `json:"allowIPs" yaml:"allowIPs"`
	AllowPrivate   bool     `json:"allowPrivate" yaml:"allowPrivate"`
	AllowHTTP      bool     `json:"allowHTTP" yaml:"allowHTTP"`
}

// DefaultRules allows every request.
func DefaultRules() Rules {
	return Rules{AllowIPs: true, AllowPrivate: true, AllowHTTP: true}
}

// Resolver looks up the addresses a hostname points at.
// *net.Resolver satisfies it.
type Resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
	LookupCNAME(ctx context.Context, host string) (string, error)
}

var standardPorts = []int{80, 443}

// Check returns a non-nil error if u may not be requested.
func (r Rules) Check(ctx context.Context, u *url.URL, resolver Resolver) error {
	if !r.AllowHTTP && u.Scheme == "http" {
		return ErrHTTPDisallowed
	}

	if err := r.checkPort(u); err != nil {
		return err
	}

	hostname := u.Hostname()
	isIP := net.ParseIP(hostname) != nil
	if !r.AllowIPs && isIP {
		return ErrIPsDisallowed
	}

	if r.AllowPrivate && len(r.AllowedDomains)+len(r.BlockedDomains) == 0 {
		return nil
	}

	hosts := []string{hostname}
	if resolver != nil && !isIP {
		// a CNAME is checked in addition to the host itself
		if cname, err := resolver.LookupCNAME(ctx, hostname); err == nil {
			cname = strings.TrimSuffix(cname, ".")
			if cname != "" && cname != hostname {
				hosts = append(hosts, cname)
			}
		}
	}

	for _, host := range hosts {
		if !r.AllowPrivate {
			if err := resolvesToPrivate(ctx, resolver, host); err != nil {
				return err
			}
		}

		if len(r.AllowedDomains) > 0 {
			if !slices.ContainsFunc(r.AllowedDomains, func(p string) bool { return MatchDomain(p, host) }) {
				return ErrDomainDisallowed
			}
			continue
		}

		if slices.ContainsFunc(r.BlockedDomains, func(p string) bool { return MatchDomain(p, host) }) {
			return ErrDomainDisallowed
		}
	}

	return nil
}

func (r Rules) checkPort(u *url.URL) error {
	if len(r.AllowedPorts)+len(r.BlockedPorts) == 0 {
		return nil
	}

	port, err := portOf(u)
	if err != nil {
		return ErrPortDisallowed
	}

	if slices.Contains(r.BlockedPorts, port) {
		return ErrPortDisallowed
	}
	if slices.Contains(standardPorts, port) || slices.Contains(r.AllowedPorts, port) {
		return nil
	}
	return ErrPortDisallowed
}

func portOf(u *url.URL) (int, error) {
	if u.Port() == "" {
		if u.Scheme == "https" {
			return 443, nil
		}
		return 80, nil
	}
	return strconv.Atoi(u.Port())
}

// MatchDomain reports whether domain matches pattern.
func MatchDomain(pattern, domain string) bool {
	pattern = strings.TrimSuffix(pattern, ".")
	domain = strings.TrimSuffix(domain, ".")
	if pattern == "" || domain == "" {
		return pattern == domain
	}
	if strings.EqualFold(pattern, domain) {
		return true
	}

	// labels become path segments so doublestar's "*" stops at a dot
	glob := strings.ReplaceAll(strings.ToLower(pattern), ".", "/")
	if strings.HasPrefix(glob, "*/") {
		glob = "*/**" + glob[1:]
	}

	ok, err := doublestar.Match(glob, strings.ReplaceAll(strings.ToLower(domain), ".", "/"))
	return err == nil && ok
}
