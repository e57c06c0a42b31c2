package httpclient

import (
	"context"
	"net"
	"strings"

	"github.com/pkg/errors"
)

// blockedReason returns why ip is not a public address, or "" if it is.
func blockedReason(ip net.IP) string {
	switch {
	case ip.IsLoopback():
		return "localhost/loopback address"
	case ip.IsPrivate():
		return "private address (RFC 1918)"
	case ip.IsLinkLocalUnicast(), ip.IsLinkLocalMulticast():
		return "link-local address"
	case ip.IsMulticast():
		return "multicast address"
	case ip.IsUnspecified():
		return "unspecified address"
	case !ip.IsGlobalUnicast():
		return "non-global address"
	}
	return ""
}

// resolvesToPrivate returns ErrPrivateDisallowed if host is, or resolves to,
// a non-public address. Hosts that do not resolve are let through; the
// request fails on its own.
func resolvesToPrivate(ctx context.Context, resolver Resolver, host string) error {
	if strings.Contains(host, "localhost") {
		return ErrPrivateDisallowed
	}

	if ip := net.ParseIP(host); ip != nil {
		if reason := blockedReason(ip); reason != "" {
			return errors.Wrap(ErrPrivateDisallowed, reason)
		}
		return nil
	}

	if resolver == nil {
		return nil
	}

	addrs, err := resolver.LookupIPAddr(ctx, host)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return nil
		}
		return errors.Wrap(err, "failed to LookupIPAddr")
	}

	for _, addr := range addrs {
		if reason := blockedReason(addr.IP); reason != "" {
			return errors.Wrapf(ErrPrivateDisallowed, "%s resolves to %s", host, reason)
		}
	}
	return nil
}
