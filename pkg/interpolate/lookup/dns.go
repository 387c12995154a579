package lookup

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// DNS query types.
const (
	DNSAddress       = "address"
	DNSName          = "name"
	DNSCanonicalName = "canonical-name"
)

// HostResolver is the subset of *net.Resolver used by DNS and Localhost.
type HostResolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
	LookupAddr(ctx context.Context, addr string) ([]string, error)
	LookupCNAME(ctx context.Context, host string) (string, error)
}

// DNS performs DNS queries.
//
// The key is "type|value":
//
//	address|example.com        first address of the host
//	name|93.184.216.34         first name for the address
//	canonical-name|www.x.com   canonical name of the host
//
// Without "|" the key is a host and the type is address. A name that does
// not resolve is absent; an unknown type is an error.
type DNS struct {
	// Resolver replaces net.DefaultResolver when set.
	Resolver HostResolver
}

// Resolve implements interpolate.Resolver.
func (d DNS) Resolve(ctx context.Context, key string) (string, bool, error) {
	kind, value, ok := strings.Cut(key, "|")
	if !ok {
		kind, value = DNSAddress, key
	}
	if value == "" {
		return "", false, nil
	}
	return dnsQuery(ctx, hostResolver(d.Resolver), kind, value)
}

func dnsQuery(ctx context.Context, r HostResolver, kind, value string) (string, bool, error) {
	var (
		out []string
		err error
	)
	switch kind {
	case DNSAddress:
		out, err = r.LookupHost(ctx, value)
	case DNSName:
		out, err = r.LookupAddr(ctx, value)
	case DNSCanonicalName:
		var cname string
		cname, err = r.LookupCNAME(ctx, value)
		out = []string{cname}
	default:
		return "", false, fmt.Errorf("dns: unknown query type %q", kind)
	}

	if isNotFound(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("dns %s %q: %w", kind, value, err)
	}
	if len(out) == 0 || out[0] == "" {
		return "", false, nil
	}
	return strings.TrimSuffix(out[0], "."), true, nil
}

func isNotFound(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr) && dnsErr.IsNotFound
}

func hostResolver(r HostResolver) HostResolver {
	if r == nil {
		return net.DefaultResolver
	}
	return r
}
