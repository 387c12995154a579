package lookup

import (
	"context"
	"fmt"
	"os"
)

// Localhost describes the local machine.
//
//	name            host name reported by the kernel
//	canonical-name  canonical DNS name of the host
//	address         first address the host name resolves to
//
// Any other key is absent.
type Localhost struct {
	// Hostname replaces os.Hostname when set.
	Hostname func() (string, error)
	// Resolver replaces net.DefaultResolver when set.
	Resolver HostResolver
}

// Resolve implements interpolate.Resolver.
func (l Localhost) Resolve(ctx context.Context, key string) (string, bool, error) {
	switch key {
	case DNSName, DNSCanonicalName, DNSAddress:
	default:
		return "", false, nil
	}

	hostname := os.Hostname
	if l.Hostname != nil {
		hostname = l.Hostname
	}
	name, err := hostname()
	if err != nil {
		return "", false, fmt.Errorf("localhost: %w", err)
	}
	if key == DNSName {
		return name, true, nil
	}
	return dnsQuery(ctx, hostResolver(l.Resolver), key, name)
}
