package lookup_test

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/interpolate/pkg/interpolate/lookup"
)

// fakeResolver answers from fixed tables and reports everything else as
// not found.
type fakeResolver struct {
	hosts  map[string][]string
	addrs  map[string][]string
	cnames map[string]string
	err    error
}

func (f fakeResolver) LookupHost(_ context.Context, host string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	if v, ok := f.hosts[host]; ok {
		return v, nil
	}
	return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
}

func (f fakeResolver) LookupAddr(_ context.Context, addr string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	if v, ok := f.addrs[addr]; ok {
		return v, nil
	}
	return nil, &net.DNSError{Err: "no such host", Name: addr, IsNotFound: true}
}

func (f fakeResolver) LookupCNAME(_ context.Context, host string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if v, ok := f.cnames[host]; ok {
		return v, nil
	}
	return "", &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
}

func newFakeResolver() fakeResolver {
	return fakeResolver{
		hosts:  map[string][]string{"example.com": {"93.184.216.34", "2606:2800::1"}},
		addrs:  map[string][]string{"93.184.216.34": {"example.com."}},
		cnames: map[string]string{"www.example.com": "example.com."},
	}
}

func TestDNS(t *testing.T) {
	d := lookup.DNS{Resolver: newFakeResolver()}

	tests := []struct {
		name   string
		key    string
		want   string
		wantOK bool
	}{
		{"address", "address|example.com", "93.184.216.34", true},
		{"bare host is address", "example.com", "93.184.216.34", true},
		{"name strips trailing dot", "name|93.184.216.34", "example.com", true},
		{"canonical name", "canonical-name|www.example.com", "example.com", true},
		{"unknown host is absent", "address|nope.invalid", "", false},
		{"unknown address is absent", "name|10.0.0.1", "", false},
		{"empty value is absent", "address|", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := d.Resolve(context.Background(), tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDNS_Errors(t *testing.T) {
	_, _, err := lookup.DNS{Resolver: newFakeResolver()}.Resolve(context.Background(), "mx|example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown query type")

	boom := errors.New("resolver unreachable")
	_, ok, err := lookup.DNS{Resolver: fakeResolver{err: boom}}.Resolve(context.Background(), "example.com")
	require.ErrorIs(t, err, boom)
	assert.False(t, ok)
}

func TestLocalhost(t *testing.T) {
	l := lookup.Localhost{
		Hostname: func() (string, error) { return "www.example.com", nil },
		Resolver: fakeResolver{
			hosts:  map[string][]string{"www.example.com": {"10.1.2.3"}},
			cnames: map[string]string{"www.example.com": "example.com."},
		},
	}

	tests := []struct {
		key    string
		want   string
		wantOK bool
	}{
		{"name", "www.example.com", true},
		{"address", "10.1.2.3", true},
		{"canonical-name", "example.com", true},
		{"other", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok, err := l.Resolve(context.Background(), tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocalhost_HostnameError(t *testing.T) {
	boom := errors.New("no hostname")
	l := lookup.Localhost{Hostname: func() (string, error) { return "", boom }}

	_, _, err := l.Resolve(context.Background(), "name")
	assert.ErrorIs(t, err, boom)
}

func TestLocalhost_DefaultName(t *testing.T) {
	got, ok, err := lookup.Localhost{}.Resolve(context.Background(), "name")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, got)
}
