package storage

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	kvjetstream "github.com/go-monolith/mono/plugin/kv-jetstream"
)

// Backend names.
const (
	BackendHost  = "host"
	BackendLocal = "local"
)

// HostBridgeEnv is the setting that announces the privileged host bridge.
const HostBridgeEnv = "PREPPAL_HOST_BRIDGE"

// IsPrivilegedEnvironment reports whether the privileged host bridge is
// available. lookup is typically os.Getenv. The result cannot change during
// the life of a process.
func IsPrivilegedEnvironment(lookup func(string) string) bool {
	if lookup == nil {
		return false
	}
	v := strings.TrimSpace(lookup(HostBridgeEnv))
	if v == "" {
		return false
	}
	enabled, err := strconv.ParseBool(v)
	return err == nil && enabled
}

// Options holds the backends SelectProvider can choose from.
type Options struct {
	Privileged  bool
	Host        HostPort
	HostTimeout time.Duration
	Local       kvjetstream.KVStoragePort
}

// SelectProvider returns the provider for the environment. It is called
// once at construction; the choice is never revisited.
func SelectProvider(opts Options) (Provider, error) {
	if opts.Privileged {
		if opts.Host == nil {
			return nil, fmt.Errorf("privileged environment requires a host port")
		}
		return NewHostProvider(opts.Host, opts.HostTimeout), nil
	}
	if opts.Local == nil {
		return nil, fmt.Errorf("local environment requires a kv bucket")
	}
	return NewLocalProvider(opts.Local), nil
}
