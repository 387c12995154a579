package lookup

import (
	"context"
	"os"
	"runtime"
	"strconv"
)

// Runtime reports facts about the running Go program:
// version, os, arch, cpus, compiler, pid and goroot. Other keys are absent.
type Runtime struct{}

// Resolve implements interpolate.Resolver.
func (Runtime) Resolve(_ context.Context, key string) (string, bool, error) {
	switch key {
	case "version":
		return runtime.Version(), true, nil
	case "os":
		return runtime.GOOS, true, nil
	case "arch":
		return runtime.GOARCH, true, nil
	case "cpus":
		return strconv.Itoa(runtime.NumCPU()), true, nil
	case "compiler":
		return runtime.Compiler, true, nil
	case "pid":
		return strconv.Itoa(os.Getpid()), true, nil
	case "goroot":
		if v, ok := os.LookupEnv("GOROOT"); ok {
			return v, true, nil
		}
		return "", false, nil
	default:
		return "", false, nil
	}
}
