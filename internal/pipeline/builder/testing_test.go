package builder

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/elskow/seabuild/internal/pipeline/toolchain"
	"github.com/elskow/seabuild/internal/pipeline/types"
)

type call struct {
	name string
	args []string
}

// fakeRunner emulates node, the injector and the signing tools.
type fakeRunner struct {
	mu             sync.Mutex
	calls          []call
	configs        []SEAConfig
	failBlob       bool
	failInject     bool
	failSign       bool
	skipBlobOutput bool
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (*toolchain.CommandResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{name: name, args: args})
	f.mu.Unlock()

	switch {
	case slices.Contains(args, "--experimental-sea-config"):
		if f.failBlob {
			return &toolchain.CommandResult{ExitCode: 1, Stderr: "SyntaxError"}, nil
		}
		if f.skipBlobOutput {
			return &toolchain.CommandResult{}, nil
		}
		cfg, err := writeBlob(args[len(args)-1])
		f.mu.Lock()
		f.configs = append(f.configs, cfg)
		f.mu.Unlock()
		return &toolchain.CommandResult{}, err
	case slices.Contains(args, "--sentinel-fuse"):
		if f.failInject {
			return &toolchain.CommandResult{ExitCode: 1, Stderr: "postject: could not find sentinel"}, nil
		}
		return &toolchain.CommandResult{}, nil
	case name == "codesign" || name == "signtool":
		if f.failSign {
			return nil, fmt.Errorf("exec: %q: executable file not found in $PATH", name)
		}
		return &toolchain.CommandResult{}, nil
	}
	return &toolchain.CommandResult{}, nil
}

func (f *fakeRunner) called(match func(call) bool) []call {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []call
	for _, c := range f.calls {
		if match(c) {
			out = append(out, c)
		}
	}
	return out
}

func writeBlob(configPath string) (SEAConfig, error) {
	var cfg SEAConfig
	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, os.WriteFile(cfg.Output, []byte("blob"), 0644)
}

type fakeStore struct {
	paths map[string]string
	err   error
	calls []string
}

func (s *fakeStore) Acquire(ctx context.Context, p types.Platform) (string, error) {
	s.calls = append(s.calls, p.ID)
	if s.err != nil && p.ID != types.Linux.ID {
		return "", s.err
	}
	path, ok := s.paths[p.ID]
	if !ok {
		return "", fmt.Errorf("%w: %s", types.ErrDownload, p.ID)
	}
	return path, nil
}

type fakeValidator struct {
	calls      int
	shouldFail bool
}

func (v *fakeValidator) ValidateOptions(opts *types.BuildOptions) error {
	return nil
}

func (v *fakeValidator) ValidateExecutable(ctx context.Context, p types.Platform, path string) error {
	v.calls++
	if v.shouldFail {
		return fmt.Errorf("%w: mock verification failure", types.ErrVerification)
	}
	return nil
}
