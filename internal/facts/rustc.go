package facts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

// runFunc executes a command and returns its standard output.
type runFunc func(ctx context.Context, env []string, name string, args ...string) ([]byte, error)

// RustcProvider queries a rustc binary for targets and their facts.
// It is safe for concurrent use.
type RustcProvider struct {
	rustc        string
	specMetadata bool
	run          runFunc
}

// NewRustcProvider creates a provider that runs the given rustc binary.
// With specMetadata set, each target's spec JSON is also queried; this uses
// unstable rustc options and sets RUSTC_BOOTSTRAP=1 for that call only.
func NewRustcProvider(rustc string, specMetadata bool) *RustcProvider {
	if rustc == "" {
		rustc = tierdocs.DefaultRustc
	}
	return &RustcProvider{
		rustc:        rustc,
		specMetadata: specMetadata,
		run:          execCommand,
	}
}

func execCommand(ctx context.Context, env []string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
		}
		return nil, fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return stdout.Bytes(), nil
}

// Targets returns the output of `rustc --print target-list`.
func (p *RustcProvider) Targets(ctx context.Context) ([]string, error) {
	out, err := p.run(ctx, nil, p.rustc, "--print", "target-list")
	if err != nil {
		return nil, &Error{Err: err}
	}

	var targets []string
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			targets = append(targets, line)
		}
	}
	return targets, nil
}

// Facts returns the cfg values of target and, when enabled, its spec metadata.
func (p *RustcProvider) Facts(ctx context.Context, target string) (tierdocs.Facts, error) {
	out, err := p.run(ctx, nil, p.rustc, "--print", "cfg", "--target", target)
	if err != nil {
		return tierdocs.Facts{}, &Error{Target: target, Err: err}
	}

	cfg, err := ParseCfg(string(out))
	if err != nil {
		return tierdocs.Facts{}, &Error{Target: target, Err: err}
	}

	facts := tierdocs.Facts{Cfg: cfg}
	if !p.specMetadata {
		return facts, nil
	}

	out, err = p.run(ctx, []string{"RUSTC_BOOTSTRAP=1"}, p.rustc,
		"-Z", "unstable-options", "--print", "target-spec-json", "--target", target)
	if err != nil {
		return tierdocs.Facts{}, &Error{Target: target, Err: err}
	}

	spec, err := parseTargetSpec(out)
	if err != nil {
		return tierdocs.Facts{}, &Error{Target: target, Err: err}
	}
	facts.Spec = spec
	return facts, nil
}

type targetSpecJSON struct {
	Metadata struct {
		Description *string `json:"description"`
		Tier        *int    `json:"tier"`
		HostTools   *bool   `json:"host_tools"`
		Std         *bool   `json:"std"`
	} `json:"metadata"`
}

func parseTargetSpec(data []byte) (*tierdocs.TargetSpec, error) {
	var raw targetSpecJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid target spec JSON: %w", err)
	}

	spec := &tierdocs.TargetSpec{
		HostTools: raw.Metadata.HostTools,
		Std:       raw.Metadata.Std,
	}
	if raw.Metadata.Description != nil {
		spec.Description = *raw.Metadata.Description
	}
	if raw.Metadata.Tier != nil {
		tier, err := tierdocs.ParseTier(fmt.Sprint(*raw.Metadata.Tier))
		if err != nil {
			return nil, fmt.Errorf("target spec metadata: %w", err)
		}
		spec.TierHint = &tier
	}
	return spec, nil
}

// Verify RustcProvider implements the interface at compile time
var _ tierdocs.FactProvider = (*RustcProvider)(nil)
