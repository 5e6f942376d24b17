package facts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/tierdocs/internal/files/filesystem"
	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

// StaticFile is the YAML schema read by StaticProvider:
//
//	targets:
//	  - name: x86_64-unknown-linux-gnu
//	    cfg:
//	      - target_arch="x86_64"
//	      - unix
//	    spec:
//	      description: 64-bit Linux
//	      tier: "1"
//	      host_tools: true
//	      std: true
type StaticFile struct {
	Targets []StaticTarget `yaml:"targets"`
}

// StaticTarget is one target of a StaticFile. Cfg lines use the format of `rustc --print cfg`.
type StaticTarget struct {
	Name string      `yaml:"name"`
	Cfg  []string    `yaml:"cfg,omitempty"`
	Spec *StaticSpec `yaml:"spec,omitempty"`
}

// StaticSpec mirrors the metadata block of a target spec.
type StaticSpec struct {
	Description string         `yaml:"description,omitempty"`
	Tier        *tierdocs.Tier `yaml:"tier,omitempty"`
	HostTools   *bool          `yaml:"host_tools,omitempty"`
	Std         *bool          `yaml:"std,omitempty"`
}

// StaticProvider serves targets and facts from memory.
// It is safe for concurrent use.
type StaticProvider struct {
	order []string
	facts map[string]tierdocs.Facts
}

// NewStaticProvider builds a provider from already decoded data.
func NewStaticProvider(file StaticFile) (*StaticProvider, error) {
	p := &StaticProvider{facts: make(map[string]tierdocs.Facts, len(file.Targets))}

	for _, t := range file.Targets {
		if t.Name == "" {
			return nil, &Error{Err: errors.New("static facts: target without a name")}
		}
		if _, dup := p.facts[t.Name]; dup {
			return nil, &Error{Target: t.Name, Err: errors.New("static facts: target listed twice")}
		}

		var lines bytes.Buffer
		for _, line := range t.Cfg {
			lines.WriteString(line)
			lines.WriteByte('\n')
		}
		cfg, err := ParseCfg(lines.String())
		if err != nil {
			return nil, &Error{Target: t.Name, Err: err}
		}

		facts := tierdocs.Facts{Cfg: cfg}
		if t.Spec != nil {
			facts.Spec = &tierdocs.TargetSpec{
				Description: t.Spec.Description,
				TierHint:    t.Spec.Tier,
				HostTools:   t.Spec.HostTools,
				Std:         t.Spec.Std,
			}
		}

		p.order = append(p.order, t.Name)
		p.facts[t.Name] = facts
	}

	return p, nil
}

// LoadStaticProvider reads a StaticFile through fsProvider.
func LoadStaticProvider(fsProvider filesystem.FileSystemProvider, path string) (*StaticProvider, error) {
	data, err := fsProvider.ReadFile(path)
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("reading static facts %s: %w", path, err)}
	}

	var file StaticFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, &Error{Err: fmt.Errorf("parsing static facts %s: %w", path, err)}
	}

	return NewStaticProvider(file)
}

// Targets returns the targets in file order.
func (p *StaticProvider) Targets(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Err: err}
	}
	return append([]string(nil), p.order...), nil
}

// Facts returns the facts of a listed target.
func (p *StaticProvider) Facts(ctx context.Context, target string) (tierdocs.Facts, error) {
	if err := ctx.Err(); err != nil {
		return tierdocs.Facts{}, &Error{Target: target, Err: err}
	}
	facts, ok := p.facts[target]
	if !ok {
		return tierdocs.Facts{}, &Error{Target: target, Err: errors.New("unknown target")}
	}
	return facts, nil
}

// Verify StaticProvider implements the interface at compile time
var _ tierdocs.FactProvider = (*StaticProvider)(nil)
