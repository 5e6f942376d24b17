package generate

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/tierdocs/internal/facts"
	"github.com/vvka-141/tierdocs/internal/files/filesystem"
	"github.com/vvka-141/tierdocs/internal/render"
	"github.com/vvka-141/tierdocs/internal/resolve"
	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

// Output is one file produced by a run. Path is relative to the output
// directory and uses forward slashes.
type Output struct {
	Path    string
	Content string
}

// Plan is the complete result of a run, held in memory.
type Plan struct {
	// Root is the output directory the paths of Outputs are relative to
	Root string

	// Targets holds the resolved record of every target, in provider order
	Targets []*tierdocs.TargetDocs

	// Outputs lists the files to write: target pages, the summary, then the spliced static files
	Outputs []Output
}

// Resolution is the resolved record of one target together with the
// patterns that contributed to it.
type Resolution struct {
	Docs     *tierdocs.TargetDocs
	Patterns []string
}

// Generator builds plans from target info documents and a fact provider.
// Thread-Safety: safe for concurrent use; every call loads its own pattern store.
type Generator struct {
	scanner    tierdocs.TargetInfoScanner
	provider   tierdocs.FactProvider
	logger     tierdocs.Logger
	fsProvider filesystem.FileSystemProvider
	tables     []render.TierTable
}

// NewGenerator creates a Generator with all dependencies injected.
// Panics on nil dependencies: they are wiring mistakes, not runtime conditions.
func NewGenerator(
	scanner tierdocs.TargetInfoScanner,
	provider tierdocs.FactProvider,
	logger tierdocs.Logger,
	fsProvider filesystem.FileSystemProvider,
) *Generator {
	if scanner == nil {
		panic("scanner cannot be nil")
	}
	if provider == nil {
		panic("provider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}

	return &Generator{
		scanner:    scanner,
		provider:   provider,
		logger:     logger,
		fsProvider: fsProvider,
		tables:     render.DefaultTierTables(),
	}
}

// Plan runs every phase up to rendering. Any error aborts the run and no
// plan is returned.
func (g *Generator) Plan(ctx context.Context, config tierdocs.GenerateConfig) (*Plan, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	workers := workerCount(config.Workers)

	store, err := g.load(config)
	if err != nil {
		return nil, err
	}

	targets, err := g.targets(ctx)
	if err != nil {
		return nil, err
	}

	targetFacts, err := g.fetchFacts(ctx, targets, workers)
	if err != nil {
		return nil, err
	}
	g.logger.Verbose("Fetched facts for %d targets", len(targets))

	docs, err := store.ResolveAll(ctx, targets, workers)
	if err != nil {
		return nil, err
	}

	if err := store.Validate(); err != nil {
		return nil, err
	}
	g.logger.Verbose("Resolved %d targets against %d patterns", len(docs), store.Len())

	outputs, err := g.render(config, docs, targetFacts)
	if err != nil {
		return nil, err
	}

	return &Plan{
		Root:    config.OutputPath,
		Targets: docs,
		Outputs: outputs,
	}, nil
}

// Resolve loads the target info documents and resolves a single target.
// Facts are not fetched and usage is not validated.
func (g *Generator) Resolve(config tierdocs.GenerateConfig, target string) (*Resolution, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	store, err := g.load(config)
	if err != nil {
		return nil, err
	}

	docs, err := store.Resolve(target)
	if err != nil {
		return nil, err
	}
	return &Resolution{Docs: docs, Patterns: store.MatchingPatterns(target)}, nil
}

// List resolves every target of the fact provider, in provider order.
func (g *Generator) List(ctx context.Context, config tierdocs.GenerateConfig) ([]*Resolution, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	store, err := g.load(config)
	if err != nil {
		return nil, err
	}

	targets, err := g.targets(ctx)
	if err != nil {
		return nil, err
	}

	docs, err := store.ResolveAll(ctx, targets, workerCount(config.Workers))
	if err != nil {
		return nil, err
	}

	resolutions := make([]*Resolution, len(docs))
	for i, d := range docs {
		resolutions[i] = &Resolution{Docs: d, Patterns: store.MatchingPatterns(d.Name)}
	}
	return resolutions, nil
}

func (g *Generator) load(config tierdocs.GenerateConfig) (*resolve.Store, error) {
	infos, err := g.scanner.ScanDirectory(config.TargetInfoPath, config.Sections)
	if err != nil {
		return nil, err
	}
	g.logger.Verbose("Loaded %d target info documents from %s", len(infos), config.TargetInfoPath)

	return resolve.NewStore(infos)
}

func (g *Generator) targets(ctx context.Context) ([]string, error) {
	targets, err := g.provider.Targets(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(targets))
	for _, t := range targets {
		if seen[t] {
			return nil, &facts.Error{Err: fmt.Errorf("target %s listed twice", t)}
		}
		seen[t] = true
	}

	g.logger.Verbose("Fact provider listed %d targets", len(targets))
	return targets, nil
}

// fetchFacts queries the provider for every target with at most workers
// concurrent calls. The first failure cancels the rest.
func (g *Generator) fetchFacts(ctx context.Context, targets []string, workers int) ([]tierdocs.Facts, error) {
	results := make([]tierdocs.Facts, len(targets))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i, target := range targets {
		i, target := i, target
		eg.Go(func() error {
			f, err := g.provider.Facts(ctx, target)
			if err != nil {
				var factErr *facts.Error
				if !errors.As(err, &factErr) {
					err = &facts.Error{Target: target, Err: err}
				}
				return err
			}
			results[i] = f
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (g *Generator) render(config tierdocs.GenerateConfig, docs []*tierdocs.TargetDocs, targetFacts []tierdocs.Facts) ([]Output, error) {
	outputs := make([]Output, 0, len(docs)+3)

	for i, d := range docs {
		outputs = append(outputs, Output{
			Path:    path.Join(tierdocs.TargetPagesDir, d.Name+".md"),
			Content: render.TargetPage(d, targetFacts[i], config.Sections),
		})
	}

	outputs = append(outputs, Output{
		Path:    path.Join(tierdocs.TargetPagesDir, "SUMMARY.md"),
		Content: render.Summary(docs),
	})

	targetList, err := g.readStatic(config, tierdocs.TargetListFile)
	if err != nil {
		return nil, err
	}
	targetList, err = render.ReplaceRegion(targetList, render.TargetListRegion,
		render.TargetList(docs, tierdocs.TargetListLinkPrefix))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tierdocs.TargetListFile, err)
	}
	outputs = append(outputs, Output{Path: tierdocs.TargetListFile, Content: targetList})

	platformSupport, err := g.readStatic(config, tierdocs.PlatformSupportFile)
	if err != nil {
		return nil, err
	}
	platformSupport, err = render.PlatformSupport(platformSupport, docs, g.tables, tierdocs.TargetTableLinkPrefix)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tierdocs.PlatformSupportFile, err)
	}
	outputs = append(outputs, Output{Path: tierdocs.PlatformSupportFile, Content: platformSupport})

	g.logger.Verbose("Rendered %d outputs", len(outputs))
	return outputs, nil
}

func (g *Generator) readStatic(config tierdocs.GenerateConfig, rel string) (string, error) {
	p := filepath.Join(config.OutputPath, filepath.FromSlash(rel))
	data, err := g.fsProvider.ReadFile(p)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", p, err)
	}
	return string(data), nil
}

func workerCount(workers int) int {
	if workers > 0 {
		return workers
	}
	return runtime.GOMAXPROCS(0)
}
