package resolve

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/tierdocs/internal/targetinfo"
	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

func info(pattern string, opts ...func(*tierdocs.TargetInfo)) *tierdocs.TargetInfo {
	i := &tierdocs.TargetInfo{Pattern: pattern, Source: "target_infos/" + pattern + ".md"}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func withTier(t tierdocs.Tier) func(*tierdocs.TargetInfo) {
	return func(i *tierdocs.TargetInfo) { i.Tier = tierdocs.TierPtr(t) }
}

func withMaintainers(m ...string) func(*tierdocs.TargetInfo) {
	return func(i *tierdocs.TargetInfo) { i.Maintainers = m }
}

func withSection(name, content string) func(*tierdocs.TargetInfo) {
	return func(i *tierdocs.TargetInfo) {
		i.Sections = append(i.Sections, tierdocs.Section{Name: name, Content: content})
	}
}

func withMetadata(pattern, notes string) func(*tierdocs.TargetInfo) {
	return func(i *tierdocs.TargetInfo) {
		i.Metadata = append(i.Metadata, tierdocs.TargetMetadata{
			Pattern: pattern,
			Notes:   notes,
			Std:     tierdocs.TriStateTrue,
			Host:    tierdocs.TriStateFalse,
		})
	}
}

func newStore(t *testing.T, infos ...*tierdocs.TargetInfo) *Store {
	t.Helper()
	store, err := NewStore(infos)
	require.NoError(t, err)
	return store
}

func TestResolve_EndToEndExample(t *testing.T) {
	doc, err := targetinfo.Parse("x86-demo-*", "target_infos/x86-demo-*.md",
		"---\ntier: \"1\"\nmaintainers: [\"@ferris\"]\n---\n## Testing\nworks great\n",
		tierdocs.DefaultSections)
	require.NoError(t, err)

	store := newStore(t, doc)
	docs, err := store.Resolve("x86-demo-os")
	require.NoError(t, err)

	assert.Equal(t, "x86-demo-os", docs.Name)
	require.NotNil(t, docs.Tier)
	assert.Equal(t, tierdocs.TierOne, *docs.Tier)
	assert.Equal(t, []string{"@ferris"}, docs.Maintainers)
	assert.Equal(t, []tierdocs.Section{{Name: "Testing", Content: "works great"}}, docs.Sections)
	assert.Nil(t, docs.Metadata)

	assert.NoError(t, store.Validate())
}

func TestResolve_Merging(t *testing.T) {
	store := newStore(t,
		info("*-linux-*", withMaintainers("@linux"), withSection("Building", "make")),
		info("x86_64-*", withTier(tierdocs.TierTwo), withMaintainers("@x86")),
		info("x86_64-unknown-linux-gnu", withMaintainers("@gnu"), withSection("Testing", "ci"),
			withMetadata("x86_64-unknown-linux-gnu", "64-bit Linux")),
	)

	docs, err := store.Resolve("x86_64-unknown-linux-gnu")
	require.NoError(t, err)

	assert.Equal(t, []string{"@linux", "@x86", "@gnu"}, docs.Maintainers)
	assert.Equal(t, tierdocs.TierTwo, *docs.Tier)
	assert.Equal(t, []tierdocs.Section{
		{Name: "Building", Content: "make"},
		{Name: "Testing", Content: "ci"},
	}, docs.Sections)
	require.NotNil(t, docs.Metadata)
	assert.Equal(t, "64-bit Linux", docs.Metadata.Notes)
	assert.Equal(t, tierdocs.TriStateTrue, docs.Metadata.Std)

	other, err := store.Resolve("aarch64-unknown-linux-musl")
	require.NoError(t, err)
	assert.Nil(t, other.Tier)
	assert.Equal(t, []string{"@linux"}, other.Maintainers)
	assert.Nil(t, other.Metadata)
}

func TestResolve_Conflicts(t *testing.T) {
	tests := []struct {
		name        string
		infos       []*tierdocs.TargetInfo
		target      string
		wantKind    ConflictKind
		wantSection string
		wantFirst   string
		wantSecond  string
	}{
		{
			name: "tier",
			infos: []*tierdocs.TargetInfo{
				info("x86_64-*", withTier(tierdocs.TierOne)),
				info("*-linux-gnu", withTier(tierdocs.TierTwo)),
			},
			target:     "x86_64-unknown-linux-gnu",
			wantKind:   MultipleTierSources,
			wantFirst:  "x86_64-*",
			wantSecond: "*-linux-gnu",
		},
		{
			name: "section",
			infos: []*tierdocs.TargetInfo{
				info("x86_64-*", withSection("Testing", "a")),
				info("*-linux-gnu", withSection("Testing", "b")),
			},
			target:      "x86_64-unknown-linux-gnu",
			wantKind:    MultipleSectionSources,
			wantSection: "Testing",
			wantFirst:   "x86_64-*",
			wantSecond:  "*-linux-gnu",
		},
		{
			name: "metadata across documents",
			infos: []*tierdocs.TargetInfo{
				info("x86_64-*", withMetadata("x86_64-*", "a")),
				info("*-linux-gnu", withMetadata("*", "b")),
			},
			target:     "x86_64-unknown-linux-gnu",
			wantKind:   MultipleMetadataSources,
			wantFirst:  "x86_64-* (metadata x86_64-*)",
			wantSecond: "*-linux-gnu (metadata *)",
		},
		{
			name: "metadata within one document",
			infos: []*tierdocs.TargetInfo{
				info("x86_64-*", withMetadata("x86_64-*", "a"), withMetadata("*-gnu", "b")),
			},
			target:     "x86_64-unknown-linux-gnu",
			wantKind:   MultipleMetadataSources,
			wantFirst:  "x86_64-* (metadata x86_64-*)",
			wantSecond: "x86_64-* (metadata *-gnu)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t, tt.infos...)

			_, err := store.Resolve(tt.target)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tierdocs.ErrConflict))

			var conflict *ConflictError
			require.True(t, errors.As(err, &conflict))
			assert.Equal(t, tt.target, conflict.Target)
			assert.Equal(t, tt.wantKind, conflict.Kind)
			assert.Equal(t, tt.wantSection, conflict.Section)
			assert.Equal(t, tt.wantFirst, conflict.First)
			assert.Equal(t, tt.wantSecond, conflict.Second)
			assert.Contains(t, err.Error(), "more specific pattern")
		})
	}
}

func TestResolve_NonOverlappingPatternsDoNotConflict(t *testing.T) {
	store := newStore(t,
		info("x86_64-*", withSection("Testing", "a")),
		info("aarch64-*", withSection("Testing", "b")),
	)

	x86, err := store.Resolve("x86_64-unknown-linux-gnu")
	require.NoError(t, err)
	arm, err := store.Resolve("aarch64-unknown-linux-gnu")
	require.NoError(t, err)

	assert.Equal(t, "a", x86.Sections[0].Content)
	assert.Equal(t, "b", arm.Sections[0].Content)
}

func TestResolve_GlobSemantics(t *testing.T) {
	tests := []struct {
		pattern string
		target  string
		want    bool
	}{
		{"x86_64-*", "x86_64-unknown-linux-gnu", true},
		{"*-linux-*", "x86_64-unknown-linux-gnu", true},
		{"linux", "x86_64-unknown-linux-gnu", false},
		{"X86_64-*", "x86_64-unknown-linux-gnu", false},
		{"i?86-*", "i686-pc-windows-msvc", true},
		{"i[3-6]86-*", "i586-unknown-linux-gnu", true},
		{"i[3-6]86-*", "i786-unknown-linux-gnu", false},
		{"{aarch64,arm64}-*", "arm64-apple-ios", true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s~%s", tt.pattern, tt.target), func(t *testing.T) {
			store := newStore(t, info(tt.pattern))
			got := len(store.MatchingPatterns(tt.target)) == 1
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewStore_Errors(t *testing.T) {
	_, err := NewStore([]*tierdocs.TargetInfo{info("x86_64-[")})
	require.Error(t, err)
	var patternErr *PatternError
	require.True(t, errors.As(err, &patternErr))
	assert.Equal(t, "x86_64-[", patternErr.Pattern)
	assert.True(t, errors.Is(err, tierdocs.ErrParse))

	_, err = NewStore([]*tierdocs.TargetInfo{info("a", withMetadata("{b", "x"))})
	require.True(t, errors.As(err, &patternErr))
	assert.Equal(t, "{b", patternErr.MetadataPattern)

	_, err = NewStore([]*tierdocs.TargetInfo{info("a"), info("a")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, tierdocs.ErrParse))
}

func TestValidate_UnusedPatterns(t *testing.T) {
	store := newStore(t,
		info("x86_64-*", withMetadata("x86_64-*-gnu", "gnu"), withMetadata("x86_64-*-musl", "musl")),
		info("riscv128-*"),
	)

	_, err := store.ResolveAll(context.Background(), []string{"x86_64-unknown-linux-gnu"}, 2)
	require.NoError(t, err)

	err = store.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, tierdocs.ErrUnusedPattern))

	var unused []*UnusedPatternError
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		var u *UnusedPatternError
		require.True(t, errors.As(e, &u))
		unused = append(unused, u)
	}
	require.Len(t, unused, 2)
	assert.Equal(t, "x86_64-*", unused[0].Pattern)
	assert.Equal(t, "x86_64-*-musl", unused[0].MetadataPattern)
	assert.Equal(t, "riscv128-*", unused[1].Pattern)
	assert.Empty(t, unused[1].MetadataPattern)
}

func TestValidate_NestedRuleNeedsParentMatch(t *testing.T) {
	// the nested pattern matches the target, but the document does not
	store := newStore(t,
		info("aarch64-*", withMetadata("*", "any")),
		info("x86_64-*"),
	)
	docs, err := store.Resolve("x86_64-unknown-linux-gnu")
	require.NoError(t, err)
	assert.Nil(t, docs.Metadata)

	err = store.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `pattern "aarch64-*"`)
}

func TestResolveAll(t *testing.T) {
	store := newStore(t,
		info("*-linux-*", withMaintainers("@linux")),
		info("x86_64-*", withTier(tierdocs.TierOne)),
	)

	targets := make([]string, 0, 50)
	for i := 0; i < 25; i++ {
		targets = append(targets, fmt.Sprintf("x86_64-v%d-linux-gnu", i), fmt.Sprintf("arm%d-none-linux-eabi", i))
	}

	results, err := store.ResolveAll(context.Background(), targets, 4)
	require.NoError(t, err)
	require.Len(t, results, len(targets))
	for i, docs := range results {
		assert.Equal(t, targets[i], docs.Name)
	}
	assert.NoError(t, store.Validate())
}

func TestResolveAll_StopsOnConflict(t *testing.T) {
	store := newStore(t,
		info("*", withTier(tierdocs.TierThree)),
		info("x86_64-*", withTier(tierdocs.TierOne)),
	)

	_, err := store.ResolveAll(context.Background(), []string{"aarch64-a", "x86_64-b"}, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, tierdocs.ErrConflict))
}

func TestResolveAll_Canceled(t *testing.T) {
	store := newStore(t, info("*"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.ResolveAll(ctx, []string{"a", "b"}, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
