// Package facts supplies the target list and per-target facts that the
// documents themselves do not carry.
//
// Two providers implement tierdocs.FactProvider:
//
//   - RustcProvider asks a rustc binary: `--print target-list`,
//     `--print cfg --target T` and, when enabled, the unstable
//     `--print target-spec-json` for the target's description and tier hint.
//   - StaticProvider reads the same data from a YAML file, for offline runs,
//     CI without a toolchain, and tests.
//
// Failures are reported as *Error values naming the target and wrapping
// tierdocs.ErrFactProvider.
package facts
