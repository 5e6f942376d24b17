// Package render turns resolved target records into Markdown.
//
// It produces:
//   - one page per target (TargetPage)
//   - the tier tables of platform-support.md (RenderTable, PlatformSupport)
//   - the target list of platform-support/targets.md (TargetList)
//   - the SUMMARY.md index of all target pages (Summary)
//
// Generated tables and lists are spliced into hand-written files between
// marker lines (ReplaceRegion):
//
//	<!-- TIER1HOST SECTION START -->
//	...generated...
//	<!-- TIER1HOST SECTION END -->
//
// Everything outside the markers is preserved byte for byte.
//
// All functions are pure; they never touch the filesystem.
package render
