// Package generate orchestrates a generation run.
//
// A run is split into phases that never overlap:
//
//	load     target info documents are scanned and parsed
//	fetch    the fact provider lists targets and their facts
//	resolve  every target is resolved against the pattern store
//	validate patterns and metadata rules that matched nothing are reported
//	render   pages, the summary and the spliced static files are built in memory
//
// Plan performs all of them and returns the outputs without touching the
// documentation tree. Emit writes a plan; Diff compares it with what is on disk.
package generate
