// Package output renders gpm's user-facing terminal output.
//
// Two pieces live here:
//
//  1. Terminal, the line reporter used during a run. Status lines are
//     appended; download progress re-renders a single line in place.
//  2. RenderSummary, which executes the embedded summary template and
//     expands its style tags (e.g. <Success>text</Success>) through the
//     styles registry.
//
// Colors are dropped when the writer is not a terminal or NO_COLOR is set.
package output
