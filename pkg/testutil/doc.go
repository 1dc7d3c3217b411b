// Package testutil provides test doubles and fixtures for gpm components.
//
// Key components:
//   - ScriptedConfirmer: answers prompts from a queue and records questions
//   - RecordingReporter: captures status and progress lines
//   - FakeCatalog, FakeInstaller, FakeTransfer: narrow collaborator doubles
//   - Archive writers (zip, tar.gz, tar.xz) and site fixtures on t.TempDir()
//
// Tests that touch symlinks or run the real installer use a real temporary
// directory; in-memory afero filesystems are only used for copy helpers.
package testutil
