package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pumlicons/internal/files/filesystem"
	"github.com/vvka-141/pumlicons/internal/logging"
	"github.com/vvka-141/pumlicons/internal/tui"
	"github.com/vvka-141/pumlicons/internal/upgrade"
	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

const headerPrefix = "!define AWSPuml https://raw.githubusercontent.com/awslabs/aws-icons-for-plantuml/"

const (
	oldDiagram = "@startuml\n" +
		headerPrefix + "v14.0/dist\n" +
		"!include AWSPuml/AWSCommon.puml\n" +
		"!include AWSPuml/ApplicationIntegration/APIGateway.puml\n" +
		"@enduml\n"
	currentDiagram = "@startuml\n" +
		headerPrefix + "v19.0/dist\n" +
		"!include AWSPuml/AWSCommon.puml\n" +
		"@enduml\n"
	unsupportedDiagram = headerPrefix + "v12.0/dist\n!include AWSPuml/ARVR/all.puml\n"
	plainDiagram       = "@startuml\nA -> B\n@enduml\n"
)

type fakeApprover struct {
	approve bool
	err     error
	files   []string
}

func (a *fakeApprover) RequestApproval(ctx context.Context, files []string) (bool, error) {
	a.files = files
	return a.approve, a.err
}

func newUpgrader(t *testing.T) (*upgrader, *filesystem.MemoryFileSystem, *bytes.Buffer) {
	t.Helper()
	fs := filesystem.NewMemoryFileSystem("/docs")
	fs.AddFile("old.puml", oldDiagram)
	fs.AddFile("current.puml", currentDiagram)
	fs.AddFile("unsupported.puml", unsupportedDiagram)
	fs.AddFile("plain.puml", plainDiagram)

	var out bytes.Buffer
	u := &upgrader{
		fs:      fs,
		engine:  upgrade.MustNewEngine(),
		printer: tui.NewPlainPrinter(&out),
		logger:  logging.NewNullLogger(),
	}
	return u, fs, &out
}

func read(t *testing.T, fs filesystem.FileSystemProvider, p string) string {
	t.Helper()
	data, err := fs.ReadFile(p)
	require.NoError(t, err)
	return string(data)
}

func TestUpgrader_Plan(t *testing.T) {
	u, _, out := newUpgrader(t)

	writes, failed := u.Plan([]string{"old.puml", "current.puml", "unsupported.puml", "plain.puml", "missing.puml"})

	assert.Equal(t, 2, failed, "unsupported and unreadable files fail")
	require.Len(t, writes, 1)
	assert.Equal(t, "old.puml", writes[0].path)
	assert.Contains(t, writes[0].text, "!include AWSPuml/NetworkingContentDelivery/APIGateway.puml\n")
	assert.Contains(t, writes[0].text, headerPrefix+"v19.0/dist\n")

	text := out.String()
	assert.Contains(t, text, "old.puml (v14.0 -> v19.0)")
	assert.Contains(t, text, "- !include AWSPuml/ApplicationIntegration/APIGateway.puml")
	assert.Contains(t, text, "+ !include AWSPuml/NetworkingContentDelivery/APIGateway.puml")
	assert.Contains(t, text, "unsupported.puml: version v12.0 is not supported")
	assert.NotContains(t, text, "current.puml")
}

func TestUpgrader_RunDryRun(t *testing.T) {
	u, fs, out := newUpgrader(t)

	err := u.Run(context.Background(), []string{"old.puml"}, nil)
	require.NoError(t, err)
	assert.Equal(t, oldDiagram, read(t, fs, "old.puml"), "nothing written without approver")
	assert.Contains(t, out.String(), "run with --overwrite")
}

func TestUpgrader_RunApproved(t *testing.T) {
	u, fs, _ := newUpgrader(t)
	approver := &fakeApprover{approve: true}

	err := u.Run(context.Background(), []string{"current.puml", "old.puml"}, approver)
	require.NoError(t, err)

	assert.Equal(t, []string{"old.puml"}, approver.files)
	got := read(t, fs, "old.puml")
	assert.Equal(t, "@startuml\n"+
		headerPrefix+"v19.0/dist\n"+
		"!include AWSPuml/AWSCommon.puml\n"+
		"!include AWSPuml/NetworkingContentDelivery/APIGateway.puml\n"+
		"@enduml\n", got)
	assert.Equal(t, currentDiagram, read(t, fs, "current.puml"))
}

func TestUpgrader_RunDenied(t *testing.T) {
	u, fs, _ := newUpgrader(t)

	err := u.Run(context.Background(), []string{"old.puml"}, &fakeApprover{approve: false})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pumlicons.ErrApprovalDenied))
	assert.Equal(t, pumlicons.ExitApprovalDenied, pumlicons.ExitCodeForError(err))
	assert.Equal(t, oldDiagram, read(t, fs, "old.puml"))
}

func TestUpgrader_RunApprovalError(t *testing.T) {
	u, _, _ := newUpgrader(t)

	err := u.Run(context.Background(), []string{"old.puml"}, &fakeApprover{err: context.Canceled})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUpgrader_RunContinuesPastUnsupported(t *testing.T) {
	u, fs, _ := newUpgrader(t)

	err := u.Run(context.Background(), []string{"unsupported.puml", "old.puml"}, &fakeApprover{approve: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 document(s) could not be upgraded")
	assert.NotEqual(t, oldDiagram, read(t, fs, "old.puml"), "the rest of the batch is written")
	assert.Equal(t, unsupportedDiagram, read(t, fs, "unsupported.puml"))
}

func TestUpgrader_PreservesCRLF(t *testing.T) {
	u, fs, _ := newUpgrader(t)
	fs.AddFile("crlf.puml", headerPrefix+"v14.0/dist\r\n!include AWSPuml/ApplicationIntegration/APIGateway.puml\r\n")

	require.NoError(t, u.Run(context.Background(), []string{"crlf.puml"}, &fakeApprover{approve: true}))
	assert.Equal(t, headerPrefix+"v19.0/dist\r\n!include AWSPuml/NetworkingContentDelivery/APIGateway.puml\r\n", read(t, fs, "crlf.puml"))
}

func TestExpandGlobs(t *testing.T) {
	dir := t.TempDir()
	for _, rel := range []string{"a.puml", "nested/b.puml", "nested/deeper/c.puml", "notes.txt"} {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}

	paths, err := expandGlobs([]string{
		filepath.Join(dir, "**", "*.puml"),
		filepath.Join(dir, "a.puml"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.puml"),
		filepath.Join(dir, "nested", "b.puml"),
		filepath.Join(dir, "nested", "deeper", "c.puml"),
	}, paths)
}

func TestExpandGlobs_NoMatch(t *testing.T) {
	dir := t.TempDir()

	_, err := expandGlobs([]string{filepath.Join(dir, "*.puml")})
	require.Error(t, err)
	assert.Equal(t, pumlicons.ExitUsageError, pumlicons.ExitCodeForError(err))

	paths, err := expandGlobs([]string{filepath.Join(dir, "missing.puml")})
	require.NoError(t, err, "plain paths are kept and reported when read")
	assert.Equal(t, []string{filepath.Join(dir, "missing.puml")}, paths)
}

func TestRunUpgrade_ForceRequiresOverwrite(t *testing.T) {
	saved := upgradeFlags
	t.Cleanup(func() { upgradeFlags = saved })
	upgradeFlags = upgradeFlagValues{force: true}

	err := runUpgrade(upgradeCmd, []string{"a.puml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force requires --overwrite")
}

func TestRunUpgrade_NonInteractiveOverwriteNeedsForce(t *testing.T) {
	saved := upgradeFlags
	t.Cleanup(func() { upgradeFlags = saved })
	upgradeFlags = upgradeFlagValues{overwrite: true}

	dir := t.TempDir()
	doc := filepath.Join(dir, "old.puml")
	require.NoError(t, os.WriteFile(doc, []byte(oldDiagram), 0o644))

	err := runUpgrade(upgradeCmd, []string{doc})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pumlicons.ErrApprovalDenied))

	data, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, oldDiagram, string(data))
}
