package module

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/solislang/solis/internal/eval"
	"github.com/solislang/solis/internal/types"
	"github.com/solislang/solis/internal/value"
)

func newTestLoader(t *testing.T, workingDir string) (*Loader, *types.Env, *eval.Environment) {
	t.Helper()
	ev := eval.New()
	l, err := NewLoader(workingDir, types.NewVarGen(), ev, zap.NewNop().Sugar())
	require.NoError(t, err)
	return l, types.NewEnv(), eval.NewEnvironment()
}

func writeFixture(t *testing.T, path, src string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
}

func TestLoaderLoadFileExportsTopLevelDecls(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.solis")
	writeFixture(t, path, "let answer = 42\n")

	l, typeEnv, valueEnv := newTestLoader(t, dir)
	loaded, err := l.LoadFile(path, typeEnv, valueEnv)
	require.NoError(t, err)

	v, ok := loaded.ExportVal["answer"]
	require.True(t, ok, "expected answer to be exported")
	forced, err := value.Force(v)
	require.NoError(t, err)
	iv, ok := forced.(*value.IntValue)
	require.True(t, ok)
	require.Equal(t, int64(42), iv.Value)
}

func TestLoaderResolvesAndLoadsAnImportedModule(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, filepath.Join(dir, "Greeting.solis"), "let hello = 1\n")
	mainPath := filepath.Join(dir, "main.solis")
	writeFixture(t, mainPath, "import Greeting\nlet result = hello\n")

	l, typeEnv, valueEnv := newTestLoader(t, dir)
	loaded, err := l.LoadFile(mainPath, typeEnv, valueEnv)
	require.NoError(t, err)

	v, ok := loaded.ExportVal["result"]
	require.True(t, ok, "expected result to be exported")
	forced, err := value.Force(v)
	require.NoError(t, err)
	iv, ok := forced.(*value.IntValue)
	require.True(t, ok)
	require.Equal(t, int64(1), iv.Value, "expected result imported from Greeting")
}

func TestLoaderCircularImportIsRejected(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, filepath.Join(dir, "A.solis"), "import B\nlet a = 1\n")
	writeFixture(t, filepath.Join(dir, "B.solis"), "import A\nlet b = 1\n")
	mainPath := filepath.Join(dir, "A.solis")

	l, typeEnv, valueEnv := newTestLoader(t, dir)
	_, err := l.LoadFile(mainPath, typeEnv, valueEnv)
	require.Error(t, err, "expected a circular-dependency error")
}

func TestLoaderCachesByIdentity(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, filepath.Join(dir, "Shared.solis"), "let v = 1\n")
	writeFixture(t, filepath.Join(dir, "Left.solis"), "import Shared\nlet l = v\n")
	writeFixture(t, filepath.Join(dir, "Right.solis"), "import Shared\nlet r = v\n")
	mainPath := filepath.Join(dir, "main.solis")
	writeFixture(t, mainPath, "import Left\nimport Right\nlet total = l + r\n")

	l, typeEnv, valueEnv := newTestLoader(t, dir)
	loaded, err := l.LoadFile(mainPath, typeEnv, valueEnv)
	require.NoError(t, err)

	v, ok := loaded.ExportVal["total"]
	require.True(t, ok, "expected total to be exported")
	forced, err := value.Force(v)
	require.NoError(t, err)
	iv, ok := forced.(*value.IntValue)
	require.True(t, ok)
	require.Equal(t, int64(2), iv.Value, "Shared should be loaded once and reused by both Left and Right")
}
