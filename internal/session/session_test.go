package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWiresBuiltinsIntoBothEnvironments(t *testing.T) {
	sess, err := New(t.TempDir())
	require.NoError(t, err)
	defer sess.Close()

	_, ok := sess.TypeEnv.Lookup("show")
	require.True(t, ok, "expected show's scheme installed into the starting type environment")
	_, ok = sess.ValueEnv.Get("show")
	require.True(t, ok, "expected show installed into the global value environment")
}

func TestNewGivesLoaderTheSameEvaluatorAndNamespace(t *testing.T) {
	sess, err := New(t.TempDir())
	require.NoError(t, err)
	defer sess.Close()

	require.Same(t, sess.Eval, sess.Loader.Evaluator, "expected the loader to share the session's evaluator")
	require.NotNil(t, sess.Eval.Namespace, "expected New to wire a namespace manager into the evaluator")
}

func TestFreshVarGenIsSharedAcrossTypeEnvAndLoader(t *testing.T) {
	sess, err := New(t.TempDir())
	require.NoError(t, err)
	defer sess.Close()

	require.Same(t, sess.Gen, sess.Loader.Gen, "expected the loader to reuse the session's VarGen so ids stay globally unique")
}

func TestCloseDoesNotPanicOnASessionThatNeverLogged(t *testing.T) {
	sess, err := New(t.TempDir())
	require.NoError(t, err)
	sess.Close()
}
