package builtins

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gYonder/posh/internal/history"
	"github.com/gYonder/posh/internal/session"
	"github.com/stretchr/testify/require"
)

func TestClassify_Builtins(t *testing.T) {
	for name, want := range map[string]Kind{
		"exit": Exit, "echo": Echo, "type": Type,
		"pwd": Pwd, "cd": Cd, "history": History,
	} {
		got := Classify(name)
		require.Equal(t, want, got.Kind, name)
	}
}

func TestClassify_ResolvesFromPath(t *testing.T) {
	dir := t.TempDir()
	binPath := filepath.Join(dir, "mytool")
	require.NoError(t, os.WriteFile(binPath, []byte("#!/bin/sh\n"), 0o755))

	t.Setenv("PATH", dir)
	cls := Classify("mytool")
	require.Equal(t, Executable, cls.Kind)
	require.Equal(t, binPath, cls.ResolvedPath)
}

func TestClassify_NonExecutableFileIsInvalid(t *testing.T) {
	dir := t.TempDir()
	notExec := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(notExec, []byte("x"), 0o644))

	t.Setenv("PATH", dir)
	cls := Classify("data.txt")
	require.Equal(t, Invalid, cls.Kind)
}

func TestRunEcho(t *testing.T) {
	var buf bytes.Buffer
	err := runEcho(&Env{Stdout: &buf}, []string{"hello", "world"})
	require.NoError(t, err)
	require.Equal(t, "hello world\n", buf.String())
}

func TestRunHistory_WriteFlagPersistsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "histfile")
	history.Default().Add("echo hi")

	var buf bytes.Buffer
	require.NoError(t, runHistory(&Env{Stdout: &buf}, []string{"-w", path}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "echo hi")
}

func TestRunType(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runType(&Env{Stdout: &buf}, []string{"cd"}))
	require.Equal(t, "cd is a shell builtin\n", buf.String())

	buf.Reset()
	require.NoError(t, runType(&Env{Stdout: &buf}, []string{"nonesuch-definitely-missing"}))
	require.Equal(t, "nonesuch-definitely-missing: not found\n", buf.String())
}

func TestResolveCdTarget(t *testing.T) {
	sess := &session.Session{CWD: "/home/user/project", HomeDir: "/home/user"}

	cases := []struct {
		arg  string
		want string
	}{
		{"", "/home/user"},
		{"~", "/home/user"},
		{"~/docs", "/home/user/docs"},
		{".", "/home/user/project"},
		{"..", "/home/user"},
		{"../sibling", "/home/user/sibling"},
		{"/etc/foo", "/etc/foo"},
		{"sub/dir", "/home/user/project/sub/dir"},
		{"sub/../other", "/home/user/project/other"},
		{"sub/./leaf", "/home/user/project/sub/leaf"},
	}
	for _, tc := range cases {
		got := resolveCdTarget(sess, tc.arg)
		require.Equal(t, tc.want, got, "arg=%q", tc.arg)
	}
}
