package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func codeInfo(t *testing.T, c *ErrorCodeChecker, name string) *ErrorCodeInfo {
	t.Helper()
	for _, info := range c.errorCodes {
		if info.Name == name {
			return info
		}
	}
	t.Fatalf("%s not declared", name)
	return nil
}

func TestErrorCodeChecker(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"queue/errors.go": `package queue

import "github.com/gear6io/lendq/pkg/errors"

var (
	ErrFull    = errors.MustNewCode("queue.full")
	ErrClosed  = errors.MustNewCode("queue.closed")
	ErrUnused  = errors.MustNewCode("queue.unused")
)
`,
		"queue/queue.go": `package queue

func push() error {
	return errors.New(ErrFull, "queue is full", nil)
}
`,
		"client/client.go": `package client

func check(err error) bool {
	return errors.HasCode(err, queue.ErrClosed)
}
`,
	})

	checker := NewErrorCodeChecker(false)
	require.NoError(t, checker.CheckDirectory(dir, nil))

	allUsed, report := checker.Report()
	assert.False(t, allUsed)

	assert.True(t, codeInfo(t, checker, "ErrFull").Used)
	assert.True(t, codeInfo(t, checker, "ErrClosed").Used, "qualified use from another package")
	assert.False(t, codeInfo(t, checker, "ErrUnused").Used)
	assert.Equal(t, "queue.unused", codeInfo(t, checker, "ErrUnused").Code)

	joined := strings.Join(report, "\n")
	assert.Contains(t, joined, "UNUSED: ErrUnused")
	assert.NotContains(t, joined, "UNUSED: ErrFull")
}

func TestCodeFormat(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a/errors.go": `package a

var (
	ErrGood  = errors.MustNewCode("a.good")
	ErrBad   = errors.MustNewCode("NoDot")
	ErrWord  = errors.MustNewCode("a.read_error")
)
`,
		"b/errors.go": `package b

var ErrSame = errors.MustNewCode("a.good")
`,
	})

	checker := NewErrorCodeChecker(false)
	require.NoError(t, checker.CheckDirectory(dir, nil))

	ok, report := checker.ReportCodeFormat()
	assert.False(t, ok)
	joined := strings.Join(report, "\n")
	assert.Contains(t, joined, "INVALID: ErrBad")
	assert.Contains(t, joined, "INVALID: ErrWord")
	assert.Contains(t, joined, `DUPLICATE: "a.good"`)
	assert.NotContains(t, joined, "INVALID: ErrGood")
}

func TestForbiddenPatterns(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"bad.go": `package test

import "fmt"

func badFunc() error {
	return fmt.Errorf("bad error")
}

func badFunc2() error {
	return fmt.Errorf("bad error %d", 2)
}
`,
		"bad_test.go": `package test

func helper() error { return fmt.Errorf("fine in tests") }
`,
	})

	checker := NewErrorCodeChecker(false)
	ok, report := checker.CheckForbiddenPatterns(dir, nil, []string{`fmt\.Errorf`})

	assert.False(t, ok)
	require.Len(t, report, 2)
	assert.True(t, strings.HasSuffix(report[0], "bad.go:6"))
	assert.True(t, strings.HasSuffix(report[1], "bad.go:10"))
}

func TestExcludePaths(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"errors.go": `package test

var ErrTest1 = errors.MustNewCode("test.one")
`,
		"excluded/errors.go": `package excluded

var ErrExcluded = errors.MustNewCode("excluded.code")
`,
	})

	checker := NewErrorCodeChecker(false)
	require.NoError(t, checker.CheckDirectory(dir, []string{"excluded/"}))

	_, found := checker.errorCodes[dir+".ErrTest1"]
	assert.True(t, found)
	for _, info := range checker.errorCodes {
		assert.NotEqual(t, "ErrExcluded", info.Name)
	}
}

func TestLoadConfig(t *testing.T) {
	defaults, err := loadConfig("")
	require.NoError(t, err)
	assert.Contains(t, defaults.ExcludePaths, "_examples/")
	assert.True(t, defaults.ExitOnFormat)

	path := filepath.Join(t.TempDir(), ".errorcode.yml")
	require.NoError(t, os.WriteFile(path, []byte("exit_on_unused: true\nforbidden_patterns: ['panic\\(']\n"), 0o644))
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.ExitOnUnused)
	assert.Equal(t, []string{`panic\(`}, cfg.ForbiddenPatterns)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
