package compiler

import (
	"context"
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CreativeUnicorns/simpleprefs"
	"github.com/CreativeUnicorns/simpleprefs/compiler/gen"
	"github.com/CreativeUnicorns/simpleprefs/compiler/load"
	"github.com/CreativeUnicorns/simpleprefs/schema"
)

const appSrc = `package app

//prefs:holder
type UserSettings struct {
	Theme    string ` + "`pref:\"theme,default=light\"`" + `
	FontSize int32  ` + "`pref:\"font_size,default=14\"`" + `
}

//prefs:holder dup_store
type Dup struct {
	A string ` + "`pref:\"k\"`" + `
	B bool   ` + "`pref:\"k\"`" + `
}

//prefs:holder
type Weird struct {
	Ok   bool           ` + "`pref:\"\"`" + `
	When map[string]int ` + "`pref:\"when\"`" + `
}

//prefs:holder session_store
type Session struct {
	Visits int64 ` + "`pref:\"visits\"`" + `
}
`

var appNS = schema.NewNamespace("example.com/app", "app")

func appDecls(t *testing.T) []load.Declaration {
	t.Helper()
	decls, err := load.ParseFile(token.NewFileSet(), "app.go", appSrc, appNS)
	require.NoError(t, err)
	return decls
}

func quiet() Option { return WithLogger(simpleprefs.NopLogger()) }

func TestProcess_IsolatesFailures(t *testing.T) {
	w := gen.NewMemoryWriter()
	report, err := Process(context.Background(), appDecls(t), w, quiet())
	require.NoError(t, err)
	require.Len(t, report.Results, 4)

	outcomes := make([]Outcome, 0, len(report.Results))
	holders := make([]string, 0, len(report.Results))
	for _, r := range report.Results {
		outcomes = append(outcomes, r.Outcome)
		holders = append(holders, r.Holder)
	}
	assert.Equal(t, []Outcome{Generated, Diagnostic, Diagnostic, Generated}, outcomes)
	assert.Equal(t, []string{
		"example.com/app.UserSettings",
		"example.com/app.Dup",
		"example.com/app.Weird",
		"example.com/app.Session",
	}, holders, "results follow declaration order")

	assert.True(t, schema.IsDuplicateKey(report.Results[1].Err))
	assert.True(t, schema.IsUnsupportedFieldType(report.Results[2].Err))
	assert.Nil(t, report.Results[1].Unit)

	assert.Equal(t, []string{
		"example.com/app/session_prefs.go",
		"example.com/app/user_settings_prefs.go",
	}, w.Paths(), "rejected holders produce no output")

	units := report.Generated()
	require.Len(t, units, 2)
	assert.Equal(t, "UserSettingsPrefs", units[0].TypeName)
	assert.Equal(t, "SessionPrefs", units[1].TypeName)

	err = report.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrDuplicateKey)
	assert.ErrorIs(t, err, schema.ErrUnsupportedFieldType)
	assert.NotErrorIs(t, err, schema.ErrInvalidConfiguration)
	assert.Equal(t, 2, report.Count(Diagnostic))
}

func TestProcess_AllGenerated(t *testing.T) {
	decls := appDecls(t)
	report, err := Process(context.Background(), []load.Declaration{decls[0]}, gen.NewMemoryWriter(), quiet())
	require.NoError(t, err)
	assert.NoError(t, report.Err())
	assert.Equal(t, 1, report.Count(Generated))
}

func TestProcess_NoHolders(t *testing.T) {
	decls, err := load.ParseFile(token.NewFileSet(), "plain.go", "package app\n\ntype Plain struct{}\n", appNS)
	require.NoError(t, err)

	report, err := Process(context.Background(), decls, gen.NewMemoryWriter(), quiet())
	require.NoError(t, err)
	assert.Empty(t, report.Results)
	assert.NoError(t, report.Err())
}

type failingWriter struct {
	mu      sync.Mutex
	failFor string
	err     error
	written []string
}

func (w *failingWriter) WriteUnit(_ schema.Namespace, typeName string, _ []byte) error {
	if typeName == w.failFor {
		return w.err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.written = append(w.written, typeName)
	return nil
}

func TestProcess_WriteFailureUnchanged(t *testing.T) {
	diskFull := errors.New("no space left on device")
	w := &failingWriter{failFor: "UserSettingsPrefs", err: diskFull}

	report, err := Process(context.Background(), appDecls(t), w, quiet(), WithWorkers(1))
	require.NoError(t, err)

	res := report.Results[0]
	assert.Equal(t, WriteFailed, res.Outcome)
	assert.True(t, res.Err == diskFull, "writer error is reported as is")
	assert.Nil(t, res.Unit)

	assert.Equal(t, []string{"SessionPrefs"}, w.written)
	assert.ErrorIs(t, report.Err(), diskFull)
	assert.Equal(t, 1, report.Count(WriteFailed))
}

func TestProcess_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := gen.NewMemoryWriter()
	report, err := Process(ctx, appDecls(t), w, quiet())
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.Equal(t, len(report.Results), report.Count(Skipped))
	assert.Empty(t, w.Paths())
}

func TestProcess_InvalidOption(t *testing.T) {
	_, err := Process(context.Background(), nil, gen.NewMemoryWriter(), WithWorkers(-1))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "generated", Generated.String())
	assert.Equal(t, "diagnostic", Diagnostic.String())
	assert.Equal(t, "render failed", RenderFailed.String())
	assert.Equal(t, "write failed", WriteFailed.String())
	assert.Equal(t, "skipped", Skipped.String())
}

func writeModule(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func fixtureModule(t *testing.T) string {
	return writeModule(t, map[string]string{
		"go.mod":               "module example.com/fixture\n\ngo 1.21\n",
		"settings/settings.go": "package settings\n\n//prefs:holder user_store\ntype UserSettings struct {\n\tTheme string `pref:\"\"`\n}\n",
	})
}

func TestRun_NextToSource(t *testing.T) {
	dir := fixtureModule(t)
	cfg, err := NewConfig(WithDir(dir), WithPatterns("./..."), quiet())
	require.NoError(t, err)

	report, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, report.Err())
	require.Len(t, report.Generated(), 1)

	body, err := os.ReadFile(filepath.Join(dir, "settings", "user_settings_prefs.go"))
	require.NoError(t, err)

	f, err := parser.ParseFile(token.NewFileSet(), "user_settings_prefs.go", body, parser.ParseComments)
	require.NoError(t, err)
	assert.True(t, ast.IsGenerated(f))
	assert.Equal(t, "settings", f.Name.Name)
	assert.Contains(t, string(body), `pc.NamedStore("user_store")`)
}

func TestRun_Output(t *testing.T) {
	dir := fixtureModule(t)
	out := t.TempDir()
	cfg, err := NewConfig(WithDir(dir), WithPatterns("./..."), WithOutput(out), quiet())
	require.NoError(t, err)

	_, err = Run(context.Background(), cfg)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(out, "settings", "user_settings_prefs.go"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "settings", "user_settings_prefs.go"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_DryRun(t *testing.T) {
	dir := fixtureModule(t)
	cfg, err := NewConfig(WithDir(dir), WithPatterns("./..."), WithDryRun(true), quiet())
	require.NoError(t, err)

	report, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, report.Generated(), 1)
	assert.NotEmpty(t, report.Generated()[0].Body)

	_, err = os.Stat(filepath.Join(dir, "settings", "user_settings_prefs.go"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_LoadError(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"go.mod":  "module example.com/broken\n\ngo 1.21\n",
		"main.go": "package main\n\nfunc main() {\n",
	})
	cfg, err := NewConfig(WithDir(dir), quiet())
	require.NoError(t, err)

	report, err := Run(context.Background(), cfg)
	assert.Error(t, err)
	assert.Nil(t, report)
}
