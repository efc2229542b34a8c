package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/rogersnm/roster/internal/config"
	"github.com/rogersnm/roster/internal/flatfile"
	"github.com/rogersnm/roster/internal/model"
	"github.com/rogersnm/roster/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type testEnv struct {
	dir  string
	file string
}

func setupEnv(t *testing.T) testEnv {
	t.Helper()
	for _, k := range []string{"ROSTER_DATA_FILE", "ROSTER_STRICT_ROWS", "ROSTER_LOG_LEVEL", "ROSTER_LOG_FORMAT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	dir := t.TempDir()
	return testEnv{dir: dir, file: filepath.Join(dir, "employes.csv")}
}

// resetFlags clears flag values left behind by a previous Execute, since
// cobra commands are package-level and shared between tests.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func (e testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	base := []string{"--data-dir", e.dir}
	if e.file != "" {
		base = append(base, "--file", e.file)
	}
	rootCmd.SetArgs(append(base, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func (e testEnv) reload(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(flatfile.New(e.file))
	require.NoError(t, err)
	return s
}

func (e testEnv) seed(t *testing.T, rows ...[3]string) {
	t.Helper()
	for _, r := range rows {
		_, err := e.run(t, "add", r[0], r[1], r[2])
		require.NoError(t, err)
	}
}

func TestAdd_Success(t *testing.T) {
	env := setupEnv(t)
	out, err := env.run(t, "add", "Alice", "Engineer", "50000")
	require.NoError(t, err)
	assert.Contains(t, out, "Added employee Alice (ID: 1)")

	s := env.reload(t)
	e, ok := s.FindByID(1)
	require.True(t, ok)
	assert.Equal(t, "Engineer", e.Role)
	assert.Equal(t, 50000.0, e.Salary)
	assert.True(t, e.Active)
}

func TestAdd_InvalidSalary(t *testing.T) {
	env := setupEnv(t)
	_, err := env.run(t, "add", "Alice", "Engineer", "lots")
	assert.ErrorContains(t, err, "invalid salary")
}

func TestAdd_NameTooLong(t *testing.T) {
	env := setupEnv(t)
	_, err := env.run(t, "add", strings.Repeat("x", model.MaxFieldLen+1), "Engineer", "1")

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, env.reload(t).Len())
}

func TestAdd_LineBreakInNameRejected(t *testing.T) {
	env := setupEnv(t)
	_, err := env.run(t, "add", "Ann\nX", "Engineer", "1")

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, env.reload(t).Len())
}

func TestAdd_SaveFailureReturnsIOError(t *testing.T) {
	env := setupEnv(t)
	env.file = filepath.Join(env.dir, "missing", "employes.csv")

	_, err := env.run(t, "add", "Alice", "Engineer", "50000")
	assert.ErrorIs(t, err, store.ErrIO)
}

func TestList_Empty(t *testing.T) {
	env := setupEnv(t)
	out, err := env.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No employees found.")
}

func TestList_ExcludesInactive(t *testing.T) {
	env := setupEnv(t)
	env.seed(t, [3]string{"Alice", "Engineer", "50000"}, [3]string{"Bob", "Manager", "60000.5"})
	_, err := env.run(t, "delete", "1", "--force")
	require.NoError(t, err)

	out, err := env.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Bob")
	assert.Contains(t, out, "60000.50")
	assert.NotContains(t, out, "Alice")
}

func TestShow_Success(t *testing.T) {
	env := setupEnv(t)
	env.seed(t, [3]string{"Alice", "Engineer", "50000"})

	out, err := env.run(t, "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "50000.00")
}

func TestShow_NotFound(t *testing.T) {
	env := setupEnv(t)
	_, err := env.run(t, "show", "7")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestShow_InvalidID(t *testing.T) {
	env := setupEnv(t)
	_, err := env.run(t, "show", "0")
	assert.ErrorContains(t, err, "invalid id")
}

func TestUpdate_SalaryOnly(t *testing.T) {
	env := setupEnv(t)
	env.seed(t, [3]string{"Bob", "Manager", "60000.5"})

	out, err := env.run(t, "update", "1", "--salary", "65000")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated employee 1")

	e, _ := env.reload(t).FindByID(1)
	assert.Equal(t, "Bob", e.Name)
	assert.Equal(t, "Manager", e.Role)
	assert.Equal(t, 65000.0, e.Salary)
}

func TestUpdate_RequiresAFlag(t *testing.T) {
	env := setupEnv(t)
	env.seed(t, [3]string{"Bob", "Manager", "60000"})

	_, err := env.run(t, "update", "1", "--name", "Robert")
	require.NoError(t, err)

	// Flags from the previous run must not leak into this one.
	_, err = env.run(t, "update", "1")
	assert.ErrorContains(t, err, "at least one update flag")
}

func TestUpdate_Inactive(t *testing.T) {
	env := setupEnv(t)
	env.seed(t, [3]string{"Bob", "Manager", "60000"})
	_, err := env.run(t, "delete", "1", "-f")
	require.NoError(t, err)

	_, err = env.run(t, "update", "1", "--role", "Director")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEdit_AppliesChanges(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script editor")
	}
	env := setupEnv(t)
	env.seed(t, [3]string{"Alice", "Engineer", "50000"})

	script := filepath.Join(t.TempDir(), "editor.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nsed 's/^role: .*/role: Director/' \"$1\" > \"$1.tmp\" && mv \"$1.tmp\" \"$1\"\n"), 0755))
	t.Setenv("EDITOR", script)

	out, err := env.run(t, "edit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated employee 1")

	e, _ := env.reload(t).FindByID(1)
	assert.Equal(t, "Director", e.Role)
	assert.Equal(t, "Alice", e.Name)
}

func TestEdit_NoChanges(t *testing.T) {
	env := setupEnv(t)
	env.seed(t, [3]string{"Alice", "Engineer", "50000"})
	t.Setenv("EDITOR", "true")

	out, err := env.run(t, "edit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "No changes.")
}

func TestDelete_Force(t *testing.T) {
	env := setupEnv(t)
	env.seed(t, [3]string{"Alice", "Engineer", "50000"})

	out, err := env.run(t, "delete", "1", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted employee 1")

	s := env.reload(t)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, s.ActiveLen())
}

func TestDelete_Twice(t *testing.T) {
	env := setupEnv(t)
	env.seed(t, [3]string{"Alice", "Engineer", "50000"})
	_, err := env.run(t, "delete", "1", "--force")
	require.NoError(t, err)

	_, err = env.run(t, "delete", "1", "--force")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSearch_CaseSensitive(t *testing.T) {
	env := setupEnv(t)
	env.seed(t, [3]string{"Alice", "Engineer", "50000"}, [3]string{"Bob", "Manager", "60000"})

	out, err := env.run(t, "search", "Bo")
	require.NoError(t, err)
	assert.Contains(t, out, "Bob")
	assert.NotContains(t, out, "Alice")

	out, err = env.run(t, "search", "bo")
	require.NoError(t, err)
	assert.Contains(t, out, "No employees found.")
}

func TestSave_WritesHeader(t *testing.T) {
	env := setupEnv(t)
	out, err := env.run(t, "save")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved 0 record(s)")

	data, err := os.ReadFile(env.file)
	require.NoError(t, err)
	assert.Equal(t, flatfile.Header+"\n", string(data))
}

func TestIDsContinueAcrossRuns(t *testing.T) {
	env := setupEnv(t)
	env.seed(t, [3]string{"Alice", "Engineer", "50000"}, [3]string{"Bob", "Manager", "60000"})
	_, err := env.run(t, "delete", "2", "--force")
	require.NoError(t, err)

	out, err := env.run(t, "add", "Carol", "Designer", "55000")
	require.NoError(t, err)
	assert.Contains(t, out, "(ID: 3)")
}

func TestReport_Raw(t *testing.T) {
	env := setupEnv(t)
	env.seed(t, [3]string{"Alice", "Engineer", "50000"}, [3]string{"Bob", "Engineer", "60000"})

	out, err := env.run(t, "report", "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "- Active employees: 2")
	assert.Contains(t, out, "- Slots used: 2 / 100")
	assert.Contains(t, out, "| Engineer | 2 | 110000.00 |")
}

func TestExport_ActiveAndAll(t *testing.T) {
	env := setupEnv(t)
	env.seed(t, [3]string{"Alice", "Engineer", "50000"}, [3]string{"Bob", "Manager", "60000"})
	_, err := env.run(t, "delete", "1", "--force")
	require.NoError(t, err)

	countRows := func(path string) int {
		f, err := excelize.OpenFile(path)
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows("Employees")
		require.NoError(t, err)
		return len(rows)
	}

	active := filepath.Join(env.dir, "active.xlsx")
	out, err := env.run(t, "export", active)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 employee(s)")
	assert.Equal(t, 2, countRows(active))

	all := filepath.Join(env.dir, "all.xlsx")
	_, err = env.run(t, "export", all, "--all")
	require.NoError(t, err)
	assert.Equal(t, 3, countRows(all))
}

func TestConfigSetAndShow(t *testing.T) {
	env := setupEnv(t)
	out, err := env.run(t, "config", "set", "log_level", "info")
	require.NoError(t, err)
	assert.Contains(t, out, "Set log_level = info")

	c, err := config.LoadFile(env.dir)
	require.NoError(t, err)
	assert.Equal(t, "info", c.LogLevel)

	out, err = env.run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "log_level: info")
}

func TestConfigSet_UnknownKey(t *testing.T) {
	env := setupEnv(t)
	_, err := env.run(t, "config", "set", "colour", "blue")
	assert.Error(t, err)
}

func TestStrictRows_RejectsMalformedFile(t *testing.T) {
	env := setupEnv(t)
	content := flatfile.Header + "\n1,Alice,Engineer,50000.00,1\n2,Bob\n"
	require.NoError(t, os.WriteFile(env.file, []byte(content), 0644))

	// Lenient by default: the short row still loads.
	out, err := env.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Bob")

	_, err = env.run(t, "config", "set", "strict_rows", "true")
	require.NoError(t, err)

	_, err = env.run(t, "list")
	var rowErr *flatfile.RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 3, rowErr.Line)
}

func TestMenuHeader(t *testing.T) {
	env := setupEnv(t)
	env.seed(t, [3]string{"Alice", "Engineer", "50000"}, [3]string{"Bob", "Manager", "60000"})
	_, err := env.run(t, "delete", "1", "--force")
	require.NoError(t, err)

	st = env.reload(t)
	assert.Equal(t, "Employees: 1 active, 2/100 slots used", menuHeader())
}

func TestMenuError(t *testing.T) {
	ioErr := fmt.Errorf("%w: %w", store.ErrIO, errors.New("disk full"))
	assert.True(t, strings.HasPrefix(menuError(ioErr), "Warning: "))
	assert.Equal(t, "Error: "+store.ErrNotFound.Error(), menuError(store.ErrNotFound))
}

func TestValidSalary(t *testing.T) {
	assert.NoError(t, validSalary("0"))
	assert.NoError(t, validSalary(" 1234.5 "))
	assert.Error(t, validSalary("-1"))
	assert.Error(t, validSalary("NaN"))
	assert.Error(t, validSalary(""))
}

func TestLink_SelectsRosterFile(t *testing.T) {
	env := setupEnv(t)
	work := t.TempDir()
	t.Chdir(work)
	env.file = ""

	out, err := env.run(t, "link", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "No roster file linked.")

	_, err = env.run(t, "link", "set", "team.csv")
	require.NoError(t, err)

	out, err = env.run(t, "link", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "team.csv")

	_, err = env.run(t, "add", "Alice", "Engineer", "50000")
	require.NoError(t, err)
	s, err := store.Open(flatfile.New(filepath.Join(work, "team.csv")))
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	out, err = env.run(t, "link", "remove")
	require.NoError(t, err)
	assert.Contains(t, out, "Unlinked roster file.")
}
