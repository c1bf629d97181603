package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/focoleve/internal/plan"
)

func execute(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_STATE_HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("FOCOLEVE_DB", "")
	t.Chdir(dir)
	return filepath.Join(dir, "test.db")
}

func TestVersion(t *testing.T) {
	out := execute(t, "", "version")
	assert.Regexp(t, `^focoleve \S+ \(go`, out)
}

func TestReset_Declined(t *testing.T) {
	isolate(t)
	out := execute(t, "n\n", "reset")
	assert.Contains(t, out, "Nothing was erased.")
}

func TestTasksList_NoProfile(t *testing.T) {
	db := isolate(t)
	out := execute(t, "", "tasks", "list", "--db", db)
	assert.Contains(t, out, "No profile yet.")
}

func TestPrintBoard(t *testing.T) {
	b := plan.NewBoard(nil, nil)
	ctx := context.Background()
	require.NoError(t, b.SetProfile(ctx, plan.Profile{
		Subjects:   []string{"Math", "Biology"},
		ExamDate:   "2025-06-01",
		StudyHours: 3,
	}))

	var out bytes.Buffer
	printBoard(&out, b, time.Date(2025, 5, 25, 12, 0, 0, 0, time.UTC))
	assert.Contains(t, out.String(), "Math, Biology")
	assert.Contains(t, out.String(), "7 days left")
	assert.Contains(t, out.String(), "No tasks for today. How about relaxing?")

	tasks := b.ApplySchedule(ctx, []plan.Draft{
		{Subject: "Math", Topic: "Fractions", Date: "2025-05-26"},
		{Subject: "Biology", Topic: "Cells", Date: "2025-05-27"},
	})
	b.Toggle(ctx, tasks[0].ID)

	out.Reset()
	printBoard(&out, b, time.Date(2025, 5, 25, 12, 0, 0, 0, time.UTC))
	assert.Contains(t, out.String(), "50% done")
	assert.Contains(t, out.String(), "[x] 2025-05-26")
	assert.Contains(t, out.String(), tasks[1].ID)
}
