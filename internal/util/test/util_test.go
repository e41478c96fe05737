package main

import (
	"os"
	"testing"
	"time"

	util "parludo/internal/util"
)

func TestDirExists(t *testing.T) {
	dir := t.TempDir()
	if !util.DirExists(dir) {
		t.Errorf("Expected DirExists to return true for existing dir")
	}
	if util.DirExists(dir + "-notfound") {
		t.Errorf("Expected DirExists to return false for non-existent dir")
	}
}

func TestFormatUptime(t *testing.T) {
	cases := []struct {
		dur      time.Duration
		expected string
	}{
		{time.Second * 5, "5 seconds"},
		{time.Second * 65, "1 minute, 5 seconds"},
		{time.Second * 3665, "1 hour, 1 minute, 5 seconds"},
		{time.Second * 3600, "1 hour, 0 minutes, 0 seconds"},
		{time.Second * 60, "1 minute, 0 seconds"},
		{time.Second * 1, "1 second"},
	}
	for _, c := range cases {
		got := util.FormatUptime(c.dur)
		if got != c.expected {
			t.Errorf("FormatUptime(%v) = %q, want %q", c.dur, got, c.expected)
		}
	}
}

func TestGetEnvDuration(t *testing.T) {
	os.Setenv("TEST_DURATION", "2s")
	defer os.Unsetenv("TEST_DURATION")
	if got := util.GetEnvDuration("TEST_DURATION", time.Second); got != 2*time.Second {
		t.Errorf("GetEnvDuration = %v, want 2s", got)
	}
	os.Setenv("TEST_DURATION", "notaduration")
	if got := util.GetEnvDuration("TEST_DURATION", 3*time.Second); got != 3*time.Second {
		t.Errorf("GetEnvDuration fallback = %v, want 3s", got)
	}
	os.Unsetenv("TEST_DURATION")
	if got := util.GetEnvDuration("TEST_DURATION", 4*time.Second); got != 4*time.Second {
		t.Errorf("GetEnvDuration fallback unset = %v, want 4s", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	os.Setenv("TEST_INT", "42")
	defer os.Unsetenv("TEST_INT")
	if got := util.GetEnvInt("TEST_INT", 7); got != 42 {
		t.Errorf("GetEnvInt = %d, want 42", got)
	}
	os.Setenv("TEST_INT", "notanint")
	if got := util.GetEnvInt("TEST_INT", 8); got != 8 {
		t.Errorf("GetEnvInt fallback = %d, want 8", got)
	}
	os.Unsetenv("TEST_INT")
	if got := util.GetEnvInt("TEST_INT", 9); got != 9 {
		t.Errorf("GetEnvInt fallback unset = %d, want 9", got)
	}
}

func TestGetEnvDate(t *testing.T) {
	fallback := time.Date(2026, time.January, 16, 0, 0, 0, 0, time.UTC)
	os.Setenv("TEST_DATE", "2026-03-01")
	defer os.Unsetenv("TEST_DATE")
	want := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	if got := util.GetEnvDate("TEST_DATE", fallback); !got.Equal(want) {
		t.Errorf("GetEnvDate = %v, want %v", got, want)
	}
	os.Setenv("TEST_DATE", "01/03/2026")
	if got := util.GetEnvDate("TEST_DATE", fallback); !got.Equal(fallback) {
		t.Errorf("GetEnvDate fallback = %v, want %v", got, fallback)
	}
	os.Unsetenv("TEST_DATE")
	if got := util.GetEnvDate("TEST_DATE", fallback); !got.Equal(fallback) {
		t.Errorf("GetEnvDate fallback unset = %v, want %v", got, fallback)
	}
}

func TestGetEnvBool(t *testing.T) {
	os.Setenv("TEST_BOOL", "true")
	defer os.Unsetenv("TEST_BOOL")
	if got := util.GetEnvBool("TEST_BOOL", false); got != true {
		t.Errorf("GetEnvBool = %v, want true", got)
	}
	os.Setenv("TEST_BOOL", "notabool")
	if got := util.GetEnvBool("TEST_BOOL", true); got != true {
		t.Errorf("GetEnvBool fallback = %v, want true", got)
	}
	os.Unsetenv("TEST_BOOL")
	if got := util.GetEnvBool("TEST_BOOL", false); got != false {
		t.Errorf("GetEnvBool fallback unset = %v, want false", got)
	}
}
