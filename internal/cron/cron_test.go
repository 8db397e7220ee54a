package cron

import (
	"strings"
	"testing"
)

func TestAppendMountLine(t *testing.T) {
	got := appendMountLine("", "work", "/home/sam/mnt/work")
	want := "@reboot " + mountCommand("work") + " /home/sam/mnt/work\n"
	if got != want {
		t.Errorf("appendMountLine empty = %q, want %q", got, want)
	}

	// Existing content without a trailing newline still gets a line of
	// its own.
	got = appendMountLine("0 3 * * * /usr/bin/backup", "work", "/home/sam/mnt/work")
	if !strings.HasPrefix(got, "0 3 * * * /usr/bin/backup\n@reboot ") {
		t.Errorf("appendMountLine merged lines: %q", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Errorf("missing trailing newline: %q", got)
	}
}

func TestHasMountLine(t *testing.T) {
	crontab := appendMountLine("", "work", "/home/sam/mnt/work")

	if !hasMountLine(crontab, "work") {
		t.Error("existing entry not detected")
	}
	if hasMountLine(crontab, "personal") {
		t.Error("absent entry detected")
	}
	// "work" must not match a remote named "wor": the needle includes the
	// trailing colon of the remote spec.
	if hasMountLine(crontab, "wor") {
		t.Error("prefix of remote name matched")
	}
}

func TestWithoutMountLines(t *testing.T) {
	crontab := "0 3 * * * /usr/bin/backup\n"
	crontab = appendMountLine(crontab, "work", "/home/sam/mnt/work")
	crontab = appendMountLine(crontab, "personal", "/home/sam/mnt/personal")

	got := withoutMountLines(crontab, "work")
	if hasMountLine(got, "work") {
		t.Errorf("entry survived removal: %q", got)
	}
	if !hasMountLine(got, "personal") {
		t.Errorf("unrelated entry removed: %q", got)
	}
	if !strings.Contains(got, "0 3 * * * /usr/bin/backup") {
		t.Errorf("unrelated line removed: %q", got)
	}

	// Removing the only entry leaves an empty crontab, not a stray
	// newline.
	only := appendMountLine("", "work", "/home/sam/mnt/work")
	if got := withoutMountLines(only, "work"); got != "" {
		t.Errorf("withoutMountLines sole entry = %q, want empty", got)
	}
}

func TestWithoutMountLinesIdempotent(t *testing.T) {
	crontab := "@daily echo hi\n"
	if got := withoutMountLines(crontab, "work"); got != crontab {
		t.Errorf("no-op removal changed content: %q", got)
	}
}
