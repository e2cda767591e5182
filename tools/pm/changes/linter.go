package changes

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/coreos/go-semver/semver"
)

// CheckMode selects how strictly the linter treats the WIP heading.
type CheckMode int

const (
	// CheckStandard allows a WIP heading but does not require one.
	CheckStandard CheckMode = iota

	// CheckPreRelease requires the WIP heading, which starting a release
	// will fix up.
	CheckPreRelease

	// CheckRelease forbids the WIP heading, every section must be released.
	CheckRelease
)

// Linter checks a changelog for formatting problems.
type Linter struct {
	r    io.Reader
	mode CheckMode
}

// NewLinter creates a linter that reads a changelog from r and applies the
// WIP rules selected by mode.
func NewLinter(r io.Reader, mode CheckMode) *Linter {
	return &Linter{r: r, mode: mode}
}

// Failure is a single problem found at a line of the changelog.
type Failure struct {
	Line    int
	Message string
}

// Error is the error returned by Check, listing every failure found.
type Error struct {
	Failures []Failure
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Failures)+1)
	msgs[0] = "Change log linter check failed:"
	for i, f := range e.Failures {
		msgs[i+1] = fmt.Sprintf(" * Line %d: %s", f.Line, f.Message)
	}
	return strings.Join(msgs, "\n")
}

// The grammar of a changelog line. A heading is a version, two spaces, and a
// date. A bullet starts with " * " and may continue on lines indented three
// spaces.
var (
	versionHeading      = regexp.MustCompile(`^v(\d\S+) {2}(20\d\d-\d\d-\d\d)$`)
	logLineStart        = regexp.MustCompile(`^ \* `)
	logLineContinuation = regexp.MustCompile(`^ {3}\S`)
)

// lintState carries the linter's memory from one line to the next.
type lintState struct {
	version *semver.Version
	date    string
	heading int

	blank  bool
	bullet bool

	failures []Failure
}

func (s *lintState) failf(line int, f string, args ...any) {
	s.failures = append(s.failures, Failure{Line: line, Message: fmt.Sprintf(f, args...)})
}

// Check reads the changelog and returns an *Error describing every problem
// found or nil when the changelog is clean.
func (l *Linter) Check() error {
	st := &lintState{}

	sc := bufio.NewScanner(l.r)
	n := 0
	for sc.Scan() {
		n++
		l.checkLine(n, sc.Text(), st)
	}
	if err := sc.Err(); err != nil {
		st.failf(n, "unable to read changelog: %v", err)
	}

	if len(st.failures) > 0 {
		return &Error{Failures: st.failures}
	}
	return nil
}

func (l *Linter) checkLine(n int, line string, st *lintState) {
	wasBlank, wasBullet := st.blank, st.bullet
	st.blank, st.bullet = false, false

	if line == "WIP" || line == "WIP  TBD" {
		if n > 1 {
			st.failf(n, "WIP found after line 1")
		}
		if l.mode == CheckRelease {
			st.failf(n, "Found WIP line during release")
		}
		st.heading = n
		return
	}

	// only a WIP line may start a pre-release changelog
	if n == 1 && l.mode == CheckPreRelease {
		st.failf(n, "WIP not found during pre-release check")
	}

	if m := versionHeading.FindStringSubmatch(line); m != nil {
		l.checkHeading(n, m[1], m[2], wasBlank, st)
		return
	}

	if logLineStart.MatchString(line) {
		switch {
		case st.heading == 0:
			st.failf(n, "log bullet before first version heading or WIP")
		case n-1 == st.heading:
			st.failf(n, "missing blank line before log bullet")
		case n > st.heading+2 && wasBlank:
			st.failf(n, "extra blank line before log bullet")
		}

		st.bullet = true
		return
	}

	if logLineContinuation.MatchString(line) {
		if !wasBullet {
			st.failf(n, "log line continuation has no bullet to continue")
			return
		}

		st.bullet = true
		return
	}

	if line == "" {
		if wasBlank {
			st.failf(n, "consecutive blank lines")
		}

		st.blank = true
		return
	}

	if strings.TrimSpace(line) == "" {
		st.failf(n, "line looks blank, but has spaces in it")
		return
	}

	st.failf(n, "badly formatted line")
}

// checkHeading verifies a version heading: the version must parse and both
// version and date must descend down the file.
func (l *Linter) checkHeading(n int, ver, date string, wasBlank bool, st *lintState) {
	version, err := semver.NewVersion(ver)
	if err != nil {
		st.failf(n, "Unable to parse version number in heading")
		st.heading = n
		return
	}

	if st.version != nil && st.version.LessThan(*version) {
		st.failf(n, "version error %s < %s from line %d", version, st.version, st.heading)
	}

	if st.date != "" && st.date < date {
		st.failf(n, "date error %s < %s from line %d", date, st.date, st.heading)
	}

	if n != 1 && !wasBlank {
		st.failf(n, "version heading line missing blank line before it")
	}

	st.version = version
	st.date = date
	st.heading = n
}
