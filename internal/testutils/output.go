package testutils

import (
	"fmt"
	"strings"
	"testing"
	"text/tabwriter"
)

// TestCase is one row of a comparison table.
type TestCase struct {
	Input    string
	Expected string
	Actual   string
	Pass     bool
}

// Compare returns a row that passes when actual equals expected.
func Compare(input, expected, actual string) TestCase {
	return TestCase{Input: input, Expected: expected, Actual: actual, Pass: actual == expected}
}

// PrintTestTable logs an aligned input/expected/returned table and fails the
// test once for every row with Pass=false. Failed rows are marked with > <.
func PrintTestTable(t *testing.T, cases []TestCase) {
	t.Helper()

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "  Input\tExpected Value\tReturned Value\t\n")

	failed := 0
	for _, tc := range cases {
		left, right := " ", " "
		if !tc.Pass {
			failed++
			left, right = ">", "<"
		}
		fmt.Fprintf(w, "%s %q\t%q\t%q\t%s\n", left, tc.Input, tc.Expected, tc.Actual, right)
	}
	w.Flush()

	t.Log("\n" + sb.String())
	if failed > 0 {
		t.Errorf("%d of %d cases failed", failed, len(cases))
	}
}
