package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	t.Parallel()

	cases := map[Code]int{
		CodeValidation: http.StatusBadRequest,
		CodeNotFound:   http.StatusNotFound,
		CodeConflict:   http.StatusConflict,
		CodeInternal:   http.StatusInternalServerError,
		CodeDependency: http.StatusServiceUnavailable,
	}

	for code, status := range cases {
		if got := MetadataFor(code).HTTPStatus; got != status {
			t.Fatalf("code %s: expected status %d, got %d", code, status, got)
		}
	}

	if got := MetadataFor(Code("BOGUS")).HTTPStatus; got != http.StatusInternalServerError {
		t.Fatalf("unknown code should map to internal, got %d", got)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := stdErrors.New("connection refused")
	err := Wrap(CodeDependency, cause, "carrier unreachable")

	if !stdErrors.Is(err, cause) {
		t.Fatal("wrapped error should unwrap to its cause")
	}
	if typed := As(fmt.Errorf("outer: %w", err)); typed == nil || typed.Code() != CodeDependency {
		t.Fatalf("As should find the typed error through wrapping, got %+v", typed)
	}
}

func TestDumpBuildsChain(t *testing.T) {
	t.Parallel()

	err := Wrap(CodeValidation, stdErrors.New("inner"), "outer")
	dump := Dump(err)

	if dump.Code != CodeValidation {
		t.Fatalf("expected validation code, got %s", dump.Code)
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected 2 chain entries, got %d", len(dump.Chain))
	}
}
