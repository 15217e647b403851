package errors

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestErrorsIs(t *testing.T) {
	cases := map[string]struct {
		kind      *Error
		err       error
		wantMatch bool
	}{
		"instance of the same root error": {
			kind:      ErrNotFound,
			err:       ErrNotFound,
			wantMatch: true,
		},
		"wrapped root error": {
			kind:      ErrNotFound,
			err:       Wrap(ErrNotFound, "gone"),
			wantMatch: true,
		},
		"deeply wrapped root error": {
			kind:      ErrState,
			err:       Wrap(Wrap(ErrState, "inner"), "outer"),
			wantMatch: true,
		},
		"different root error": {
			kind:      ErrNotFound,
			err:       ErrState,
			wantMatch: false,
		},
		"stdlib error": {
			kind:      ErrNotFound,
			err:       fmt.Errorf("not found"),
			wantMatch: false,
		},
		"nil error": {
			kind:      ErrNotFound,
			err:       nil,
			wantMatch: false,
		},
		"nil kind matches nil error": {
			kind:      nil,
			err:       nil,
			wantMatch: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.kind.Is(tc.err); got != tc.wantMatch {
				t.Fatalf("want match=%v, got %v", tc.wantMatch, got)
			}
		})
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "ignored"); err != nil {
		t.Fatalf("wrapping nil must return nil, got %+v", err)
	}
}

func TestWrapAttachesStackTraceOnce(t *testing.T) {
	err := Wrap(ErrInput, "first")
	st := stackTrace(err)
	if st == nil {
		t.Fatal("no stack trace attached")
	}

	// Another wrap must not shadow the original trace.
	err = Wrap(err, "second")
	if got := stackTrace(err); fmt.Sprintf("%v", got) != fmt.Sprintf("%v", st) {
		t.Fatal("stack trace was overwritten by the second wrap")
	}
}

func TestWrapPreservesKindOfForeignStackTrace(t *testing.T) {
	// A pkg/errors instance already carries a stack trace. Make sure the
	// kind test still works through it.
	err := Wrap(errors.WithStack(ErrOverflow), "math")
	if !ErrOverflow.Is(err) {
		t.Fatalf("want ErrOverflow, got %+v", err)
	}
}

func TestRegisterPanicsOnCollision(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("reusing an error code must panic")
		}
	}()
	Register(2, "two again")
}

func TestRecover(t *testing.T) {
	var err error
	func() {
		defer Recover(&err)
		panic("blew up")
	}()
	if !ErrPanic.Is(err) {
		t.Fatalf("want ErrPanic, got %+v", err)
	}
}

func TestAppend(t *testing.T) {
	if err := Append(nil, nil); err != nil {
		t.Fatalf("appending nils must return nil, got %+v", err)
	}

	single := ErrEmpty.New("name")
	if err := Append(nil, single); err != single {
		t.Fatalf("appending a single error must return it unchanged, got %+v", err)
	}

	err := Append(ErrEmpty.New("name"), ErrAmount.New("price"))
	if err == nil {
		t.Fatal("want an error")
	}
	if !ErrEmpty.Is(err) {
		t.Fatalf("first collected error must determine the kind, got %+v", err)
	}
}
