package txn

import (
	"context"
	"errors"
	"slices"
	"testing"
)

// testAction records execute and rollback calls into a shared order slice.
type testAction struct {
	desc        string
	executeErr  error
	rollbackErr error
	order       *[]string
}

func (a *testAction) Execute(_ context.Context) error {
	if a.executeErr != nil {
		return a.executeErr
	}
	*a.order = append(*a.order, "execute:"+a.desc)
	return nil
}

func (a *testAction) Rollback(_ context.Context) error {
	*a.order = append(*a.order, "rollback:"+a.desc)
	return a.rollbackErr
}

func (a *testAction) Description() string { return a.desc }

func TestJournal_Flush_Success(t *testing.T) {
	t.Parallel()

	var order []string
	j := New("test")
	for _, d := range []string{"a", "b", "c"} {
		if err := j.Stage(&testAction{desc: d, order: &order}); err != nil {
			t.Fatalf("Stage(%s) error = %v", d, err)
		}
	}

	if err := j.Flush(context.Background()); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	want := []string{"execute:a", "execute:b", "execute:c"}
	if !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if j.Applied() != 3 {
		t.Errorf("Applied() = %d, want 3", j.Applied())
	}
	if j.Failed() {
		t.Error("Failed() = true, want false")
	}
}

func TestJournal_Flush_FailureRollsBackBatch(t *testing.T) {
	t.Parallel()

	var order []string
	boom := errors.New("boom")
	j := New("test")

	_ = j.Stage(&testAction{desc: "a", order: &order})
	_ = j.Stage(&testAction{desc: "b", order: &order})
	_ = j.Stage(&testAction{desc: "c", executeErr: boom, order: &order})
	_ = j.Stage(&testAction{desc: "d", order: &order})

	err := j.Flush(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Flush() error = %v, want %v", err, boom)
	}

	want := []string{"execute:a", "execute:b", "rollback:b", "rollback:a"}
	if !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if !j.Failed() {
		t.Error("Failed() = false, want true")
	}
	if j.Applied() != 0 {
		t.Errorf("Applied() = %d, want 0", j.Applied())
	}
}

func TestJournal_Undo(t *testing.T) {
	t.Parallel()

	var order []string
	j := New("test")

	_ = j.Stage(&testAction{desc: "a", order: &order})
	if err := j.Flush(context.Background()); err != nil {
		t.Fatalf("first Flush() error = %v", err)
	}
	_ = j.Stage(&testAction{desc: "b", rollbackErr: errors.New("stuck"), order: &order})
	if err := j.Flush(context.Background()); err != nil {
		t.Fatalf("second Flush() error = %v", err)
	}
	_ = j.Stage(&testAction{desc: "pending", order: &order})

	if n := j.Undo(context.Background()); n != 2 {
		t.Errorf("Undo() = %d, want 2", n)
	}

	want := []string{"execute:a", "execute:b", "rollback:b", "rollback:a"}
	if !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestJournal_Closed(t *testing.T) {
	t.Parallel()

	j := New("test")
	j.Close()

	var order []string
	if err := j.Stage(&testAction{desc: "a", order: &order}); !errors.Is(err, ErrClosed) {
		t.Errorf("Stage() error = %v, want ErrClosed", err)
	}
	if err := j.Flush(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("Flush() error = %v, want ErrClosed", err)
	}
}

func TestJournal_StageNil(t *testing.T) {
	t.Parallel()

	if err := New("test").Stage(nil); !errors.Is(err, ErrNilAction) {
		t.Errorf("Stage(nil) error = %v, want ErrNilAction", err)
	}
}

func TestContext(t *testing.T) {
	t.Parallel()

	if _, ok := FromContext(context.Background()); ok {
		t.Error("FromContext(empty) ok = true, want false")
	}

	j := New("scope")
	got, ok := FromContext(WithJournal(context.Background(), j))
	if !ok || got != j {
		t.Errorf("FromContext() = %p, %v, want %p, true", got, ok, j)
	}
	if got.Label() != "scope" {
		t.Errorf("Label() = %q, want %q", got.Label(), "scope")
	}
}
