package notify

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/zoe5466/Gudiee-sub001/wizard"
)

func TestTerminal_Toast(t *testing.T) {
	var out bytes.Buffer
	n := NewTerminal(&out, nil)
	err := n.Notify(context.Background(), wizard.Notice{Title: "預訂成功", Body: "訂單編號：ord-1\n金額：NT$1,848"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "預訂成功") || !strings.Contains(got, "訂單編號：ord-1 · 金額：NT$1,848") {
		t.Errorf("toast = %q", got)
	}
	if strings.Count(got, "\n") != 1 {
		t.Errorf("toast should be a single line, got %q", got)
	}
}

func TestTerminal_BlockingWaitsForEnter(t *testing.T) {
	var out bytes.Buffer
	n := NewTerminal(&out, strings.NewReader("\n"))
	if err := n.Notify(context.Background(), wizard.Notice{Title: "註冊成功！", Blocking: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "註冊成功！") || !strings.Contains(out.String(), "按 Enter 繼續") {
		t.Errorf("alert = %q", out.String())
	}
}

func TestTerminal_BlockingWithoutInput(t *testing.T) {
	var out bytes.Buffer
	n := NewTerminal(&out, nil)
	if err := n.Notify(context.Background(), wizard.Notice{Title: "完成", Blocking: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out.String(), "按 Enter") {
		t.Errorf("should not prompt without input: %q", out.String())
	}
}

func TestTerminal_BlockingCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	n := NewTerminal(io.Discard, pr)
	if err := n.Notify(ctx, wizard.Notice{Title: "完成", Blocking: true}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}

type stubNotifier struct {
	got []wizard.Notice
	err error
}

func (s *stubNotifier) Notify(ctx context.Context, n wizard.Notice) error {
	s.got = append(s.got, n)
	return s.err
}

func TestMulti(t *testing.T) {
	boom := errors.New("boom")
	a, b := &stubNotifier{err: boom}, &stubNotifier{}
	err := Multi{a, nil, b}.Notify(context.Background(), wizard.Notice{Title: "x"})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	if len(a.got) != 1 || len(b.got) != 1 {
		t.Errorf("every notifier should be called: a=%d b=%d", len(a.got), len(b.got))
	}
}

func TestDeferred(t *testing.T) {
	var d Deferred
	ctx := context.Background()
	_ = d.Notify(ctx, wizard.Notice{Title: "註冊成功！"})
	_ = d.Notify(ctx, wizard.Notice{Title: "個人資料已更新"})
	if d.Pending() != 2 {
		t.Fatalf("Pending() = %d, want 2", d.Pending())
	}

	out := &stubNotifier{}
	if err := d.Flush(ctx, out); err != nil {
		t.Fatal(err)
	}
	if len(out.got) != 2 || out.got[0].Title != "註冊成功！" {
		t.Errorf("flushed %+v", out.got)
	}
	if d.Pending() != 0 {
		t.Error("queue not emptied")
	}
}
