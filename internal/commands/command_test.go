package commands

import (
	"errors"
	"testing"
)

func codeOf(t *testing.T, err error) ErrorCode {
	t.Helper()
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected CommandError, got: %v", err)
	}
	return cmdErr.Code
}

func TestParseAdd(t *testing.T) {
	cmd, err := Parse("/add Write weekly report")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Type != TypeAdd || cmd.Add == nil || cmd.Add.Title != "Write weekly report" {
		t.Fatalf("unexpected command: %#v", cmd)
	}

	_, err = Parse("/add   ")
	if codeOf(t, err) != ErrCodeInvalidArgument {
		t.Fatalf("expected invalid argument, got: %v", err)
	}
}

func TestParseTargetCommands(t *testing.T) {
	for _, kind := range []Type{TypeStart, TypeStop, TypeDone, TypeRestore, TypeDelete} {
		cmd, err := Parse(string(kind) + " 3")
		if err != nil {
			t.Fatalf("parse %s: %v", kind, err)
		}
		if cmd.Type != kind || cmd.Target == nil || cmd.Target.Target != "3" {
			t.Fatalf("unexpected command for %s: %#v", kind, cmd)
		}
	}

	cmd, err := Parse("done selected")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Target.Target != "selected" {
		t.Fatalf("unexpected target: %q", cmd.Target.Target)
	}

	_, err = Parse("start zero")
	if codeOf(t, err) != ErrCodeInvalidArgument {
		t.Fatalf("expected invalid argument for bad target, got: %v", err)
	}
	_, err = Parse("start 0")
	if codeOf(t, err) != ErrCodeInvalidArgument {
		t.Fatalf("expected invalid argument for position 0, got: %v", err)
	}
	_, err = Parse("stop")
	if codeOf(t, err) != ErrCodeInvalidArgument {
		t.Fatalf("expected invalid argument for missing target, got: %v", err)
	}
}

func TestParseProgressAndDue(t *testing.T) {
	cmd, err := Parse("progress 2 85")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Progress == nil || cmd.Progress.Target != "2" || cmd.Progress.Value != 85 {
		t.Fatalf("unexpected progress command: %#v", cmd)
	}

	_, err = Parse("progress 2 lots")
	if codeOf(t, err) != ErrCodeInvalidArgument {
		t.Fatalf("expected invalid argument for bad value, got: %v", err)
	}

	cmd, err = Parse("due selected 2026-03-01")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Due == nil || cmd.Due.Target != "selected" || cmd.Due.Date != "2026-03-01" {
		t.Fatalf("unexpected due command: %#v", cmd)
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("   ")
	if codeOf(t, err) != ErrCodeEmptyInput {
		t.Fatalf("expected empty input, got: %v", err)
	}
	_, err = Parse("/")
	if codeOf(t, err) != ErrCodeEmptyInput {
		t.Fatalf("expected empty input for bare slash, got: %v", err)
	}
	_, err = Parse("launch rockets")
	if codeOf(t, err) != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command, got: %v", err)
	}
}

func TestExecuteRoutesToHandlers(t *testing.T) {
	cmd, err := Parse("done 1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	called := ""
	res, err := Execute(cmd, Handlers{
		Done: func(a TargetArgs) (Result, error) {
			called = a.Target
			return Result{Message: "completed"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if called != "1" || res.Message != "completed" {
		t.Fatalf("unexpected execution: called=%q res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("restore 1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if codeOf(t, err) != ErrCodeHandlerMissing {
		t.Fatalf("expected handler missing, got: %v", err)
	}
}
