package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeStart    Type = "start"
	TypeStop     Type = "stop"
	TypeDone     Type = "done"
	TypeRestore  Type = "restore"
	TypeDelete   Type = "del"
	TypeProgress Type = "progress"
	TypeDue      Type = "due"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Title string
}

// TargetArgs names a task by its 1-based position in the current list, or
// "selected" for the cursor row.
type TargetArgs struct {
	Target string
}

type ProgressArgs struct {
	Target string
	Value  int
}

type DueArgs struct {
	Target string
	Date   string
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Target   *TargetArgs
	Progress *ProgressArgs
	Due      *DueArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeStart, TypeStop, TypeDone, TypeRestore, TypeDelete:
		return parseTarget(Type(head), input, args)
	case TypeProgress:
		return parseProgress(input, args)
	case TypeDue:
		return parseDue(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title}}, nil
}

func parseTarget(kind Type, raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a target", kind)}
	}
	target := strings.ToLower(args[0])
	if err := validateTarget(target); err != nil {
		return Command{}, err
	}
	return Command{Type: kind, Raw: raw, Target: &TargetArgs{Target: target}}, nil
}

func parseProgress(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "progress requires target and value"}
	}
	target := strings.ToLower(args[0])
	if err := validateTarget(target); err != nil {
		return Command{}, err
	}
	value, err := strconv.Atoi(args[1])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("progress value must be a number: %s", args[1])}
	}
	return Command{Type: TypeProgress, Raw: raw, Progress: &ProgressArgs{Target: target, Value: value}}, nil
}

func parseDue(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "due requires target and date (YYYY-MM-DD)"}
	}
	target := strings.ToLower(args[0])
	if err := validateTarget(target); err != nil {
		return Command{}, err
	}
	return Command{Type: TypeDue, Raw: raw, Due: &DueArgs{Target: target, Date: args[1]}}, nil
}

func validateTarget(target string) error {
	if target == "selected" {
		return nil
	}
	n, err := strconv.Atoi(target)
	if err != nil || n < 1 {
		return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("target must be a position or 'selected': %s", target)}
	}
	return nil
}
