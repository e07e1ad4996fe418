package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add      func(AddArgs) (Result, error)
	Start    func(TargetArgs) (Result, error)
	Stop     func(TargetArgs) (Result, error)
	Done     func(TargetArgs) (Result, error)
	Restore  func(TargetArgs) (Result, error)
	Delete   func(TargetArgs) (Result, error)
	Progress func(ProgressArgs) (Result, error)
	Due      func(DueArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missingHandler("add")
		}
		return handlers.Add(*cmd.Add)
	case TypeStart:
		if handlers.Start == nil {
			return Result{}, missingHandler("start")
		}
		return handlers.Start(*cmd.Target)
	case TypeStop:
		if handlers.Stop == nil {
			return Result{}, missingHandler("stop")
		}
		return handlers.Stop(*cmd.Target)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, missingHandler("done")
		}
		return handlers.Done(*cmd.Target)
	case TypeRestore:
		if handlers.Restore == nil {
			return Result{}, missingHandler("restore")
		}
		return handlers.Restore(*cmd.Target)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, missingHandler("del")
		}
		return handlers.Delete(*cmd.Target)
	case TypeProgress:
		if handlers.Progress == nil {
			return Result{}, missingHandler("progress")
		}
		return handlers.Progress(*cmd.Progress)
	case TypeDue:
		if handlers.Due == nil {
			return Result{}, missingHandler("due")
		}
		return handlers.Due(*cmd.Due)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missingHandler(name string) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", name)}
}
