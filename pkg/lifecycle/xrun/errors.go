package xrun

import (
	"errors"
	"fmt"
	"os"
)

// ErrSignal 收到终止信号，可用 errors.Is 判断
var ErrSignal = errors.New("received signal")

// ErrNilFunc 任务函数为 nil
var ErrNilFunc = errors.New("xrun: nil function")

// SignalError 携带触发取消的信号
type SignalError struct {
	Signal os.Signal
}

func (e *SignalError) Error() string {
	if e.Signal == nil {
		return "received signal <nil>"
	}
	return fmt.Sprintf("received signal %s", e.Signal)
}

// Is 使 errors.Is(err, ErrSignal) 成立
func (e *SignalError) Is(target error) bool {
	return target == ErrSignal
}

func (e *SignalError) Unwrap() error {
	return ErrSignal
}
