package chat

import (
	"errors"
	"fmt"
)

// Stage identifies which step of the assistant protocol failed.
type Stage string

const (
	StageProvision     Stage = "assistant_provision"
	StageThreadCreate  Stage = "thread_create"
	StageMessageAppend Stage = "message_append"
	StageRunCreate     Stage = "run_create"
	StageRunFailed     Stage = "run_failed"
	StageRunTimeout    Stage = "run_timeout"
	StageExtract       Stage = "extract"
)

// User-facing messages per stage. Operators get the cause from logs; end
// users only ever see these strings.
var stageMessages = map[Stage]string{
	StageProvision:     "サービスが一時的に利用できません",
	StageThreadCreate:  "スレッド作成に失敗しました",
	StageMessageAppend: "メッセージ追加に失敗しました",
	StageRunCreate:     "アシスタント実行に失敗しました",
	StageRunFailed:     "アシスタントの実行が失敗しました",
	StageRunTimeout:    "タイムアウトしました",
	StageExtract:       "レスポンスの取得に失敗しました",
}

// GenericUserMessage is the fallback for failures outside any stage.
const GenericUserMessage = "内部エラーが発生しました"

// StageError carries the failed stage, a user-safe localized message and
// the underlying cause. Timeout is kept distinguishable from every
// run-reported failure so logs and metrics can separate infra slowness
// from model-side failure.
type StageError struct {
	Stage Stage
	Cause error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Stage, e.Cause)
	}
	return string(e.Stage)
}

// Unwrap returns the underlying cause.
func (e *StageError) Unwrap() error {
	return e.Cause
}

// UserMessage returns the localized message shown to the end user.
func (e *StageError) UserMessage() string {
	if msg, ok := stageMessages[e.Stage]; ok {
		return msg
	}
	return GenericUserMessage
}

func newStageError(stage Stage, cause error) *StageError {
	return &StageError{Stage: stage, Cause: cause}
}

// IsTimeout reports whether err is the polling-cap timeout.
func IsTimeout(err error) bool {
	var se *StageError
	return errors.As(err, &se) && se.Stage == StageRunTimeout
}

// UserMessageFor translates any orchestration error into the string shown
// to end users.
func UserMessageFor(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.UserMessage()
	}
	return GenericUserMessage
}
