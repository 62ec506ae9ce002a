package types

type HookHandle string

type HookPriority int

const (
	HookPriorityLow    HookPriority = -10
	HookPriorityNormal HookPriority = 0
	HookPriorityHigh   HookPriority = 10
)

type HookResult int

const (
	HookResultContinue HookResult = iota
	HookResultStop
	HookResultAbort
)

// EngineLike 钩子拿到的引擎视图，避免 types 反向依赖 wildcard
type EngineLike interface {
	CanonicalNames() ([]string, error)
}

// LineHook 在模板行进入解析前调用，可以改写 *line
type LineHook func(e EngineLike, req *Request, line *string) HookResult

// ResultHook 在结果返回前调用，可以改写结果
type ResultHook func(e EngineLike, req *Request, res *Result) HookResult
