package wildcard

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/sealdice/wildseal/wildcard/assets"
	"github.com/sealdice/wildseal/wildcard/types"
)

var ErrHookAborted = errors.New("aborted by hook")

type Engine struct {
	Config *Config

	// Names 正式名称表来源，默认扫描 Config.LoraDir
	Names assets.NameSource

	lineHooks   hookRegistry[types.LineHook]
	resultHooks hookRegistry[types.ResultHook]

	processed atomic.Int64
}

func NewEngine(cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Engine{
		Config: cfg,
		Names: &assets.DirSource{
			Root:       cfg.LoraDir,
			Extensions: cfg.ModelExtensions,
		},
	}
}

func (e *Engine) CanonicalNames() ([]string, error) {
	if e.Names == nil {
		return nil, nil
	}
	return e.Names.Names()
}

// Processed 已完成的顶层调用次数
func (e *Engine) Processed() int64 {
	return e.processed.Load()
}

// Templates 列出 wildcardDir 下可选的模板文件
func (e *Engine) Templates() ([]string, error) {
	return ListTemplates(e.Config.WildcardDir, e.Config.ResourceExtensions)
}

// BuildRegistry 按当前配置重新扫描词表
func (e *Engine) BuildRegistry() *TokenRegistry {
	return BuildRegistry(e.Config.WildcardDir, RegistryOptions{
		Extensions:   e.Config.ResourceExtensions,
		FoldVariants: e.Config.FoldVariants,
	})
}

// ResolveText 只做展开，不处理指令
func (e *Engine) ResolveText(line string, seed uint64) string {
	ctx := e.newContext(seed)
	return Resolve(ctx, line, e.BuildRegistry())
}

func (e *Engine) newContext(seed uint64) *ResolutionContext {
	ctx := NewResolutionContext(seed)
	ctx.MaxOutputLength = e.Config.MaxOutputLength
	return ctx
}

// Process 一次完整的顶层调用: 选行、展开、提取指令、匹配正式名称
func (e *Engine) Process(req *types.Request) (*types.Result, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}

	line, err := e.selectLine(req)
	if err != nil {
		return nil, err
	}

	if e.runLineHooks(req, &line) {
		return nil, ErrHookAborted
	}

	ctx := e.newContext(req.Seed)
	resolved := Resolve(ctx, line, e.BuildRegistry())
	modifiers, text := ExtractDirectives(resolved, e.Config.DirectiveKeyword)
	e.matchModifiers(modifiers)

	res := &types.Result{
		Line:      line,
		Resolved:  resolved,
		Text:      text,
		Modifiers: modifiers,
		Passes:    ctx.Passes,
	}

	if e.runResultHooks(req, res) {
		return nil, ErrHookAborted
	}

	e.processed.Add(1)
	return res, nil
}

func (e *Engine) selectLine(req *types.Request) (string, error) {
	if req.Line != "" {
		return req.Line, nil
	}
	if req.File == "" || !filepath.IsLocal(filepath.FromSlash(req.File)) {
		return "", fmt.Errorf("%q: %w", req.File, ErrTemplateNotFound)
	}

	path := filepath.Join(e.Config.WildcardDir, filepath.FromSlash(req.File))
	if st, err := os.Stat(path); err != nil || st.IsDir() {
		return "", fmt.Errorf("%q: %w", req.File, ErrTemplateNotFound)
	}

	line, err := SelectLine(LoadLines(path), req.Seed)
	if err != nil {
		return "", fmt.Errorf("%q: %w", req.File, err)
	}
	return line, nil
}

// 匹配不到的名字保留原样，只记警告
func (e *Engine) matchModifiers(modifiers []*types.ModifierDirective) {
	if len(modifiers) == 0 {
		return
	}

	log := zap.S().Named("wildcard")
	names, err := e.CanonicalNames()
	if err != nil {
		log.Warnf("failed to list canonical names: %v", err)
	}

	for _, m := range modifiers {
		if canonical, ok := MatchCanonicalName(m.RawName, names, e.Config.ModelSuffixes); ok {
			m.Name = canonical
			m.Matched = true
			continue
		}
		m.Name = m.RawName
		log.Warnf("could not find strict match for %s %q, using raw name", e.Config.DirectiveKeyword, m.RawName)
	}
}

func (e *Engine) RegisterLineHook(name string, priority types.HookPriority, hook types.LineHook) (types.HookHandle, error) {
	return e.lineHooks.register(name, priority, hook)
}

func (e *Engine) UnregisterLineHook(handle types.HookHandle) bool {
	return e.lineHooks.unregister(handle)
}

func (e *Engine) RegisterResultHook(name string, priority types.HookPriority, hook types.ResultHook) (types.HookHandle, error) {
	return e.resultHooks.register(name, priority, hook)
}

func (e *Engine) UnregisterResultHook(handle types.HookHandle) bool {
	return e.resultHooks.unregister(handle)
}

func (e *Engine) runLineHooks(req *types.Request, line *string) bool {
	for _, entry := range e.lineHooks.snapshot() {
		switch entry.handler(e, req, line) {
		case types.HookResultStop:
			return false
		case types.HookResultAbort:
			return true
		}
	}
	return false
}

func (e *Engine) runResultHooks(req *types.Request, res *types.Result) bool {
	for _, entry := range e.resultHooks.snapshot() {
		switch entry.handler(e, req, res) {
		case types.HookResultStop:
			return false
		case types.HookResultAbort:
			return true
		}
	}
	return false
}
