package adapters

import (
	"github.com/sealdice/wildseal/wildcard/types"
)

const (
	ActionResolve = "resolve"
	ActionList    = "list"
	ActionHello   = "hello"
)

// ResolveRequest 客户端发来的一帧
type ResolveRequest struct {
	ID      string `json:"id"`                // 回显给客户端，用于对应请求
	Action  string `json:"action"`            // resolve / list，为空时按 resolve 处理
	File    string `json:"file,omitempty"`    // 相对 wildcardDir 的模板文件
	Line    string `json:"line,omitempty"`    // 直接给出模板行，优先于 File
	Seed    *int64 `json:"seed,omitempty"`    // 可为负，服务端规范化；不填则随机
	MinSeed uint64 `json:"minSeed,omitempty"` // 规范化时的下限，默认 1
}

// ResolveResponse 服务端回复的一帧
type ResolveResponse struct {
	ID        string                     `json:"id,omitempty"`
	Action    string                     `json:"action"`
	OK        bool                       `json:"ok"`
	Error     string                     `json:"error,omitempty"`
	Session   string                     `json:"session,omitempty"`
	Version   string                     `json:"version,omitempty"`
	Seed      uint64                     `json:"seed,omitempty"`
	Line      string                     `json:"line,omitempty"`
	Resolved  string                     `json:"resolved,omitempty"`
	Text      string                     `json:"text,omitempty"`
	Modifiers []*types.ModifierDirective `json:"modifiers,omitempty"`
	Templates []string                   `json:"templates,omitempty"`
}

// ResolveEngine 适配器需要的引擎能力
type ResolveEngine interface {
	Process(req *types.Request) (*types.Result, error)
	Templates() ([]string, error)
}
