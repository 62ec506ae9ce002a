package types

// Request 一次顶层解析调用
type Request struct {
	File string // 相对 wildcardDir 的模板文件，Line 为空时使用
	Line string // 直接给出的模板行，优先于 File
	Seed uint64 // 已规范化的种子
}

// Result 一次解析的全部输出
type Result struct {
	Line      string               `json:"line"`      // 选中的原始模板行
	Resolved  string               `json:"resolved"`  // 展开完成、尚未剥离指令的文本
	Text      string               `json:"text"`      // 剥离指令并整理空白后的文本
	Modifiers []*ModifierDirective `json:"modifiers"` // 按出现顺序
	Passes    int                  `json:"passes"`    // 实际执行的展开轮数
}
