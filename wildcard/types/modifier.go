package types

// WeightedOption 随机组 {a|b|2::c} 中的一个候选项
type WeightedOption struct {
	Text   string
	Weight float64 // 缺省或解析失败时为 1.0，负数和非有限值按 0 处理
}

// ModifierDirective 从 <lora:name:strength:strength> 中解析出的一条修饰指令
type ModifierDirective struct {
	Name              string  `json:"name" yaml:"name"`                           // 匹配后的正式名称，匹配不到时与 RawName 相同
	RawName           string  `json:"rawName" yaml:"rawName"`                     // 文本中写的原始名称
	PrimaryStrength   float64 `json:"primaryStrength" yaml:"primaryStrength"`     // 对应 model strength
	SecondaryStrength float64 `json:"secondaryStrength" yaml:"secondaryStrength"` // 对应 clip strength
	Matched           bool    `json:"matched" yaml:"matched"`                     // 是否在正式名称表中找到
}
