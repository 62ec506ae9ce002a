package utils

import "strings"

// SlashPath 统一路径分隔符，反斜杠一律转为正斜杠
func SlashPath(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// LastSegment 取路径最后一段，两种分隔符都认
func LastSegment(p string) string {
	if idx := strings.LastIndexAny(p, `/\`); idx != -1 {
		return p[idx+1:]
	}
	return p
}

// TrimExt 去掉最后一段上的扩展名，如 "a/b.txt" -> "a/b"
// 以点开头且没有其他点的名字(".hidden")保持原样
func TrimExt(p string) string {
	seg := LastSegment(p)
	idx := strings.LastIndexByte(seg, '.')
	if idx <= 0 {
		return p
	}
	return p[:len(p)-len(seg)+idx]
}

// TrimOneSuffix 只去掉第一个匹配到的后缀
func TrimOneSuffix(s string, suffixes []string) string {
	for _, suffix := range suffixes {
		if suffix != "" && strings.HasSuffix(s, suffix) {
			return s[:len(s)-len(suffix)]
		}
	}
	return s
}

// HasExtFold 判断文件名是否以给定扩展名之一结尾(忽略大小写)
func HasExtFold(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if ext != "" && strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}
