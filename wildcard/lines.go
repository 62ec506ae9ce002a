package wildcard

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/sealdice/wildseal/utils"
)

var (
	ErrNoLines          = errors.New("template has no usable lines")
	ErrTemplateNotFound = errors.New("template file not found")
)

// LoadLines 读取文本文件，返回去掉首尾空白后的非空行
// 读取失败时返回空列表，只记录警告
func LoadLines(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		zap.S().Named("wildcard").Warnf("error reading %s: %v", path, err)
		return nil
	}
	return SplitLines(string(data))
}

func SplitLines(content string) []string {
	return lo.FilterMap(strings.Split(content, "\n"), func(line string, _ int) (string, bool) {
		line = strings.TrimSpace(line)
		return line, line != ""
	})
}

// SelectLine 种子为 1 时取第一行，之后依次轮转，种子 0 对应最后一行
func SelectLine(lines []string, seed uint64) (string, error) {
	n := uint64(len(lines))
	if n == 0 {
		return "", ErrNoLines
	}
	if seed == 0 {
		return lines[n-1], nil
	}
	return lines[(seed-1)%n], nil
}

// ListTemplates 列出 dir 下所有模板文件的相对路径(正斜杠)，已排序
func ListTemplates(dir string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = []string{".txt"}
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !utils.HasExtFold(d.Name(), exts) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
