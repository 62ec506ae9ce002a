package assets

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/sealdice/wildseal/utils"
)

// NameSource 提供正式名称表，顺序即匹配时的查找顺序
type NameSource interface {
	Names() ([]string, error)
}

// StaticSource 固定的名称表
type StaticSource []string

func (s StaticSource) Names() ([]string, error) {
	return append([]string(nil), s...), nil
}

// DirSource 扫描模型目录，返回相对路径(系统分隔符)，已排序
type DirSource struct {
	Root       string
	Extensions []string
}

func (s *DirSource) Names() ([]string, error) {
	if s.Root == "" {
		return nil, nil
	}

	var names []string
	err := filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == s.Root && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() || !utils.HasExtFold(d.Name(), s.Extensions) {
			return nil
		}
		rel, err := filepath.Rel(s.Root, path)
		if err != nil {
			return err
		}
		names = append(names, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(names)
	return names, nil
}
