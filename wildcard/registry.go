package wildcard

import (
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/lascape/sat"
	"go.uber.org/zap"

	"github.com/sealdice/wildseal/utils"
)

var (
	variantDict     sat.Dicter
	variantDictOnce sync.Once
)

func getVariantDict() sat.Dicter {
	variantDictOnce.Do(func() {
		variantDict = sat.DefaultDict()
	})
	return variantDict
}

// RegistryOptions 控制词表扫描
type RegistryOptions struct {
	Extensions   []string // 参与扫描的扩展名，为空时用 .txt
	FoldVariants bool     // 键名做繁简统一
}

// TokenRegistry 词表名 -> 文件路径
//
// 每次顶层调用重新扫描一次，不做增量更新。同名文件后扫到的覆盖先扫到的，
// 扫描顺序取决于 filepath.WalkDir(按字典序)。
type TokenRegistry struct {
	entries      map[string]string
	foldVariants bool
}

// BuildRegistry 扫描 dir 下所有词表文件，目录不存在时返回空表
func BuildRegistry(dir string, opts RegistryOptions) *TokenRegistry {
	reg := &TokenRegistry{
		entries:      map[string]string{},
		foldVariants: opts.FoldVariants,
	}

	exts := opts.Extensions
	if len(exts) == 0 {
		exts = []string{".txt"}
	}

	if dir == "" {
		return reg
	}

	log := zap.S().Named("wildcard")
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// 读不了的子目录跳过，不影响其他词表
			log.Debugf("skip %s: %v", path, err)
			if d != nil && d.IsDir() && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !utils.HasExtFold(d.Name(), exts) {
			return nil
		}
		reg.entries[reg.Key(d.Name())] = path
		return nil
	})
	if err != nil {
		log.Debugf("wildcard dir %s: %v", dir, err)
	}

	return reg
}

// NewTokenRegistry 直接由键值构造，键会被规范化
func NewTokenRegistry(entries map[string]string, foldVariants bool) *TokenRegistry {
	reg := &TokenRegistry{
		entries:      make(map[string]string, len(entries)),
		foldVariants: foldVariants,
	}
	for name, path := range entries {
		reg.entries[reg.Key(name)] = path
	}
	return reg
}

// Key 规范化词表名: 取最后一段路径、去扩展名、转小写
func (r *TokenRegistry) Key(name string) string {
	key := strings.ToLower(utils.TrimExt(utils.LastSegment(name)))
	if r != nil && r.foldVariants {
		if dict := getVariantDict(); dict != nil {
			if converted := dict.Read(key); converted != "" {
				key = converted
			}
		}
	}
	return key
}

func (r *TokenRegistry) Lookup(name string) (string, bool) {
	if r == nil {
		return "", false
	}
	path, ok := r.entries[r.Key(name)]
	return path, ok
}

func (r *TokenRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}
