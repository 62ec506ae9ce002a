package converter

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

var ErrFileExists = errors.New("file already exists")

// Bundle 词表包展开后的结果，key 为斜杠分隔的相对路径(不含扩展名)
type Bundle map[string][]string

// ParseBundle unmarshals a wildcard bundle according to the desired format ("json" or "yaml").
func ParseBundle(data []byte, format string) (Bundle, error) {
	var raw map[string]any
	var err error

	switch strings.ToLower(format) {
	case "json":
		err = json.Unmarshal(data, &raw)
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = fmt.Errorf("unsupported input format: %s", format)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to parse wildcard bundle: %w", err)
	}

	bundle := Bundle{}
	if err := flatten(bundle, "", raw); err != nil {
		return nil, err
	}
	return bundle, nil
}

// 嵌套的 map 变成目录，叶子为列表或多行字符串
func flatten(dst Bundle, prefix string, node map[string]any) error {
	for key, value := range node {
		name := strings.Trim(strings.TrimSpace(key), "/")
		if name == "" {
			return fmt.Errorf("empty key under %q", prefix)
		}
		if !filepath.IsLocal(filepath.FromSlash(name)) {
			return fmt.Errorf("invalid key %q under %q", key, prefix)
		}

		path := name
		if prefix != "" {
			path = prefix + "/" + name
		}

		switch v := value.(type) {
		case map[string]any:
			if err := flatten(dst, path, v); err != nil {
				return err
			}
		case []any:
			lines, err := listLines(path, v)
			if err != nil {
				return err
			}
			dst[path] = append(dst[path], lines...)
		case string:
			dst[path] = append(dst[path], splitLines(v)...)
		case nil:
			// 空词表也写出文件
			if _, ok := dst[path]; !ok {
				dst[path] = nil
			}
		default:
			dst[path] = append(dst[path], splitLines(fmt.Sprint(v))...)
		}
	}
	return nil
}

func listLines(path string, items []any) ([]string, error) {
	var out []string
	for i, item := range items {
		switch v := item.(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("%s[%d]: nested value in list is not supported", path, i)
		case nil:
			continue
		case string:
			out = append(out, splitLines(v)...)
		default:
			out = append(out, splitLines(fmt.Sprint(v))...)
		}
	}
	return out, nil
}

func splitLines(s string) []string {
	return lo.FilterMap(strings.Split(s, "\n"), func(line string, _ int) (string, bool) {
		line = strings.TrimSpace(line)
		return line, line != ""
	})
}

// Keys 按字典序返回所有路径
func (b Bundle) Keys() []string {
	keys := lo.Keys(b)
	slices.Sort(keys)
	return keys
}

// WriteTree 把每个 key 写成 dir 下的一个文件，返回写出的相对路径
// overwrite 为 false 时遇到已存在的文件直接报错，不会写出一半
func (b Bundle) WriteTree(dir, ext string, overwrite bool) ([]string, error) {
	if ext == "" {
		ext = ".txt"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	keys := b.Keys()
	files := lo.Map(keys, func(key string, _ int) string { return key + ext })

	if !overwrite {
		for _, f := range files {
			target := filepath.Join(dir, filepath.FromSlash(f))
			if _, err := os.Stat(target); err == nil {
				return nil, fmt.Errorf("%s: %w", target, ErrFileExists)
			}
		}
	}

	for i, key := range keys {
		target := filepath.Join(dir, filepath.FromSlash(files[i]))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		content := strings.Join(b[key], "\n")
		if content != "" {
			content += "\n"
		}
		if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", target, err)
		}
	}
	return files, nil
}
