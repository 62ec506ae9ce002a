package wildcard

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config 引擎配置，可由 yaml 或 json 文件载入
type Config struct {
	WildcardDir        string   `json:"wildcardDir"        yaml:"wildcardDir"`        // 模板与词表目录
	LoraDir            string   `json:"loraDir"            yaml:"loraDir"`            // 正式名称来源目录
	ResourceExtensions []string `json:"resourceExtensions" yaml:"resourceExtensions"` // 词表文件扩展名
	ModelExtensions    []string `json:"modelExtensions"    yaml:"modelExtensions"`    // LoraDir 中计入名称表的扩展名
	ModelSuffixes      []string `json:"modelSuffixes"      yaml:"modelSuffixes"`      // 名称比较时去掉的后缀
	DirectiveKeyword   string   `json:"directiveKeyword"   yaml:"directiveKeyword"`   // <keyword:...>
	MaxOutputLength    int      `json:"maxOutputLength"    yaml:"maxOutputLength"`    // 0 为不限制
	FoldVariants       bool     `json:"foldVariants"       yaml:"foldVariants"`       // 词表名繁简统一
	AssetDB            string   `json:"assetDB"            yaml:"assetDB"`            // 名称表快照，buntdb 文件
	Listen             string   `json:"listen"             yaml:"listen"`             // websocket 监听地址
	RateLimit          float64  `json:"rateLimit"          yaml:"rateLimit"`          // 每个会话每秒请求数
	RateBurst          int      `json:"rateBurst"          yaml:"rateBurst"`
}

func DefaultConfig() *Config {
	return &Config{
		WildcardDir:        "./wildcards",
		LoraDir:            "./models/loras",
		ResourceExtensions: []string{".txt"},
		ModelExtensions:    []string{".safetensors", ".pt", ".ckpt", ".bin"},
		ModelSuffixes:      append([]string(nil), DefaultModelSuffixes...),
		DirectiveKeyword:   DefaultDirectiveKeyword,
		Listen:             "127.0.0.1:8765",
		RateLimit:          10,
		RateBurst:          20,
	}
}

// LoadConfig 读取配置文件，未写出的字段保留默认值
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	cfg := DefaultConfig()
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
		}
	case ".json":
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported file format: %s", ext)
	}

	cfg.fillDefaults()
	return cfg, nil
}

// SaveConfig 按扩展名写出 yaml 或 json
func SaveConfig(cfg *Config, filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	var data []byte
	var err error

	switch ext {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
	case ".json":
		data, err = json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
	default:
		return fmt.Errorf("unsupported file format: %s", ext)
	}

	err = os.WriteFile(filename, data, 0o644)
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// 配置里显式写成空的列表也回落到默认值
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if len(c.ResourceExtensions) == 0 {
		c.ResourceExtensions = def.ResourceExtensions
	}
	if len(c.ModelExtensions) == 0 {
		c.ModelExtensions = def.ModelExtensions
	}
	if len(c.ModelSuffixes) == 0 {
		c.ModelSuffixes = def.ModelSuffixes
	}
	if c.DirectiveKeyword == "" {
		c.DirectiveKeyword = def.DirectiveKeyword
	}
	if c.MaxOutputLength < 0 {
		c.MaxOutputLength = 0
	}
	if c.RateLimit <= 0 {
		c.RateLimit = def.RateLimit
	}
	if c.RateBurst <= 0 {
		c.RateBurst = def.RateBurst
	}
}
