package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/zoeyai/zoeyvisual/pkg/codec"
	"github.com/zoeyai/zoeyvisual/pkg/search"
	"github.com/zoeyai/zoeyvisual/pkg/visual"
)

// Config 运行配置
type Config struct {
	Margin      visual.Margin `json:"margin" yaml:"margin"`
	ImageFormat string        `json:"image_format" yaml:"image_format"`
	Threshold   float64       `json:"threshold" yaml:"threshold"`
	MaxResults  int           `json:"max_results" yaml:"max_results"`
	LogLevel    string        `json:"log_level" yaml:"log_level"`
	LogFile     string        `json:"log_file,omitempty" yaml:"log_file,omitempty"`
	RemoteAddr  string        `json:"remote_addr,omitempty" yaml:"remote_addr,omitempty"`
}

// DefaultConfig 默认配置
func DefaultConfig() *Config {
	return &Config{
		Margin:      visual.DefaultMargin,
		ImageFormat: visual.FormatPNG,
		Threshold:   visual.DefaultSimilarity,
		MaxResults:  search.MaxResultCount,
		LogLevel:    "INFO",
	}
}

// Validate 检查并规范化配置
func (c *Config) Validate() error {
	if c.Threshold <= 0 || c.Threshold > 1 {
		return fmt.Errorf("threshold 应在 (0, 1] 之间: %v", c.Threshold)
	}
	if c.Margin.W < 0 || c.Margin.H < 0 {
		return fmt.Errorf("margin 不能为负: %+v", c.Margin)
	}
	if c.MaxResults <= 0 {
		c.MaxResults = search.MaxResultCount
	}
	c.ImageFormat = codec.NormalizeFormat(c.ImageFormat)
	return nil
}

// Manager 配置管理器，按文件扩展名选择 JSON 或 YAML
type Manager struct {
	configDir  string
	configFile string
	mu         sync.RWMutex
}

// NewManager 创建配置管理器
func NewManager() *Manager {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return NewManagerWithDir(filepath.Join(homeDir, ".zoey-visual"))
}

// NewManagerWithDir 使用指定目录创建配置管理器
func NewManagerWithDir(configDir string) *Manager {
	return &Manager{
		configDir:  configDir,
		configFile: filepath.Join(configDir, "config.json"),
	}
}

// NewManagerWithFile 使用指定文件创建配置管理器
func NewManagerWithFile(path string) *Manager {
	return &Manager{
		configDir:  filepath.Dir(path),
		configFile: path,
	}
}

func (m *Manager) isYAML() bool {
	ext := strings.ToLower(filepath.Ext(m.configFile))
	return ext == ".yaml" || ext == ".yml"
}

// Load 加载配置，文件不存在时返回默认配置。未写出的字段保持默认值。
func (m *Manager) Load() (*Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(m.configFile)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("读取配置文件失败: %w", err)
	}

	config := DefaultConfig()
	if m.isYAML() {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("解析配置文件失败: %w", err)
	}
	if err := config.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("配置无效: %w", err)
	}
	return config, nil
}

// Save 保存配置
func (m *Manager) Save(config *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.configDir, 0755); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if m.isYAML() {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(m.configFile, data, 0600); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}
	return nil
}

// Clear 清除配置
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(m.configFile)
}

// GetConfigDir 获取配置目录
func (m *Manager) GetConfigDir() string {
	return m.configDir
}

// GetConfigFile 获取配置文件路径
func (m *Manager) GetConfigFile() string {
	return m.configFile
}

// Exists 检查配置文件是否存在
func (m *Manager) Exists() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, err := os.Stat(m.configFile)
	return err == nil
}

// 全局配置管理器
var defaultManager = NewManager()

// GetDefaultManager 获取默认配置管理器
func GetDefaultManager() *Manager {
	return defaultManager
}

// Load 使用默认管理器加载配置
func Load() (*Config, error) {
	return defaultManager.Load()
}

// Save 使用默认管理器保存配置
func Save(config *Config) error {
	return defaultManager.Save(config)
}
