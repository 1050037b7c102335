package config

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watcher 配置监听器
// 监听配置文件变更并通知回调,目前用于运行时调整日志级别
type Watcher struct {
	config     *Config
	configPath string
	viper      *viper.Viper
	callbacks  []func(*Config)
	mu         sync.RWMutex
	stopped    bool
	stopMu     sync.RWMutex
}

// NewWatcher 创建配置监听器
func NewWatcher(cfg *Config, configPath string) *Watcher {
	v := viper.New()
	v.SetConfigFile(configPath)

	return &Watcher{
		config:     cfg,
		configPath: configPath,
		viper:      v,
		callbacks:  make([]func(*Config), 0),
	}
}

// OnChange 注册配置变更回调
func (w *Watcher) OnChange(callback func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start 启动配置监听
func (w *Watcher) Start() error {
	if err := w.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	w.viper.WatchConfig()
	w.viper.OnConfigChange(func(e fsnotify.Event) {
		w.stopMu.RLock()
		stopped := w.stopped
		w.stopMu.RUnlock()
		if stopped {
			return
		}

		var newCfg Config
		if err := w.viper.Unmarshal(&newCfg); err != nil {
			return
		}

		// 回调在锁外执行,避免回调里再取配置时死锁
		w.mu.RLock()
		callbacks := make([]func(*Config), len(w.callbacks))
		copy(callbacks, w.callbacks)
		w.mu.RUnlock()

		for _, callback := range callbacks {
			callback(&newCfg)
		}

		w.mu.Lock()
		w.config = &newCfg
		w.mu.Unlock()
	})

	return nil
}

// Stop 停止配置监听
func (w *Watcher) Stop() {
	w.stopMu.Lock()
	defer w.stopMu.Unlock()
	w.stopped = true
}

// Current 获取当前配置
func (w *Watcher) Current() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.config
}
