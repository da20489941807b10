package app

import (
	"sync"

	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shopmind/shopmind/internal/domain"
)

// ConfigManager reads typed settings from the sys_config table with a
// small in-memory cache.
type ConfigManager struct {
	db    *gorm.DB
	mu    sync.RWMutex
	cache map[string]string
}

func NewConfigManager(db *gorm.DB) *ConfigManager {
	return &ConfigManager{db: db, cache: make(map[string]string)}
}

func (m *ConfigManager) getValue(category, name string) string {
	key := category + "." + name

	m.mu.RLock()
	if v, ok := m.cache[key]; ok {
		m.mu.RUnlock()
		return v
	}
	m.mu.RUnlock()

	var cfg domain.SysConfig
	err := m.db.Where("type = ? and name = ?", category, name).First(&cfg).Error
	if err != nil {
		zap.L().Debug("setting not found", zap.String("key", key))
		return ""
	}

	m.mu.Lock()
	m.cache[key] = cfg.Value
	m.mu.Unlock()
	return cfg.Value
}

// Invalidate drops the cached value for a setting.
func (m *ConfigManager) Invalidate(category, name string) {
	m.mu.Lock()
	delete(m.cache, category+"."+name)
	m.mu.Unlock()
}

func (m *ConfigManager) GetString(category, name string) string {
	return m.getValue(category, name)
}

func (m *ConfigManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(m.getValue(category, name))
}

func (m *ConfigManager) GetInt(category, name string) int {
	return cast.ToInt(m.getValue(category, name))
}

func (m *ConfigManager) GetBool(category, name string) bool {
	return cast.ToBool(m.getValue(category, name))
}
