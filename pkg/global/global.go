package global

import (
	"sync"

	"snapbuy/pkg/config"
	"snapbuy/pkg/logger"
	"snapbuy/pkg/notify"
)

var (
	cfg      *config.Store
	log      *logger.Logger
	notifier *notify.NotifyService
	initOnce sync.Once
	mu       sync.RWMutex
)

func InitGlobals(store *config.Store, logger *logger.Logger, notifyCommand string) {
	initOnce.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		cfg = store
		log = logger
		notifier = notify.NewNotifyService(notifyCommand, logger)
	})
}

// GetConfig returns the global settings store
func GetConfig() *config.Store {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// GetLogger returns the global logger instance
func GetLogger() *logger.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// GetNotifier returns the global notifier instance
func GetNotifier() *notify.NotifyService {
	mu.RLock()
	defer mu.RUnlock()
	return notifier
}
