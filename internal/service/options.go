package service

import (
	"time"

	"github.com/mohamadacma/capflow-demo/internal/logging"
	"github.com/sirupsen/logrus"
)

// Option 服务可选配置
type Option func(*options)

type options struct {
	now    func() time.Time
	logger *logrus.Logger
	locks  *KeyedMutex
}

// WithClock 指定时间来源（测试用）
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger 指定日志记录器
func WithLogger(logger *logrus.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLocks 指定决定串行化使用的锁,多个 DecisionService 共享同一把锁时使用
func WithLocks(locks *KeyedMutex) Option {
	return func(o *options) {
		if locks != nil {
			o.locks = locks
		}
	}
}

func buildOptions(opts []Option) *options {
	o := &options{
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = logging.OrDefault(o.logger)
	if o.locks == nil {
		o.locks = NewKeyedMutex()
	}
	return o
}
