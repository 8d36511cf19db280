package limiter

import (
	"context"
	"sort"
	"time"

	"golang.org/x/time/rate"
)

// 限速器接口，统一了不同限速器的行为
type RateLimiter interface {
	Wait(context.Context) error // 阻塞调用者，直到可以继续执行或上下文被取消
	Limit() rate.Limit          // 返回限速器的速率限制
}

// 将多个限速器按速率限制从小到大排序，然后返回一个多限速器实例
func Multi(limiters ...RateLimiter) *multiLimiter {
	byLimit := func(i, j int) bool {
		return limiters[i].Limit() < limiters[j].Limit()
	}
	sort.Slice(limiters, byLimit)
	return &multiLimiter{limiters: limiters}
}

// 多限速器，只有所有限速器都放行时才能取得令牌
type multiLimiter struct {
	limiters []RateLimiter
}

func (l *multiLimiter) Wait(ctx context.Context) error {
	for _, l := range l.limiters {
		if err := l.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

// 返回最严格的速率限制，没有任何限速器时不限速
func (l *multiLimiter) Limit() rate.Limit {
	if len(l.limiters) == 0 {
		return rate.Inf
	}
	return l.limiters[0].Limit()
}

// Per用于计算duration内允许eventCount次事件时两个令牌之间的间隔
func Per(eventCount int, duration time.Duration) rate.Limit {
	return rate.Every(duration / time.Duration(eventCount))
}

/*
输入两次请求之间的最小间隔，输出一个限速器

桶大小为1，保证任意两次放行之间至少间隔delay；delay<=0时不限速
*/
func MinInterval(delay time.Duration) RateLimiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}
