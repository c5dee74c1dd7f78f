package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

const (
	defaultRateLimit   = 60
	defaultRateWindow  = time.Minute
	rateLimitKeyPrefix = "salonservice:rl"

	msgRateLimited        = "слишком много запросов"
	msgRateLimiterOffline = "сервис временно недоступен"
)

// fixedWindowScript атомарно увеличивает счетчик и ставит TTL окна при первом запросе
var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RedisCounter счетчик фиксированного окна в Redis, общий для всех инстансов сервиса
type RedisCounter struct {
	rdb redis.Scripter
}

func NewRedisCounter(rdb redis.Scripter) *RedisCounter {
	return &RedisCounter{rdb: rdb}
}

// Incr увеличивает счетчик ключа в текущем окне
func (c *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	res, err := fixedWindowScript.Run(ctx, c.rdb, []string{key}, window.Milliseconds()).Result()
	if err != nil {
		return 0, err
	}

	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected redis script result type %T", res)
	}
}

// RateLimiter ограничение числа запросов с одного клиента
type RateLimiter struct {
	counter        WindowCounter
	limit          int
	window         time.Duration
	failOpen       bool
	trustedProxies []*net.IPNet
	logger         Logger
}

// NewRateLimiter создает лимитер. X-Forwarded-For учитывается только от trustedProxies
func NewRateLimiter(counter WindowCounter, limit int, window time.Duration, failOpen bool, trustedProxies []*net.IPNet, logger Logger) *RateLimiter {
	if limit <= 0 {
		limit = defaultRateLimit
	}
	if window <= 0 {
		window = defaultRateWindow
	}
	return &RateLimiter{
		counter:        counter,
		limit:          limit,
		window:         window,
		failOpen:       failOpen,
		trustedProxies: trustedProxies,
		logger:         logger,
	}
}

// ParseTrustedProxies разбирает список CIDR доверенных прокси
func ParseTrustedProxies(cidrs []string) ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, cidr := range cidrs {
		_, ipNet, err := net.ParseCIDR(strings.TrimSpace(cidr))
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", cidr, err)
		}
		nets = append(nets, ipNet)
	}
	return nets, nil
}

// Middleware возвращает 429 при превышении лимита.
// Если Redis недоступен: при failOpen запрос пропускается, иначе 503.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rateLimitKeyPrefix + ":" + rl.clientKey(r)

		count, err := rl.counter.Incr(r.Context(), key, rl.window)
		if err != nil {
			rl.logger.Warn("RateLimiter: counter error for key=%s: %v", key, err)
			if rl.failOpen {
				next.ServeHTTP(w, r)
				return
			}
			handlers.RespondServiceUnavailable(w, msgRateLimiterOffline)
			return
		}

		if count > int64(rl.limit) {
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			handlers.RespondTooManyRequests(w, msgRateLimited)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientKey ключ клиента: адрес соединения. За доверенным прокси берётся
// ближайший справа адрес X-Forwarded-For, не принадлежащий доверенным прокси.
// Заголовки пользователя не учитываются: на публичных маршрутах их никто не проверяет
func (rl *RateLimiter) clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if !rl.isTrusted(net.ParseIP(host)) {
		return "ip:" + host
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		ip := net.ParseIP(hop)
		if ip == nil {
			break
		}
		if !rl.isTrusted(ip) {
			return "ip:" + ip.String()
		}
	}

	return "ip:" + host
}

func (rl *RateLimiter) isTrusted(ip net.IP) bool {
	if ip == nil {
		return false
	}
	for _, n := range rl.trustedProxies {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
