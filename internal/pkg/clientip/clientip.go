// Package clientip определяет идентификатор клиента для учёта генераций.
package clientip

import (
	"fmt"
	"net"
	"net/netip"
	"strings"
)

const (
	// HeaderForwardedFor заголовок, который выставляет прокси перед сервисом
	HeaderForwardedFor = "X-Forwarded-For"
	// Unknown идентификатор, когда адрес определить не удалось
	Unknown = "unknown"
)

// Resolver вычисляет client_id из X-Forwarded-For и адреса соединения.
// С пустым TrustedProxies заголовку доверяем всегда.
type Resolver struct {
	TrustedProxies []netip.Prefix
}

// Resolve первый элемент X-Forwarded-For, иначе адрес соединения без порта, иначе "unknown".
// Формат не проверяется, функция не может завершиться ошибкой.
func (r Resolver) Resolve(forwardedFor, remoteAddr string) string {
	peer := stripPort(strings.TrimSpace(remoteAddr))

	if forwardedFor != "" && r.trusts(peer) {
		first, _, _ := strings.Cut(forwardedFor, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	if peer != "" {
		return peer
	}
	return Unknown
}

// Resolve то же, что Resolver{}.Resolve
func Resolve(forwardedFor, remoteAddr string) string {
	return Resolver{}.Resolve(forwardedFor, remoteAddr)
}

func (r Resolver) trusts(peer string) bool {
	if len(r.TrustedProxies) == 0 {
		return true
	}
	addr, err := netip.ParseAddr(peer)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range r.TrustedProxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func stripPort(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// ParseTrustedProxies разбирает список CIDR или отдельных IP
func ParseTrustedProxies(values []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(values))
	for _, raw := range values {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.Contains(raw, "/") {
			prefix, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", raw, err)
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", raw, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}
