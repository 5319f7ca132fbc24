// Package cache implementa um cache TTL em memória, limitado e sincronizado,
// para memorizar lookups de caminho quente (ex.: CEP -> endereço).
package cache

import (
	"sync"
	"time"
)

const defaultMaxEntries = 1024

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache cache chave/valor com expiração por entrada e limite de tamanho.
// Seguro para leitores e escritores concorrentes.
type TTLCache[K comparable, V any] struct {
	mu         sync.RWMutex
	entries    map[K]entry[V]
	maxEntries int
}

// New cria um cache com o limite informado (<=0 usa o padrão de 1024 entradas).
func New[K comparable, V any](maxEntries int) *TTLCache[K, V] {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	return &TTLCache[K, V]{
		entries:    make(map[K]entry[V]),
		maxEntries: maxEntries,
	}
}

// Get devolve o valor se existir e não estiver expirado.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set grava o valor com o TTL informado. Quando o cache atinge o limite,
// as entradas expiradas são removidas; se ainda estiver cheio, descarta
// uma entrada arbitrária (o custo de um miss é só uma consulta a mais).
func (c *TTLCache[K, V]) Set(key K, value V, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictLocked(now)
	}
	c.entries[key] = entry[V]{value: value, expiresAt: now.Add(ttl)}
}

// Len devolve o número de entradas (inclui expiradas ainda não coletadas).
func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *TTLCache[K, V]) evictLocked(now time.Time) {
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	if len(c.entries) < c.maxEntries {
		return
	}
	for k := range c.entries {
		delete(c.entries, k)
		return
	}
}
