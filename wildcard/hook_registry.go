package wildcard

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/sealdice/wildseal/wildcard/types"
)

// hookRegistry 按优先级从高到低保存钩子，同优先级按注册顺序
type hookRegistry[T any] struct {
	mu    sync.RWMutex
	seq   atomic.Uint64
	items []hookEntry[T]
}

type hookEntry[T any] struct {
	id       types.HookHandle
	name     string
	priority int
	handler  T
}

func (r *hookRegistry[T]) register(name string, priority types.HookPriority, handler T) (types.HookHandle, error) {
	if v := reflect.ValueOf(any(handler)); !v.IsValid() || (v.Kind() == reflect.Func && v.IsNil()) {
		return "", errors.New("hook handler must not be nil")
	}

	entry := hookEntry[T]{
		id:       types.HookHandle(fmt.Sprintf("hook-%d", r.seq.Add(1))),
		name:     name,
		priority: int(priority),
		handler:  handler,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	insertAt := len(r.items)
	for i, existing := range r.items {
		if entry.priority > existing.priority {
			insertAt = i
			break
		}
	}

	r.items = append(r.items, hookEntry[T]{})
	copy(r.items[insertAt+1:], r.items[insertAt:])
	r.items[insertAt] = entry

	return entry.id, nil
}

func (r *hookRegistry[T]) unregister(handle types.HookHandle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, entry := range r.items {
		if entry.id == handle {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true
		}
	}
	return false
}

func (r *hookRegistry[T]) snapshot() []hookEntry[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.items) == 0 {
		return nil
	}

	out := make([]hookEntry[T], len(r.items))
	copy(out, r.items)
	return out
}
