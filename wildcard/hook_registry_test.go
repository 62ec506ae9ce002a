package wildcard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sealdice/wildseal/wildcard/types"
)

func TestHookRegistryPriorityOrder(t *testing.T) {
	var r hookRegistry[string]
	as := assert.New(t)

	_, err := r.register("low", types.HookPriorityLow, "low")
	as.NoError(err)
	_, err = r.register("high", types.HookPriorityHigh, "high")
	as.NoError(err)
	_, err = r.register("normal", types.HookPriorityNormal, "normal")
	as.NoError(err)
	_, err = r.register("normal2", types.HookPriorityNormal, "normal2")
	as.NoError(err)

	var order []string
	for _, entry := range r.snapshot() {
		order = append(order, entry.handler)
	}
	as.Equal([]string{"high", "normal", "normal2", "low"}, order)
}

func TestHookRegistryUnregister(t *testing.T) {
	var r hookRegistry[string]
	as := assert.New(t)

	a, _ := r.register("a", types.HookPriorityNormal, "a")
	b, _ := r.register("b", types.HookPriorityNormal, "b")
	as.NotEqual(a, b)

	as.True(r.unregister(a))
	as.False(r.unregister(a), "unregistering twice should fail")
	as.Len(r.snapshot(), 1)

	as.True(r.unregister(b))
	as.Nil(r.snapshot())
}
