package refresh_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kofiannan/biztrack-api/pkg/refresh"
)

func TestPublishInvokesEachSubscriberOnce(t *testing.T) {
	bus := refresh.NewBus()

	var a, b int
	bus.Subscribe(func() { a++ })
	bus.Subscribe(func() { b++ })

	bus.Publish()
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)

	bus.Publish()
	assert.Equal(t, 2, a)
	assert.Equal(t, 2, b)
}

func TestSubscribersRunInRegistrationOrder(t *testing.T) {
	bus := refresh.NewBus()

	var order []string
	bus.Subscribe(func() { order = append(order, "first") })
	bus.Subscribe(func() { order = append(order, "second") })
	bus.Subscribe(func() { order = append(order, "third") })

	bus.Publish()
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := refresh.NewBus()

	var calls int
	unsubscribe := bus.Subscribe(func() { calls++ })
	bus.Publish()
	assert.Equal(t, 1, calls)

	unsubscribe()
	bus.Publish()
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, bus.Len())
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	bus := refresh.NewBus()

	bus.Subscribe(func() {})
	unsubscribe := bus.Subscribe(func() {})

	unsubscribe()
	unsubscribe()
	assert.Equal(t, 1, bus.Len())
}

func TestPublishWithNoSubscribers(t *testing.T) {
	bus := refresh.NewBus()
	assert.NotPanics(t, func() { bus.Publish() })
}
