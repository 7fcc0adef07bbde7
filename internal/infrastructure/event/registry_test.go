package event

import (
	"context"
	"testing"

	"github.com/omnistock/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

// stubHandler is a no-op EventHandler used to exercise registration.
type stubHandler struct {
	eventTypes []string
}

func newStubHandler(eventTypes ...string) *stubHandler {
	return &stubHandler{eventTypes: eventTypes}
}

func (h *stubHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	return nil
}

func (h *stubHandler) EventTypes() []string {
	return h.eventTypes
}

func TestHandlerRegistry_Register(t *testing.T) {
	t.Run("should resolve a handler only for its registered types", func(t *testing.T) {
		registry := NewHandlerRegistry()
		handler := newStubHandler("ProductCreated", "ProductUpdated")

		registry.Register(handler, "ProductCreated", "ProductUpdated")

		assert.Equal(t, []shared.EventHandler{handler}, registry.GetHandlers("ProductCreated"))
		assert.Equal(t, []shared.EventHandler{handler}, registry.GetHandlers("ProductUpdated"))
		assert.Empty(t, registry.GetHandlers("ProductDeleted"))
	})

	t.Run("should treat a typeless registration as wildcard", func(t *testing.T) {
		registry := NewHandlerRegistry()
		handler := newStubHandler()

		registry.Register(handler)

		assert.Equal(t, []shared.EventHandler{handler}, registry.GetHandlers("StockLevelChanged"))
		assert.Equal(t, []shared.EventHandler{handler}, registry.GetHandlers("SyncCompleted"))
	})

	t.Run("should append wildcard handlers after typed ones", func(t *testing.T) {
		registry := NewHandlerRegistry()
		typed := newStubHandler("StockBelowThreshold")
		wildcard := newStubHandler()

		registry.Register(typed, "StockBelowThreshold")
		registry.Register(wildcard)

		handlers := registry.GetHandlers("StockBelowThreshold")
		assert.Equal(t, []shared.EventHandler{typed, wildcard}, handlers)

		handlers = registry.GetHandlers("LocationCreated")
		assert.Equal(t, []shared.EventHandler{wildcard}, handlers)
	})
}

func TestHandlerRegistry_Unregister(t *testing.T) {
	t.Run("should remove only the targeted handler", func(t *testing.T) {
		registry := NewHandlerRegistry()
		first := newStubHandler("StockLevelChanged")
		second := newStubHandler("StockLevelChanged")

		registry.Register(first, "StockLevelChanged")
		registry.Register(second, "StockLevelChanged")
		assert.Len(t, registry.GetHandlers("StockLevelChanged"), 2)

		registry.Unregister(first)

		assert.Equal(t, []shared.EventHandler{second}, registry.GetHandlers("StockLevelChanged"))
	})

	t.Run("should remove a wildcard handler", func(t *testing.T) {
		registry := NewHandlerRegistry()
		wildcard := newStubHandler()

		registry.Register(wildcard)
		assert.Len(t, registry.GetHandlers("ProductCreated"), 1)

		registry.Unregister(wildcard)

		assert.Empty(t, registry.GetHandlers("ProductCreated"))
	})
}

func TestHandlerRegistry_GetAllHandlers(t *testing.T) {
	t.Run("should list typed and wildcard handlers", func(t *testing.T) {
		registry := NewHandlerRegistry()
		registry.Register(newStubHandler("ProductCreated"), "ProductCreated")
		registry.Register(newStubHandler("LocationCreated"), "LocationCreated")
		registry.Register(newStubHandler())

		assert.Len(t, registry.GetAllHandlers(), 3)
	})

	t.Run("should not duplicate a handler registered for several types", func(t *testing.T) {
		registry := NewHandlerRegistry()
		handler := newStubHandler("ProductCreated", "ProductUpdated")

		registry.Register(handler, "ProductCreated", "ProductUpdated")

		assert.Len(t, registry.GetAllHandlers(), 1)
	})
}
