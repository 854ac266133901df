package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVendorCategoryLabel(t *testing.T) {
	assert.Equal(t, "sound lights", VendorSoundLights.Label())
	assert.Equal(t, "catering", VendorCatering.Label())
}

func TestEventStatusTransitions(t *testing.T) {
	assert.True(t, EventDraft.CanTransition(EventPublished))
	assert.True(t, EventPublished.CanTransition(EventOngoing))
	assert.True(t, EventOngoing.CanTransition(EventCompleted))
	assert.True(t, EventDraft.CanTransition(EventCancelled))
	assert.True(t, EventDraft.CanTransition(EventDraft))

	assert.False(t, EventDraft.CanTransition(EventCompleted))
	assert.False(t, EventCompleted.CanTransition(EventDraft))
	assert.False(t, EventCancelled.CanTransition(EventPublished))
}

func TestValidSubCategory(t *testing.T) {
	assert.True(t, ValidSubCategory("fashion", "jewellery"))
	assert.False(t, ValidSubCategory("fashion", "bakery"))
	assert.False(t, ValidSubCategory("unknown", "bakery"))
}

func TestRoleIsGlobal(t *testing.T) {
	assert.True(t, RoleSuperAdmin.IsGlobal())
	assert.False(t, RoleCityManager.IsGlobal())
}
