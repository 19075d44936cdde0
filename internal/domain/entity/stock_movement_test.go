package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hospimed/farmacia-api/internal/domain/entity"
)

func TestStockEffect_DeltaYAbsoluto(t *testing.T) {
	add := entity.DeltaEffect(30)
	assert.False(t, add.IsAbsolute())
	assert.Equal(t, int64(130), add.Apply(100))

	remove := entity.DeltaEffect(-10)
	assert.Equal(t, int64(-5), remove.Apply(5),
		"Apply puede devolver negativo; el libro es quien lo rechaza")

	set := entity.AbsoluteEffect(42)
	assert.True(t, set.IsAbsolute())
	assert.Equal(t, int64(42), set.Apply(100))
	assert.Equal(t, int64(42), set.Apply(0))
}

func TestValidAdjustmentType(t *testing.T) {
	assert.True(t, entity.ValidAdjustmentType(entity.AdjustmentAdd))
	assert.True(t, entity.ValidAdjustmentType(entity.AdjustmentRemove))
	assert.True(t, entity.ValidAdjustmentType(entity.AdjustmentSet))
	assert.False(t, entity.ValidAdjustmentType("increment"))
	assert.False(t, entity.ValidAdjustmentType(""))
}

func TestValidAdjustmentReason(t *testing.T) {
	for _, reason := range []string{
		entity.ReasonPurchase, entity.ReasonDamage, entity.ReasonReturn,
		entity.ReasonCorrection, entity.ReasonDonation, entity.ReasonTransfer,
		entity.ReasonOther,
	} {
		assert.True(t, entity.ValidAdjustmentReason(reason), reason)
	}
	assert.False(t, entity.ValidAdjustmentReason("shrinkage"))
	assert.False(t, entity.ValidAdjustmentReason(""))
}
