package domain_test

import (
	"encoding/json"
	"testing"

	"iyan-ordering/internal/domain"
	"iyan-ordering/internal/seed"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLenientLookups(t *testing.T) {
	menu := seed.DefaultMenu()

	assert.Equal(t, int64(2500), menu.SoupPrice("egusi"))
	assert.Equal(t, int64(0), menu.SoupPrice("pepper_soup"))
	assert.Equal(t, int64(0), menu.ProteinPrice("snail"))
	assert.Equal(t, "pepper_soup", menu.SoupName("pepper_soup"))
	assert.Equal(t, "Goat Meat", menu.ProteinName("goat_meat"))

	assert.True(t, menu.BaseMultiplier("").Equal(domain.DefaultMultiplier))
	assert.True(t, menu.BaseMultiplier("1").Equal(decimal.RequireFromString("0.5")))
	assert.True(t, menu.BaseMultiplier("large").Equal(decimal.NewFromInt(2)), "falls back to portions")
	assert.True(t, menu.BaseMultiplier("huge").Equal(domain.DefaultMultiplier))
	assert.True(t, menu.ProteinMultiplier("3").Equal(decimal.NewFromInt(3)))
	assert.True(t, menu.ProteinMultiplier("9").Equal(domain.DefaultMultiplier))
}

func TestMatchComboIsExactSet(t *testing.T) {
	menu := seed.DefaultMenu()

	combo, ok := menu.MatchCombo([]string{"gbegiri", "ewedu", "ewedu"})
	require.True(t, ok)
	assert.Equal(t, "abula", combo.ID)

	_, ok = menu.MatchCombo([]string{"ewedu"})
	assert.False(t, ok, "partial selection")
	_, ok = menu.MatchCombo([]string{"ewedu", "gbegiri", "egusi"})
	assert.False(t, ok, "superset selection")
	_, ok = menu.MatchCombo(nil)
	assert.False(t, ok)
}

func TestFindSoupsCatalogOrder(t *testing.T) {
	menu := seed.DefaultMenu()

	assert.Equal(t, []string{"egusi", "efo_riro"}, menu.FindSoups("I want efo-riro and EGUSI please"))
	assert.Equal(t, []string{"egusi"}, menu.FindSoups("égúsí"))
	assert.Empty(t, menu.FindSoups("just some yam"))
	assert.Equal(t, []string{"goat_meat", "assorted"}, menu.FindProteins("assorted meat and goat meat"))
}

func TestDescribe(t *testing.T) {
	menu := seed.DefaultMenu()

	got := menu.Describe(domain.LineItem{
		Soups:             []string{"egusi", "ewedu"},
		Proteins:          []string{"beef"},
		IyanQuantity:      "2",
		ProteinQuantities: map[string]string{"beef": "2"},
		Quantity:          1,
	})
	assert.Equal(t, "Egusi and Ewedu with Beef (2 Pieces) (2 Wraps)", got)
	assert.Equal(t, "Egusi (Small)", menu.Describe(domain.LineItem{Soups: []string{"egusi"}, Portion: "small"}))
	assert.Equal(t, "Iyan", menu.Describe(domain.LineItem{}))
}

func TestMenuCloneIsDeep(t *testing.T) {
	menu := seed.DefaultMenu()
	clone := menu.Clone()
	clone.Combos[0].Soups[0] = "changed"
	clone.Soups[0].Tags[0] = "changed"

	assert.Equal(t, "ewedu", menu.Combos[0].Soups[0])
	assert.Equal(t, "popular", menu.Soups[0].Tags[0])
}

func TestMultiplierJSON(t *testing.T) {
	raw, err := json.Marshal(domain.Tier{ID: "medium", Name: "Medium", Multiplier: decimal.RequireFromString("1.5")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"medium","name":"Medium","multiplier":"1.5"}`, string(raw))
}

func TestLineItemValidate(t *testing.T) {
	assert.NoError(t, domain.LineItem{Soups: []string{"egusi"}, Quantity: 1}.Validate())
	assert.True(t, domain.IsValidation(domain.LineItem{Soups: []string{""}, Quantity: 1}.Validate()))
	assert.True(t, domain.IsValidation(domain.LineItem{Soups: []string{"egusi"}, Quantity: domain.MaxLineQuantity + 1}.Validate()))
	assert.Equal(t, "2", domain.LineItem{IyanQuantity: "2", Portion: "small"}.BaseTier())
}

func TestStatusLifecycle(t *testing.T) {
	s, ok := domain.ParseStatus(" Baking ")
	require.True(t, ok)
	assert.Equal(t, domain.StatusPreparing, s)
	_, ok = domain.ParseStatus("lost")
	assert.False(t, ok)

	tests := []struct {
		from, to domain.OrderStatus
		want     bool
	}{
		{domain.StatusPending, domain.StatusConfirmed, true},
		{domain.StatusConfirmed, domain.StatusPreparing, true},
		{domain.StatusConfirmed, domain.StatusReady, false},
		{domain.StatusReady, domain.StatusConfirmed, false},
		{domain.StatusPreparing, domain.StatusCancelled, true},
		{domain.StatusOutForDelivery, domain.StatusCancelled, false},
		{domain.StatusDelivered, domain.StatusCancelled, false},
		{domain.StatusCancelled, domain.StatusConfirmed, false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
	assert.Equal(t, -1, domain.StatusCancelled.Index())
	assert.Equal(t, 5, domain.StatusDelivered.Index())
}
