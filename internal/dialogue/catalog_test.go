package dialogue

import (
	"encoding/json"
	"testing"

	"iyan-ordering/internal/domain"
	"iyan-ordering/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogGreetingMentionsShop(t *testing.T) {
	c := NewCatalog(seed.DefaultMenu())
	assert.Contains(t, c.Greeting(), "Ile Iyan")
}

func TestCatalogShowMenuListsSoups(t *testing.T) {
	c := NewCatalog(seed.DefaultMenu())

	r := c.Step(StateGreeting, "show me the menu", nil)

	assert.True(t, r.Recognized)
	assert.Equal(t, StateChoosingSoup, r.State)
	assert.Contains(t, r.Message, "Egusi")
	assert.Nil(t, r.Action)
}

func TestCatalogSoupSelection(t *testing.T) {
	c := NewCatalog(seed.DefaultMenu())

	r := c.Step(StateChoosingSoup, "I want egusi soup", nil)

	assert.Equal(t, StateChoosingProtein, r.State)
	assert.Equal(t, SelectSoups{Soups: []string{"egusi"}}, r.Action)
}

func TestCatalogComboIsAnnounced(t *testing.T) {
	c := NewCatalog(seed.DefaultMenu())

	r := c.Step(StateChoosingSoup, "gbegiri and ewedu", nil)

	assert.Equal(t, SelectSoups{Soups: []string{"ewedu", "gbegiri"}}, r.Action)
	assert.Contains(t, r.Message, "The Abula Special")
	assert.Contains(t, r.Message, "₦500")
}

func TestCatalogFullPlate(t *testing.T) {
	c := NewCatalog(seed.DefaultMenu())
	steps := []struct {
		text      string
		wantState State
		want      Action
	}{
		{text: "egusi", wantState: StateChoosingProtein, want: SelectSoups{Soups: []string{"egusi"}}},
		{text: "goat meat please", wantState: StateChoosingProteinQuantity, want: SelectProteins{Proteins: []string{"goat_meat"}}},
		{text: "two pieces", wantState: StateChoosingWraps, want: SelectProteinQuantity{Quantity: "2"}},
		{text: "3 wraps", wantState: StateConfirming, want: SelectIyanQuantity{IyanQuantity: "3"}},
		{text: "yes", wantState: StateAnythingElse, want: AddToCart{}},
		{text: "that's all", wantState: StateGreeting, want: PlaceOrder{}},
	}

	state := StateChoosingSoup
	for _, step := range steps {
		r := c.Step(state, step.text, nil)
		require.True(t, r.Recognized, step.text)
		assert.Equal(t, step.wantState, r.State, step.text)
		assert.Equal(t, step.want, r.Action, step.text)
		assert.NotEmpty(t, r.Message, step.text)
		state = r.State
	}
}

func TestCatalogNoProteinSkipsPieces(t *testing.T) {
	c := NewCatalog(seed.DefaultMenu())

	r := c.Step(StateChoosingProtein, "no protein", nil)

	assert.Equal(t, StateChoosingWraps, r.State)
	assert.Equal(t, SelectProteins{Proteins: []string{}}, r.Action)
}

func TestCatalogLegacyPortion(t *testing.T) {
	c := NewCatalog(seed.DefaultMenu())

	r := c.Step(StateChoosingWraps, "large please", nil)

	assert.Equal(t, StateConfirming, r.State)
	assert.Equal(t, SelectPortion{Portion: "large"}, r.Action)
}

func TestCatalogUnknownTierReprompts(t *testing.T) {
	c := NewCatalog(seed.DefaultMenu())

	r := c.Step(StateChoosingWraps, "9 wraps", nil)

	assert.True(t, r.Recognized)
	assert.Equal(t, StateChoosingWraps, r.State)
	assert.Nil(t, r.Action)
}

func TestCatalogCancelReturnsToGreeting(t *testing.T) {
	c := NewCatalog(seed.DefaultMenu())

	r := c.Step(StateConfirming, "no, cancel that", nil)

	assert.Equal(t, StateGreeting, r.State)
	assert.Nil(t, r.Action)
}

func TestCatalogCheckoutFromGreetingNeedsCart(t *testing.T) {
	c := NewCatalog(seed.DefaultMenu())
	cart := []domain.LineItem{{Soups: []string{"egusi"}, Quantity: 1}}

	r := c.Step(StateGreeting, "checkout", cart)
	assert.Equal(t, PlaceOrder{}, r.Action)
	assert.Contains(t, r.Message, "1 plate")

	r = c.Step(StateGreeting, "checkout", nil)
	assert.False(t, r.Recognized)
}

func TestCatalogUnrecognizedInputStaysPut(t *testing.T) {
	c := NewCatalog(seed.DefaultMenu())
	states := []State{
		StateGreeting, StateChoosingSoup, StateChoosingProtein,
		StateChoosingProteinQuantity, StateChoosingWraps, StateConfirming, StateAnythingElse,
	}
	for _, s := range states {
		t.Run(string(s), func(t *testing.T) {
			r := c.Step(s, "the weather is lovely", nil)
			assert.False(t, r.Recognized)
			assert.Equal(t, s, r.State)
			assert.Empty(t, r.Message)
			assert.Nil(t, r.Action)
		})
	}
}

func TestParseStateDefaultsToGreeting(t *testing.T) {
	assert.Equal(t, StateGreeting, ParseState(""))
	assert.Equal(t, StateGreeting, ParseState("awaiting_name"))
	assert.Equal(t, StateChoosingWraps, ParseState("choosing_wraps"))
}

func TestActionJSON(t *testing.T) {
	actions := []Action{
		SelectSoups{Soups: []string{"egusi", "ewedu"}},
		SelectProteins{Proteins: []string{"beef"}},
		SelectPortion{Portion: "medium"},
		SelectIyanQuantity{IyanQuantity: "2"},
		SelectProteinQuantity{Protein: "beef", Quantity: "3"},
		AddToCart{},
		PlaceOrder{},
	}
	for _, a := range actions {
		t.Run(string(a.Type()), func(t *testing.T) {
			raw, err := MarshalAction(a)
			require.NoError(t, err)

			var probe map[string]interface{}
			require.NoError(t, json.Unmarshal(raw, &probe))
			assert.Equal(t, string(a.Type()), probe["type"])

			got, err := UnmarshalAction(raw)
			require.NoError(t, err)
			assert.Equal(t, a, got)
		})
	}
}

func TestUnmarshalActionRejectsUnknownType(t *testing.T) {
	_, err := UnmarshalAction([]byte(`{"type":"dance"}`))
	assert.Error(t, err)
}

func TestReplyJSON(t *testing.T) {
	raw, err := json.Marshal(Reply{Message: "hi", State: StateChoosingProtein, Action: SelectSoups{Soups: []string{"egusi"}}, Recognized: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"hi","state":"choosing_protein","action":{"type":"select_soups","soups":["egusi"]},"recognized":true}`, string(raw))

	var r Reply
	require.NoError(t, json.Unmarshal([]byte(`{"message":"hello","state":"greeting"}`), &r))
	assert.True(t, r.Recognized)
	assert.Nil(t, r.Action)
}
