package dialogue

import (
	"fmt"
	"strconv"
	"strings"

	"iyan-ordering/internal/domain"
	"iyan-ordering/internal/pricing"
)

// Catalog walks a customer through soup, protein, pieces and wraps choices
// for one plate at a time, driven by the menu it is built with.
type Catalog struct {
	Menu domain.Menu
}

// NewCatalog returns a machine over menu.
func NewCatalog(menu domain.Menu) *Catalog {
	return &Catalog{Menu: menu}
}

// Greeting opens the conversation.
func (c *Catalog) Greeting() string {
	return "Welcome to Ile Iyan! I'm your voice ordering assistant. " +
		"Say \"show me the menu\" or tell me which soup you'd like with your pounded yam."
}

// ParseState maps a client supplied state onto a known catalog state.
func ParseState(raw string) State {
	switch s := State(strings.TrimSpace(raw)); s {
	case StateChoosingSoup, StateChoosingProtein, StateChoosingProteinQuantity,
		StateChoosingWraps, StateConfirming, StateAnythingElse:
		return s
	default:
		return StateGreeting
	}
}

// Step advances state by one final transcript. cart is the client's current
// cart and only affects checkout prompts.
func (c *Catalog) Step(state State, text string, cart []domain.LineItem) Reply {
	state = ParseState(string(state))
	switch state {
	case StateGreeting:
		return c.greeting(text, cart)
	case StateChoosingSoup:
		return c.choosingSoup(text)
	case StateChoosingProtein:
		return c.choosingProtein(text)
	case StateChoosingProteinQuantity:
		return c.choosingProteinQuantity(text)
	case StateChoosingWraps:
		return c.choosingWraps(text)
	case StateConfirming:
		return c.confirming(text)
	case StateAnythingElse:
		return c.anythingElse(text, cart)
	}
	return Unrecognized(state)
}

func (c *Catalog) greeting(text string, cart []domain.LineItem) Reply {
	if soups := c.Menu.FindSoups(text); len(soups) > 0 {
		return c.soupsChosen(soups)
	}
	if len(cart) > 0 && hasAny(text, []string{"checkout", "check out", "place order", "place my order"}) {
		return c.checkout(cart)
	}
	if hasAny(text, menuWords) || hasAny(text, orderWords) {
		return say(StateChoosingSoup, c.menuMessage())
	}
	return Unrecognized(StateGreeting)
}

func (c *Catalog) choosingSoup(text string) Reply {
	if soups := c.Menu.FindSoups(text); len(soups) > 0 {
		return c.soupsChosen(soups)
	}
	if hasAny(text, menuWords) {
		return say(StateChoosingSoup, c.menuMessage())
	}
	return Unrecognized(StateChoosingSoup)
}

func (c *Catalog) soupsChosen(soups []string) Reply {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, good choice!", c.joinNames(soups, c.Menu.SoupName))
	if combo, ok := c.Menu.MatchCombo(soups); ok && combo.Discount > 0 {
		fmt.Fprintf(&b, " That's our %s, you save %s.", combo.Name, pricing.Format(combo.Discount))
	}
	if len(c.Menu.Proteins) == 0 {
		b.WriteString(" ")
		b.WriteString(c.wrapsPrompt())
		r := say(c.afterProteinState(), b.String())
		r.Action = SelectSoups{Soups: soups}
		return r
	}
	fmt.Fprintf(&b, " Which protein would you like? We have %s. Or say no protein.", c.proteinList())
	r := say(StateChoosingProtein, b.String())
	r.Action = SelectSoups{Soups: soups}
	return r
}

func (c *Catalog) choosingProtein(text string) Reply {
	if proteins := c.Menu.FindProteins(text); len(proteins) > 0 {
		names := c.joinNames(proteins, c.Menu.ProteinName)
		var r Reply
		if len(c.Menu.ProteinQuantities) > 0 {
			r = say(StateChoosingProteinQuantity, fmt.Sprintf(
				"%s it is. How many pieces? You can have %s.", names, tierList(c.Menu.ProteinQuantities)))
		} else {
			r = say(c.afterProteinState(), names+" it is. "+c.wrapsPrompt())
		}
		r.Action = SelectProteins{Proteins: proteins}
		return r
	}
	if hasAny(text, noneWords) {
		r := say(c.afterProteinState(), "No protein, noted. "+c.wrapsPrompt())
		r.Action = SelectProteins{Proteins: []string{}}
		return r
	}
	return Unrecognized(StateChoosingProtein)
}

func (c *Catalog) choosingProteinQuantity(text string) Reply {
	n, ok := findQuantity(text)
	if !ok {
		return Unrecognized(StateChoosingProteinQuantity)
	}
	tier, ok := findTier(c.Menu.ProteinQuantities, strconv.Itoa(n))
	if !ok {
		return say(StateChoosingProteinQuantity, fmt.Sprintf(
			"Sorry, we only do %s pieces. How many would you like?", tierList(c.Menu.ProteinQuantities)))
	}
	r := say(c.afterProteinState(), fmt.Sprintf("%s. %s", tier.Name, c.wrapsPrompt()))
	r.Action = SelectProteinQuantity{Quantity: tier.ID}
	return r
}

func (c *Catalog) choosingWraps(text string) Reply {
	for _, p := range c.Menu.Portions {
		if hasAny(text, []string{strings.ToLower(p.ID), strings.ToLower(p.Name)}) {
			r := say(StateConfirming, fmt.Sprintf("A %s portion. Shall I add this plate to your cart?", strings.ToLower(p.Name)))
			r.Action = SelectPortion{Portion: p.ID}
			return r
		}
	}
	n, ok := findQuantity(text)
	if !ok {
		return Unrecognized(StateChoosingWraps)
	}
	tier, ok := findTier(c.Menu.IyanQuantities, strconv.Itoa(n))
	if !ok {
		return say(StateChoosingWraps, "Sorry, that's not a wrap option. "+c.wrapsPrompt())
	}
	r := say(StateConfirming, fmt.Sprintf("%s of iyan. Shall I add this plate to your cart?", tier.Name))
	r.Action = SelectIyanQuantity{IyanQuantity: tier.ID}
	return r
}

func (c *Catalog) confirming(text string) Reply {
	if hasAny(text, cancelWords) {
		return say(StateGreeting, "No problem, I've cleared that plate. Tell me a soup whenever you're ready.")
	}
	if hasAny(text, addWords) {
		r := say(StateAnythingElse, "Added to your cart! Would you like anything else, or shall I place your order?")
		r.Action = AddToCart{}
		return r
	}
	return Unrecognized(StateConfirming)
}

func (c *Catalog) anythingElse(text string, cart []domain.LineItem) Reply {
	if soups := c.Menu.FindSoups(text); len(soups) > 0 {
		return c.soupsChosen(soups)
	}
	if hasAny(text, checkoutWords) {
		return c.checkout(cart)
	}
	if hasAny(text, moreWords) || hasAny(text, menuWords) {
		return say(StateChoosingSoup, c.menuMessage())
	}
	return Unrecognized(StateAnythingElse)
}

func (c *Catalog) checkout(cart []domain.LineItem) Reply {
	msg := "Taking you to checkout now. Thank you for ordering with Ile Iyan!"
	if n := len(cart); n > 0 {
		msg = fmt.Sprintf("You have %d %s in your cart. %s", n, plural(n, "plate", "plates"), msg)
	}
	r := say(StateGreeting, msg)
	r.Action = PlaceOrder{}
	return r
}

// afterProteinState skips wrap selection for menus without base tiers.
func (c *Catalog) afterProteinState() State {
	if len(c.Menu.IyanQuantities) == 0 && len(c.Menu.Portions) == 0 {
		return StateConfirming
	}
	return StateChoosingWraps
}

func (c *Catalog) wrapsPrompt() string {
	switch {
	case len(c.Menu.IyanQuantities) > 0:
		return fmt.Sprintf("How many wraps of iyan would you like? You can have %s.", tierList(c.Menu.IyanQuantities))
	case len(c.Menu.Portions) > 0:
		return fmt.Sprintf("What size would you like? %s.", nameList(c.Menu.Portions))
	default:
		return "Shall I add this plate to your cart?"
	}
}

func (c *Catalog) menuMessage() string {
	names := make([]string, 0, len(c.Menu.Soups))
	for _, s := range c.Menu.Soups {
		names = append(names, s.Name)
	}
	return fmt.Sprintf("Here are our soups: %s. Every plate comes with pounded yam from %s. Which soup would you like?",
		strings.Join(names, ", "), pricing.Format(c.Menu.IyanBasePrice))
}

func (c *Catalog) proteinList() string {
	names := make([]string, 0, len(c.Menu.Proteins))
	for _, p := range c.Menu.Proteins {
		names = append(names, p.Name)
	}
	return strings.Join(names, ", ")
}

func (c *Catalog) joinNames(ids []string, name func(string) string) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, name(id))
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}

func say(state State, msg string) Reply {
	return Reply{Message: msg, State: state, Recognized: true}
}

func findTier(tiers []domain.Tier, id string) (domain.Tier, bool) {
	for _, t := range tiers {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Tier{}, false
}

func tierList(tiers []domain.Tier) string {
	ids := make([]string, 0, len(tiers))
	for _, t := range tiers {
		ids = append(ids, t.ID)
	}
	switch len(ids) {
	case 0:
		return ""
	case 1:
		return ids[0]
	default:
		return strings.Join(ids[:len(ids)-1], ", ") + " or " + ids[len(ids)-1]
	}
}

func nameList(tiers []domain.Tier) string {
	names := make([]string, 0, len(tiers))
	for _, t := range tiers {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}
