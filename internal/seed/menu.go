package seed

import (
	"iyan-ordering/internal/domain"

	"github.com/shopspring/decimal"
)

// DefaultMenu is the house catalog used by the seeder and the in-memory store.
func DefaultMenu() domain.Menu {
	return domain.Menu{
		IyanBasePrice: 1500,
		Soups: []domain.Soup{
			{ID: "egusi", Name: "Egusi", Price: 2500, Description: "Ground melon seed soup with leafy greens", Tags: []string{"popular"}},
			{ID: "ewedu", Name: "Ewedu", Price: 1800, Description: "Silky jute leaf soup", Tags: []string{"light"}},
			{ID: "gbegiri", Name: "Gbegiri", Price: 2000, Description: "Smooth bean soup, the partner of ewedu"},
			{ID: "efo_riro", Name: "Efo Riro", Price: 2500, Description: "Rich spinach stew with peppers", Tags: []string{"popular"}},
			{ID: "ogbono", Name: "Ogbono", Price: 2200, Description: "Draw soup from wild mango seeds"},
			{ID: "afang", Name: "Afang", Price: 3000, Description: "Afang and waterleaf soup", Tags: []string{"premium"}},
			{ID: "edikang_ikong", Name: "Edikang Ikong", Price: 3000, Description: "Pumpkin leaf and waterleaf soup", Tags: []string{"premium"}},
			{ID: "banga", Name: "Banga", Price: 2800, Description: "Palm fruit soup"},
			{ID: "oha", Name: "Oha", Price: 2800, Description: "Oha leaf soup thickened with cocoyam"},
			{ID: "okra", Name: "Okra", Price: 1800, Description: "Fresh chopped okra soup", Tags: []string{"light"}},
		},
		Proteins: []domain.Protein{
			{ID: "beef", Name: "Beef", Price: 1000},
			{ID: "goat_meat", Name: "Goat Meat", Price: 1500},
			{ID: "chicken", Name: "Chicken", Price: 1500},
			{ID: "assorted", Name: "Assorted Meat", Price: 1500, Description: "Shaki, ponmo and beef"},
			{ID: "fish", Name: "Fish", Price: 1200},
			{ID: "ponmo", Name: "Ponmo", Price: 500},
			{ID: "shaki", Name: "Shaki", Price: 800},
			{ID: "turkey", Name: "Turkey", Price: 2000},
		},
		IyanQuantities: []domain.Tier{
			{ID: "1", Name: "1 Wrap", Multiplier: decimal.RequireFromString("0.5")},
			{ID: "2", Name: "2 Wraps", Multiplier: decimal.NewFromInt(1)},
			{ID: "3", Name: "3 Wraps", Multiplier: decimal.RequireFromString("1.5")},
			{ID: "4", Name: "4 Wraps", Multiplier: decimal.NewFromInt(2)},
		},
		ProteinQuantities: []domain.Tier{
			{ID: "1", Name: "1 Piece", Multiplier: decimal.NewFromInt(1)},
			{ID: "2", Name: "2 Pieces", Multiplier: decimal.NewFromInt(2)},
			{ID: "3", Name: "3 Pieces", Multiplier: decimal.NewFromInt(3)},
		},
		Portions: []domain.Tier{
			{ID: "small", Name: "Small", Multiplier: decimal.NewFromInt(1)},
			{ID: "medium", Name: "Medium", Multiplier: decimal.RequireFromString("1.5")},
			{ID: "large", Name: "Large", Multiplier: decimal.NewFromInt(2)},
		},
		Combos: []domain.Combo{
			{ID: "abula", Name: "The Abula Special", Description: "Ewedu + Gbegiri, the legendary combo", Soups: []string{"ewedu", "gbegiri"}, Discount: 500},
			{ID: "double_green", Name: "Double Green", Description: "Egusi + Efo Riro, rich and nutritious", Soups: []string{"egusi", "efo_riro"}, Discount: 300},
			{ID: "draw_thick", Name: "Draw & Thick", Description: "Ogbono + Egusi, ultimate texture", Soups: []string{"ogbono", "egusi"}, Discount: 400},
		},
	}
}
