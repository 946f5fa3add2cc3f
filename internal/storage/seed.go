package storage

import "github.com/suavecitoo1998-ship-it/Santa/internal/models"

// SeedItems returns the default wishlist shown when no saved list exists.
// Returned as a fresh slice every call so callers can mutate it freely.
func SeedItems() []models.WishItem {
	return []models.WishItem{
		{
			ID:          "1",
			Title:       "Sweat Broncos NFL (Vinted)",
			Price:       models.NewPrice(20),
			URL:         "https://www.vinted.fr/items/5331852636-nfl-tshirt-broncos",
			Description: "Un sweat vintage stylé pour supporter les Broncos.",
		},
		{
			ID:          "2",
			Title:       "Vest Broncos (Vinted)",
			Price:       models.NewPrice(55),
			URL:         "https://www.vinted.fr/items/5214964398-doudoune-vintage-broncos",
			Description: "Doudoune chaude pour l'hiver, style US.",
		},
		{
			ID:          "3",
			Title:       "Casquette Broncos Vintage",
			Price:       models.NewPrice(25),
			URL:         "https://www.vinted.fr/items/5677367836-casquette-vintage-nfl-broncos-denver-orange-bleu",
			Description: "La touche finale pour l'outfit, coloris orange et bleu.",
		},
		{
			ID:          "4",
			Title:       "Vinyl Mark-Almond - Other Peoples Rooms",
			Price:       models.NewPrice(15),
			URL:         "https://www.discogs.com/fr/sell/item/3869364826",
			Description: "De la bonne musique sur vinyle. Pas trop cher si possible !",
		},
		{
			ID:          "5",
			Title:       "Tee shirt Seinfeld",
			Price:       models.NewPrice(28),
			URL:         "https://threadheads.com/en-fr/products/group-call-tshirt?variant=44719674851501",
			Description: "Pour les fans de la série culte.",
		},
		{
			ID:          "6",
			Title:       "Elvira Cookbook from Hell",
			Price:       models.NewPrice(30),
			URL:         "https://www.amazon.fr/Elviras-Cookbook-Hell-Celebrations-Occasion/dp/0306832860",
			Description: "Des recettes d'enfer pour cuisiner comme Elvira.",
		},
		{
			ID:          "7",
			Title:       "Suavecito Pommade",
			Price:       models.NewPrice(20),
			URL:         "https://www.amazon.fr/Suavecito-CV84-Pommade-113g/dp/B0065JCV84",
			Description: "Pour une coiffure impeccable.",
		},
	}
}
