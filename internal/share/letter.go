package share

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/suavecitoo1998-ship-it/Santa/internal/models"
)

// Letter formats the wishlist as the letter-to-Santa text used for sharing.
// Purchased items are marked as already taken, unknown prices show as "?? €".
func Letter(items []models.WishItem, totalPrice float64) string {
	var b strings.Builder
	b.WriteString("🎄 *Ma Liste au Père Noël* 🎅\n\n")

	for i, item := range items {
		status := "🎁"
		if item.Purchased {
			status = "✅ (Déjà pris !)"
		}
		price := "?? €"
		if item.Price != nil {
			price = formatPrice(*item.Price) + "€"
		}
		fmt.Fprintf(&b, "%d. %s - %s %s\n", i+1, item.Title, price, status)
		if item.URL != "" {
			fmt.Fprintf(&b, "   Lien: %s\n", item.URL)
		}
	}

	fmt.Fprintf(&b, "\n💰 *Total estimé : %s €*\n\n", formatPrice(totalPrice))
	b.WriteString("J'ai été très sage !")
	return b.String()
}

// WhatsAppURL returns a wa.me link that opens WhatsApp with the given text
// pre-filled.
func WhatsAppURL(text string) string {
	return "https://wa.me/?text=" + url.QueryEscape(text)
}

// formatPrice renders a price without trailing zeros (20, 19.99).
func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
