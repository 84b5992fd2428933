package notifier

import (
	"fmt"
	"net/url"
	"strings"

	"beautyStore/entities"

	"github.com/shopspring/decimal"
)

// DefaultWhatsAppNumber is the shop's WhatsApp contact in international
// format without the plus sign.
const DefaultWhatsAppNumber = "77004170411"

const greeting = "Здравствуйте! Интересует корейская косметика."

// FormatCartMessage is the text prefilled into a WhatsApp chat. An empty
// cart gets the plain greeting.
func FormatCartMessage(cart []entities.CartItem, total decimal.Decimal) string {
	if len(cart) == 0 {
		return greeting
	}
	lines := make([]string, 0, len(cart))
	for _, it := range cart {
		lines = append(lines, fmt.Sprintf("%s - %d шт.", it.Product.Name, it.Quantity))
	}
	return "Здравствуйте! Меня интересуют:\n\n" + strings.Join(lines, "\n") +
		"\n\nИтого: " + FormatPrice(total) +
		"\n\nКогда можно приехать посмотреть?"
}

// WhatsAppLink builds a wa.me link with the cart message as its text.
func WhatsAppLink(number string, cart []entities.CartItem, total decimal.Decimal) string {
	if number == "" {
		number = DefaultWhatsAppNumber
	}
	text := strings.ReplaceAll(url.QueryEscape(FormatCartMessage(cart, total)), "+", "%20")
	return "https://wa.me/" + number + "?text=" + text
}
