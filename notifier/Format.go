package notifier

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"beautyStore/entities"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	pricePrinter = message.NewPrinter(language.Russian)
	// CLDR groups Russian digits with no-break spaces
	groupSpaces  = strings.NewReplacer("\u00a0", " ", "\u202f", " ")
)

// FormatPrice renders a whole-tenge amount with Russian digit grouping,
// e.g. "12 500 ₸".
func FormatPrice(price decimal.Decimal) string {
	return groupSpaces.Replace(pricePrinter.Sprintf("%d", price.Round(0).IntPart())) + " ₸"
}

var nonDigits = regexp.MustCompile(`\D`)

// FormatPhone renders an 11-digit number as +7 (700) 417-04-11 and
// returns anything else unchanged.
func FormatPhone(phone string) string {
	d := nonDigits.ReplaceAllString(phone, "")
	if len(d) != 11 {
		return phone
	}
	return fmt.Sprintf("+%s (%s) %s-%s-%s", d[0:1], d[1:4], d[4:7], d[7:9], d[9:11])
}

// FormatOrderMessage builds the HTML text sent to the chat.
func FormatOrderMessage(order entities.Order) string {
	var b strings.Builder
	b.WriteString("🛍️ <b>Новая заявка в магазине!</b>\n\n")
	fmt.Fprintf(&b, "📋 <b>Номер заказа:</b> %s\n\n", html.EscapeString(order.Id))
	fmt.Fprintf(&b, "👤 <b>Клиент:</b> %s\n", html.EscapeString(order.Customer.Name))
	fmt.Fprintf(&b, "📱 <b>Телефон:</b> %s\n", html.EscapeString(FormatPhone(order.Customer.Phone)))
	if order.Customer.Comment != "" {
		fmt.Fprintf(&b, "💬 <b>Комментарий:</b> %s\n", html.EscapeString(order.Customer.Comment))
	}
	if order.Customer.ReserveFor24h != nil && *order.Customer.ReserveFor24h {
		b.WriteString("⏳ <b>Бронь на 24 часа</b>\n")
	}
	b.WriteString("\n<b>Товары:</b>\n")
	for _, it := range order.Items {
		fmt.Fprintf(&b, "  • %s × %d = %s\n", html.EscapeString(it.Product.Name), it.Quantity, FormatPrice(it.Subtotal()))
	}
	fmt.Fprintf(&b, "\n💰 <b>ИТОГО:</b> %s\n\n", FormatPrice(order.Total))
	fmt.Fprintf(&b, "⏰ Дата: %s", order.CreatedAt.Format("02.01.2006, 15:04"))
	return b.String()
}
