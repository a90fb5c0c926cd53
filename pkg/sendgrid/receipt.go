package sendgrid

import (
	"fmt"
	"html"
	"strings"

	"github.com/frameart/storefront/internal/models"
)

// Receipt builds the order confirmation mail for a recorded purchase.
func Receipt(to string, purchase models.Purchase) *models.EmailNotificationRequest {
	var text, rows strings.Builder

	fmt.Fprintf(&text, "Thank you for your order, %s.\n\n", purchase.Shipping.FullName)

	for _, line := range purchase.Items {
		fmt.Fprintf(&text, "%d x %s by %s: %.2f\n", line.Quantity, line.Title, line.Artist, line.Price*float64(max(line.Quantity, 1)))
		fmt.Fprintf(&rows, "<tr><td>%d</td><td>%s</td><td>%s</td><td>%.2f</td></tr>",
			line.Quantity, html.EscapeString(line.Title), html.EscapeString(line.Artist), line.Price*float64(max(line.Quantity, 1)))
	}

	fmt.Fprintf(&text, "\nTotal: %.2f\nOrder number: %s\n", purchase.Total, purchase.ID)

	body := fmt.Sprintf(
		"<h1>Thank you for your order</h1><p>Order number: %s</p><table>%s</table><p><strong>Total: %.2f</strong></p>",
		html.EscapeString(purchase.ID), rows.String(), purchase.Total)

	return &models.EmailNotificationRequest{
		To:          to,
		Subject:     "Your Frame Art order " + purchase.ID,
		Content:     text.String(),
		HTMLContent: body,
	}
}
