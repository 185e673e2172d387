package notify

import (
	"fmt"
	"strings"

	"github.com/avdeenko/aromashop/internal/models"
)

func cents(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func statusSubject(order *models.Order) string {
	switch order.Status {
	case models.StatusConfirmed:
		return fmt.Sprintf("Order %s: payment confirmed", order.OrderNumber)
	case models.StatusShipped:
		return fmt.Sprintf("Order %s has been shipped", order.OrderNumber)
	case models.StatusDelivered:
		return fmt.Sprintf("Order %s has been delivered", order.OrderNumber)
	case models.StatusCancelled:
		return fmt.Sprintf("Order %s was cancelled", order.OrderNumber)
	default:
		return fmt.Sprintf("Order %s update", order.OrderNumber)
	}
}

func statusLine(order *models.Order) string {
	switch order.Status {
	case models.StatusConfirmed:
		return "We received your payment and are preparing your order."
	case models.StatusShipped:
		if order.TrackingNumber != "" {
			return fmt.Sprintf("Your order is on its way. Tracking number: <strong>%s</strong>.", order.TrackingNumber)
		}
		return "Your order is on its way."
	case models.StatusDelivered:
		return "Your order has been delivered. Enjoy!"
	case models.StatusCancelled:
		if order.CancelReason != "" {
			return fmt.Sprintf("Your order was cancelled. Reason: %s.", order.CancelReason)
		}
		return "Your order was cancelled."
	default:
		return "Your order status was updated."
	}
}

func itemRows(items []models.OrderItem) string {
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, `
			<tr>
				<td style="padding:8px;border:1px solid #ddd;">%s — %s</td>
				<td style="padding:8px;border:1px solid #ddd;">%d</td>
				<td style="padding:8px;border:1px solid #ddd;">%s</td>
				<td style="padding:8px;border:1px solid #ddd;">%s</td>
			</tr>`, it.ProductName, it.VariantName, it.Quantity, cents(it.UnitPrice), cents(it.Subtotal))
	}
	return b.String()
}

func orderCreatedHTML(order *models.Order) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Thank you for your order</h2>
		<p>Order <strong>%s</strong> has been placed and is awaiting confirmation.</p>
		<table style="width:100%%;border-collapse:collapse;margin:20px 0;">
			<thead>
				<tr style="background-color:#f0f0f0;">
					<th style="padding:8px;text-align:left;border:1px solid #ddd;">Item</th>
					<th style="padding:8px;text-align:left;border:1px solid #ddd;">Qty</th>
					<th style="padding:8px;text-align:left;border:1px solid #ddd;">Unit price</th>
					<th style="padding:8px;text-align:left;border:1px solid #ddd;">Subtotal</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
		</table>
		<p>Subtotal: %s<br>Shipping: %s<br>Tax: %s<br><strong>Total: %s</strong></p>
		<p>Shipping to: %s, %s, %s</p>
		<p style="margin-top:30px;color:#555;">The Aromashop team</p>
	</div>
</body>
</html>`,
		order.OrderNumber,
		itemRows(order.Items),
		cents(order.Subtotal), cents(order.ShippingCost), cents(order.TaxAmount), cents(order.TotalAmount),
		order.ShippingAddress.Recipient, order.ShippingAddress.City, order.ShippingAddress.Street)
}

func statusChangedHTML(order *models.Order) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Order %s: %s</h2>
		<p>%s</p>
		<p><strong>Total: %s</strong></p>
		<p style="margin-top:30px;color:#555;">The Aromashop team</p>
	</div>
</body>
</html>`,
		order.OrderNumber, order.Status, statusLine(order), cents(order.TotalAmount))
}
