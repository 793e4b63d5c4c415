package mail

import (
	"fmt"

	"inkwell/internal/domain"
)

// OrderConfirmation is the customer receipt sent after checkout.
func OrderConfirmation(o domain.Order, from string) Message {
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"Thank you for shopping with Inkwell!\n\n"+
			"We have received your order %s.\n\n"+
			"Order summary:\n"+
			"Total amount: %s\n"+
			"Delivery charge: %s\n\n"+
			"Shipping address:\n%s\n%s - %s\n%s\n\n"+
			"You will receive another email once your items are shipped.\n\n"+
			"Best regards,\nThe Inkwell Team\n",
		o.FullName, o.PublicID,
		o.TotalPrice.StringFixed(2), o.DeliveryCharge.StringFixed(2),
		o.Address, o.City, o.PostalCode, o.Country)

	return Message{
		Subject: fmt.Sprintf("Order Confirmation - Order #%s", o.PublicID),
		Body:    body,
		From:    from,
		To:      []string{o.Email},
	}
}

// OperatorAlert notifies the shop operator about a new order.
func OperatorAlert(o domain.Order, from, operator string) Message {
	body := fmt.Sprintf(
		"A new order has been placed.\n\n"+
			"Order ID: %s\n"+
			"Customer: %s\n"+
			"Email: %s\n"+
			"Phone: %s\n"+
			"Total: %s\n\n"+
			"Shipping address:\n%s\n%s - %s\n%s\n",
		o.PublicID, o.FullName, o.Email, o.PhoneNumber,
		o.TotalPrice.StringFixed(2),
		o.Address, o.City, o.PostalCode, o.Country)

	return Message{
		Subject: fmt.Sprintf("New Order Received - #%s", o.PublicID),
		Body:    body,
		From:    from,
		To:      []string{operator},
	}
}

// ContactMessage forwards a contact-form submission to the operator.
func ContactMessage(name, senderEmail, text, from, operator string) Message {
	return Message{
		Subject: "New Contact Form Message",
		Body:    fmt.Sprintf("Message from %s (%s):\n\n%s\n", name, senderEmail, text),
		From:    from,
		To:      []string{operator},
	}
}
