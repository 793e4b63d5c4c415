package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "inkwell/internal/log"
	"inkwell/internal/mail"
	"inkwell/internal/validate"
)

// PagesHandler serves the static-ish pages and the contact form.
type PagesHandler struct {
	Notifier      mail.Notifier
	FromEmail     string
	OperatorEmail string
}

func (h *PagesHandler) About(c *fiber.Ctx) error {
	return render(c, "about", fiber.Map{})
}

func (h *PagesHandler) ContactForm(c *fiber.Ctx) error {
	return render(c, "contact", fiber.Map{})
}

func (h *PagesHandler) Contact(c *fiber.Ctx) error {
	name, okName := validate.Name(c.FormValue("name"))
	email, okEmail := validate.Email(c.FormValue("email"))
	message, okMsg := validate.Text(c.FormValue("message"), 2000)
	if !okName || !okEmail || !okMsg {
		applog.Security(c, "validation.fail", map[string]any{"form": "contact"})
		return c.Status(fiber.StatusBadRequest).Render("contact", fiber.Map{
			"Err": "Please fill in your name, a valid email and a message.",
		})
	}

	if h.Notifier != nil {
		msg := mail.ContactMessage(name, email, message, h.FromEmail, h.OperatorEmail)
		if err := h.Notifier.Send(msg); err != nil {
			applog.Error(c, "contact.send.fail", err, nil)
			return render(c, "contact", fiber.Map{"Err": "Could not send your message. Please try again later."})
		}
	}

	applog.Audit(c, "contact.send", map[string]any{"email": email})
	return render(c, "contact", fiber.Map{"Msg": "Your message has been sent successfully."})
}
