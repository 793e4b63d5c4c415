package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "inkwell/internal/log"
	"inkwell/internal/services"
	"inkwell/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func (h *AuthHandler) SignupForm(c *fiber.Ctx) error {
	return render(c, "signup", fiber.Map{})
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	form, fieldErrs := validate.SignupForm(func(key string) string { return c.FormValue(key) })
	if fieldErrs != nil {
		applog.Security(c, "validation.fail", map[string]any{"form": "signup", "fields": len(fieldErrs)})
		return c.Status(fiber.StatusBadRequest).Render("signup", fiber.Map{"Errors": fieldErrs})
	}

	u, err := h.Auth.Signup(form)
	if err == services.ErrEmailTaken {
		return c.Status(fiber.StatusBadRequest).Render("signup", fiber.Map{
			"Errors": map[string]string{"email": "This email is already registered"},
		})
	}
	if err != nil {
		applog.Error(c, "auth.signup.fail", err, nil)
		return fiber.ErrInternalServerError
	}

	applog.Audit(c, "auth.signup", map[string]any{"user": u.ID})
	return render(c, "login", fiber.Map{"Msg": "Account created for " + u.Name + "! You can now log in."})
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email := c.FormValue("email")
	pass := c.FormValue("password")
	if _, ok := validate.Email(email); !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Invalid email or password"})
	}
	if !validate.Password(pass) {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_password_format"})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Invalid email or password"})
	}

	u, err := h.Auth.Login(sid, email, pass)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Invalid email or password"})
	}

	applog.Audit(c, "auth.login.success", map[string]any{"user": u.ID})
	return c.Redirect("/")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/")
}
