package controllers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
	"gorm.io/gorm"

	"github.com/keysai/keysai/app/models"
	"github.com/keysai/keysai/app/repository"
	"github.com/keysai/keysai/internal/pkg/hcaptcha"
	"github.com/keysai/keysai/internal/pkg/mail"
	"github.com/keysai/keysai/internal/pkg/session"
	"github.com/keysai/keysai/internal/pkg/statistics"
	"github.com/keysai/keysai/internal/pkg/usercontext"
)

// HandleAuthLogin renders the login form and processes submissions.
func HandleAuthLogin(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		fm := fiber.Map{"type": "error"}

		repo := repository.GetGlobalRepositories().User
		user, err := repo.GetByEmail(c.FormValue("email"))
		if err != nil {
			// Same notice for unknown email and wrong password.
			fm["message"] = "There is a problem with the login process"
			return flash.WithError(c, fm).Redirect("/login")
		}

		if !user.CheckPassword(c.FormValue("password")) {
			fm["message"] = "There is a problem with the login process"
			return flash.WithError(c, fm).Redirect("/login")
		}

		if !user.IsActive() {
			fm["message"] = "Your account is disabled."
			return flash.WithError(c, fm).Redirect("/login")
		}

		if err := startSession(c, user); err != nil {
			fm["message"] = fmt.Sprintf("something went wrong: %s", err)
			return flash.WithError(c, fm).Redirect("/login")
		}

		now := time.Now()
		user.LastLoginAt = &now
		if err := repo.Update(user); err != nil {
			// Non-fatal; the session is already established.
			fmt.Printf("update last login for user %d: %v\n", user.ID, err)
		}

		fm = fiber.Map{
			"type":    "success",
			"message": "Welcome back!",
		}
		return flash.WithSuccess(c, fm).Redirect("/dashboard")
	}

	return render(c, "auth/login", "login", fiber.Map{})
}

// HandleAuthRegister renders the registration form and creates accounts.
func HandleAuthRegister(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		if hcaptcha.Enabled() {
			valid, err := hcaptcha.Verify(c.FormValue("h-captcha-response"))
			if err != nil || !valid {
				return redirectWithError(c, "Captcha validation failed. Please try again.", "/register")
			}
		}

		repo := repository.GetGlobalRepositories().User
		if _, err := repo.GetByEmail(c.FormValue("email")); err == nil {
			return redirectWithError(c, "An account with this email already exists.", "/register")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return redirectWithError(c, "Something went wrong, please try again.", "/register")
		}

		user, err := models.CreateUser(
			c.FormValue("first_name"),
			c.FormValue("last_name"),
			c.FormValue("email"),
			c.FormValue("password"),
		)
		if err != nil {
			return redirectWithError(c, fmt.Sprintf("something went wrong: %s", err), "/register")
		}

		if err := repo.Create(user); err != nil {
			return redirectWithError(c, fmt.Sprintf("something went wrong: %s", err), "/register")
		}

		go statistics.UpdateStatisticsCache()

		go func(to, name string) {
			body := fmt.Sprintf("<p>Hi %s,</p><p>welcome to KeysAI! Your account is ready.</p>", name)
			if err := mail.SendMail(to, "Welcome to KeysAI", body); err != nil {
				log.Printf("send welcome mail to %s: %v", to, err)
			}
		}(user.Email, user.FirstName)

		return redirectWithSuccess(c, "Your account has been created. Please log in.", "/login")
	}

	return render(c, "auth/register", "register", fiber.Map{
		"CaptchaEnabled": hcaptcha.Enabled(),
		"CaptchaSiteKey": hcaptcha.SiteKey(),
	})
}

// HandleAuthLogout destroys the session.
func HandleAuthLogout(c *fiber.Ctx) error {
	fm := fiber.Map{"type": "error"}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fm["message"] = "logged out (no session)"
		return flash.WithError(c, fm).Redirect("/login")
	}

	if err := sess.Destroy(); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)
		return flash.WithError(c, fm).Redirect("/login")
	}

	c.Locals(usercontext.KeyFromProtected, false)

	fm = fiber.Map{
		"type":    "success",
		"message": "You have been logged out.",
	}
	return flash.WithSuccess(c, fm).Redirect("/login")
}

// startSession writes the authenticated identity into a fresh session.
func startSession(c *fiber.Ctx, user *models.User) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return err
	}

	sess.Set(usercontext.AuthKey, true)
	sess.Set(usercontext.KeyUserID, user.ID)
	sess.Set(usercontext.KeyUsername, user.FullName())
	sess.Set(usercontext.KeyUserRole, user.Role)

	return sess.Save()
}
