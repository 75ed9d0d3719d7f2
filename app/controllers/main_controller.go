package controllers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/keysai/keysai/app/models"
	"github.com/keysai/keysai/app/repository"
	"github.com/keysai/keysai/internal/pkg/hcaptcha"
	"github.com/keysai/keysai/internal/pkg/mail"
	"github.com/keysai/keysai/internal/pkg/pricing"
	"github.com/keysai/keysai/internal/pkg/viewmodel"
)

// AgentCard is the pricing-page representation of a catalog entry with its
// resolved quote.
type AgentCard struct {
	UUID        string
	Name        string
	Description string
	BasePrice   string
	PromoPrice  string
	Promotional bool
	PromoMonths int
}

func buildAgentCards(agents []models.Agent) []AgentCard {
	cards := make([]AgentCard, 0, len(agents))
	for i := range agents {
		agent := &agents[i]
		q := pricing.QuoteFor(agent)
		card := AgentCard{
			UUID:        agent.UUID,
			Name:        agent.Name,
			Description: agent.Description,
			BasePrice:   viewmodel.FormatCents(agent.BasePriceCents),
			Promotional: q.Promotional,
		}
		if q.Promotional {
			card.PromoPrice = viewmodel.FormatCents(q.PriceCents)
			if q.PromoMonths != nil {
				card.PromoMonths = *q.PromoMonths
			}
		}
		cards = append(cards, card)
	}
	return cards
}

// HandleStart renders the home page with the active catalog.
func HandleStart(c *fiber.Ctx) error {
	agents, err := repository.GetGlobalRepositories().Agent.List(false)
	if err != nil {
		log.Printf("load catalog for home page: %v", err)
		agents = nil
	}

	return render(c, "home", "home", fiber.Map{
		"Agents": buildAgentCards(agents),
	})
}

// HandleAbout renders the static about page.
func HandleAbout(c *fiber.Ctx) error {
	return render(c, "about", "about", fiber.Map{})
}

// HandlePricing renders the pricing page with quotes for every active entry.
func HandlePricing(c *fiber.Ctx) error {
	agents, err := repository.GetGlobalRepositories().Agent.List(false)
	if err != nil {
		return redirectWithError(c, "Could not load the catalog, please try again.", "/")
	}

	return render(c, "pricing", "pricing", fiber.Map{
		"Agents": buildAgentCards(agents),
	})
}

// HandleContact renders the contact page and accepts form submissions.
func HandleContact(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	if c.Method() == fiber.MethodPost {
		if hcaptcha.Enabled() {
			valid, err := hcaptcha.Verify(c.FormValue("h-captcha-response"))
			if err != nil || !valid {
				return redirectWithError(c, "Captcha validation failed. Please try again.", "/contact")
			}
		}

		msg := &models.ContactMessage{
			Name:    c.FormValue("name"),
			Email:   c.FormValue("email"),
			Message: c.FormValue("message"),
		}
		if err := msg.Validate(); err != nil {
			return redirectWithError(c, "Please fill out all fields with a valid email address.", "/contact")
		}

		if err := repos.Contact.CreateMessage(msg); err != nil {
			log.Printf("store contact message: %v", err)
			return redirectWithError(c, "Could not send your message, please try again.", "/contact")
		}

		if info, err := repos.Contact.GetInfo(); err == nil && info.Email != "" {
			body := fmt.Sprintf("<p>From: %s &lt;%s&gt;</p><p>%s</p>", msg.Name, msg.Email, msg.Message)
			go func() {
				if err := mail.SendMail(info.Email, "New contact message", body); err != nil {
					log.Printf("forward contact message: %v", err)
				}
			}()
		}

		return redirectWithSuccess(c, "Thank you! We will get back to you shortly.", "/contact")
	}

	info, err := repos.Contact.GetInfo()
	if err != nil {
		log.Printf("load contact info: %v", err)
		info = &models.ContactInfo{}
	}

	return render(c, "contact", "contact", fiber.Map{
		"ContactInfo":    info,
		"CaptchaEnabled": hcaptcha.Enabled(),
		"CaptchaSiteKey": hcaptcha.SiteKey(),
	})
}
